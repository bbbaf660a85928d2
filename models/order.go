package models

import "time"

type OrderStatus string

const (
	OrderStatusDraft          OrderStatus = "draft"
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusRefunded       OrderStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
)

type ShippingMethod string

const (
	ShippingMethodFast    ShippingMethod = "fast"
	ShippingMethodNormal  ShippingMethod = "normal"
	ShippingMethodEconomy ShippingMethod = "economy"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:          {OrderStatusPendingPayment},
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusShipped, OrderStatusRefunded},
	OrderStatusShipped:        {OrderStatusDelivered},
}

// CanTransitionTo reports whether the status lifecycle allows moving from s
// to next. Terminal statuses allow nothing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is an immutable snapshot of a completed checkout; only the status
// moves after creation. All amounts are in the smallest currency unit.
type Order struct {
	ID  uint   `gorm:"primaryKey" json:"id"`
	Ref string `gorm:"uniqueIndex;size:55" json:"ref"`

	UserID string `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	ShippingAddressID uint     `gorm:"not null" json:"shipping_address_id"`
	ShippingAddress   *Address `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	Status         OrderStatus    `gorm:"type:VARCHAR(20);default:'pending_payment'" json:"status"`
	PaymentMethod  PaymentMethod  `gorm:"type:VARCHAR(20)" json:"payment_method"`
	ShippingMethod ShippingMethod `gorm:"type:VARCHAR(20)" json:"shipping_method"`
	Notes          string         `json:"notes"`
	CouponCode     string         `gorm:"size:55" json:"coupon_code"`

	Subtotal      int64 `json:"subtotal"`
	DiscountTotal int64 `json:"discount_total"`
	ShippingTotal int64 `json:"shipping_total"`
	TaxTotal      int64 `json:"tax_total"`
	GrandTotal    int64 `json:"grand_total"`

	PayDeadline time.Time `json:"pay_deadline"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaymentExpiredAt reports whether the order is still awaiting payment past
// its deadline. The caller is responsible for persisting the cancellation.
func (o *Order) PaymentExpiredAt(now time.Time) bool {
	return o.Status == OrderStatusPendingPayment && now.After(o.PayDeadline)
}

// OrderItem captures a cart line as it was at order time. ItemPrice is the
// unit price; TotalDiscount and FinalPrice are line totals. Never re-reads
// the live product.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index" json:"order_id"`

	ProductID   uint   `json:"product_id"`
	ProductName string `gorm:"not null" json:"product_name"`
	ItemPrice   int64  `gorm:"not null" json:"item_price"`

	Quantity int    `gorm:"not null" json:"quantity"`
	Color    string `gorm:"not null;default:''" json:"color"`
	Size     string `gorm:"not null;default:''" json:"size"`

	TotalDiscount int64 `json:"total_discount"`
	FinalPrice    int64 `json:"final_price"`
}
