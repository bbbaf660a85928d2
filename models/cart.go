package models

import "time"

// Cart belongs to exactly one identity: an authenticated user or an anonymous
// session. Both columns are nullable and individually unique; the CHECK keeps
// one and only one of them set.
type Cart struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     *string `gorm:"uniqueIndex;check:chk_cart_identity,(user_id IS NULL) <> (session_key IS NULL)" json:"user_id,omitempty"`
	SessionKey *string `gorm:"uniqueIndex;size:40" json:"session_key,omitempty"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subtotal is the pre-discount total over all items.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].OrgTotal()
	}
	return total
}

// FinalTotalAt is the discount-adjusted total over all items.
func (c *Cart) FinalTotalAt(now time.Time) int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].FinalTotalAt(now)
	}
	return total
}

func (c *Cart) DiscountTotalAt(now time.Time) int64 {
	return c.Subtotal() - c.FinalTotalAt(now)
}

// CartItem is one (product, color, size) line. The composite unique index is
// what makes add-to-cart consolidate instead of duplicating rows, even under
// concurrent requests.
type CartItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	CartID    uint     `gorm:"not null;uniqueIndex:idx_cart_line" json:"cart_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	Quantity int    `gorm:"not null;default:1" json:"quantity"`
	Color    string `gorm:"not null;default:'';size:20;uniqueIndex:idx_cart_line" json:"color"`
	Size     string `gorm:"not null;default:'';size:55;uniqueIndex:idx_cart_line" json:"size"`

	AddedAt time.Time `json:"added_at"`
}

// OrgTotal is quantity times the undiscounted unit price.
func (ci *CartItem) OrgTotal() int64 {
	if ci.Product == nil {
		return 0
	}
	return ci.Product.Price * int64(ci.Quantity)
}

// FinalTotalAt is quantity times the discount-adjusted unit price.
func (ci *CartItem) FinalTotalAt(now time.Time) int64 {
	if ci.Product == nil {
		return 0
	}
	return ci.Product.FinalPriceAt(now) * int64(ci.Quantity)
}
