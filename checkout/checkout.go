// Package checkout turns a cart into an immutable order.
package checkout

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahand-dev/bazaar-api/models"
)

const (
	// TaxRatePercent applies to the discounted subtotal.
	TaxRatePercent = 12

	// PaymentWindow is how long a pending_payment order may wait before it
	// is cancelled on next read.
	PaymentWindow = time.Hour
)

// Flat shipping fee per tier, smallest currency unit. Unknown methods ship
// free rather than failing the order.
var shippingFees = map[models.ShippingMethod]int64{
	models.ShippingMethodFast:    45000,
	models.ShippingMethodNormal:  28000,
	models.ShippingMethodEconomy: 15000,
}

func ShippingFee(method models.ShippingMethod) int64 {
	return shippingFees[method]
}

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCartNotFound      = errors.New("no cart for this user")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Input struct {
	UserID            string
	ShippingAddressID uint
	PaymentMethod     models.PaymentMethod
	ShippingMethod    models.ShippingMethod
	Notes             string
	CouponCode        string
}

// CreateOrder reads the user's cart, computes totals, persists the order and
// its line snapshots, decrements stock and deletes the cart — all inside one
// transaction. Any failure rolls the whole sequence back.
func CreateOrder(db *gorm.DB, in Input) (*models.Order, error) {
	var order *models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items.Product.Discount").
			Where("user_id = ?", in.UserID).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		now := time.Now()
		var subtotal, finalTotal int64
		items := make([]models.OrderItem, 0, len(cart.Items))

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Discount").
				First(&product, item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return ErrInsufficientStock
			}
			if err := tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}

			qty := int64(item.Quantity)
			lineOrg := product.Price * qty
			lineFinal := product.FinalPriceAt(now) * qty
			subtotal += lineOrg
			finalTotal += lineFinal

			items = append(items, models.OrderItem{
				ProductID:     product.ID,
				ProductName:   product.Name,
				ItemPrice:     product.Price,
				Quantity:      item.Quantity,
				Color:         item.Color,
				Size:          item.Size,
				TotalDiscount: lineOrg - lineFinal,
				FinalPrice:    lineFinal,
			})
		}

		discountTotal := subtotal - finalTotal
		shippingTotal := ShippingFee(in.ShippingMethod)
		taxTotal := finalTotal * TaxRatePercent / 100
		grandTotal := finalTotal + shippingTotal + taxTotal

		order = &models.Order{
			Ref:               newOrderRef(),
			UserID:            in.UserID,
			ShippingAddressID: in.ShippingAddressID,
			Items:             items,
			Status:            models.OrderStatusPendingPayment,
			PaymentMethod:     in.PaymentMethod,
			ShippingMethod:    in.ShippingMethod,
			Notes:             in.Notes,
			CouponCode:        in.CouponCode,
			Subtotal:          subtotal,
			DiscountTotal:     discountTotal,
			ShippingTotal:     shippingTotal,
			TaxTotal:          taxTotal,
			GrandTotal:        grandTotal,
			PayDeadline:       now.Add(PaymentWindow),
			CreatedAt:         now,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// The cart is consumed by checkout.
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, cart.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func newOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
