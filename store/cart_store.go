package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sahand-dev/bazaar-api/models"
)

// CartStore is every way the rest of the codebase touches carts.
type CartStore interface {
	// GetOrCreateByIdentity returns the identity's cart, creating it if
	// missing. Safe against concurrent first requests: the unique index on
	// the identity column plus ON CONFLICT DO NOTHING guarantees one cart.
	GetOrCreateByIdentity(id Identity) (*models.Cart, error)

	// FindCartWithItems loads the cart with items, products and discounts in
	// one query chain. ErrNotFound when the identity has no cart yet.
	FindCartWithItems(id Identity) (*models.Cart, error)

	// AddItem adds qty of (product, color, size) to the cart, incrementing
	// the existing line instead of duplicating it.
	AddItem(cartID uint, productID uint, qty int, color, size string) error

	// UpdateItemQuantity overwrites a line's quantity; qty <= 0 deletes the
	// line. ErrNotFound when the line is not in this cart.
	UpdateItemQuantity(cartID, itemID uint, qty int) error

	// RemoveItem deletes a line. ErrNotFound when the line is not in this
	// cart, so one identity can never touch another identity's lines.
	RemoveItem(cartID, itemID uint) error

	// ClearItems empties the cart but keeps the cart row.
	ClearItems(cartID uint) error

	// DeleteCart removes the cart and its lines.
	DeleteCart(cartID uint) error
}

type gormCartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) CartStore {
	return &gormCartStore{db: db}
}

func (s *gormCartStore) scope(id Identity) *gorm.DB {
	if id.IsAuthenticated() {
		return s.db.Where("user_id = ?", id.UserID)
	}
	return s.db.Where("session_key = ?", id.SessionKey)
}

func (s *gormCartStore) GetOrCreateByIdentity(id Identity) (*models.Cart, error) {
	if !id.Valid() {
		return nil, ErrNoIdentity
	}

	cart := models.Cart{}
	if id.IsAuthenticated() {
		cart.UserID = &id.UserID
	} else {
		cart.SessionKey = &id.SessionKey
	}

	// A concurrent request may win the insert; DoNothing swallows the
	// conflict and the follow-up read returns whichever row exists.
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error; err != nil {
		return nil, err
	}

	var out models.Cart
	if err := s.scope(id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *gormCartStore) FindCartWithItems(id Identity) (*models.Cart, error) {
	if !id.Valid() {
		return nil, ErrNoIdentity
	}
	var cart models.Cart
	err := s.scope(id).
		Preload("Items.Product.Discount").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *gormCartStore) AddItem(cartID uint, productID uint, qty int, color, size string) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	item := models.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		Color:     color,
		Size:      size,
		AddedAt:   time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "cart_id"}, {Name: "product_id"}, {Name: "color"}, {Name: "size"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", qty),
			"added_at": time.Now(),
		}),
	}).Create(&item).Error
}

func (s *gormCartStore) UpdateItemQuantity(cartID, itemID uint, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(cartID, itemID)
	}
	res := s.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormCartStore) RemoveItem(cartID, itemID uint) error {
	res := s.db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormCartStore) ClearItems(cartID uint) error {
	return s.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

func (s *gormCartStore) DeleteCart(cartID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, cartID).Error
	})
}
