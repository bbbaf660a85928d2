package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
)

var ErrInvalidTransition = errors.New("order status transition not allowed")

type OrderStore interface {
	// FindByRefForUser returns the user's order by its public ref, applying
	// the lazy payment-expiry transition first. Another user's order is
	// ErrNotFound, never exposed.
	FindByRefForUser(ref, userID string) (*models.Order, error)

	// ListByUser returns the user's orders newest-first, after cancelling
	// any whose payment deadline has elapsed.
	ListByUser(userID string) ([]models.Order, error)

	// ListAll is the admin view, also expiry-checked.
	ListAll() ([]models.Order, error)

	// TransitionStatus moves an order along the lifecycle. The guarded
	// update only applies when the row still holds the expected current
	// status, so concurrent transitions apply once.
	TransitionStatus(orderID uint, next models.OrderStatus) error
}

type gormOrderStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderStore(db *gorm.DB) OrderStore {
	return &gormOrderStore{db: db, now: time.Now}
}

// cancelDuePayments flips every matching pending_payment order whose
// deadline has passed. The status guard in the WHERE makes concurrent
// readers idempotent: only one update ever changes a given row.
func (s *gormOrderStore) cancelDuePayments(scope *gorm.DB) error {
	return scope.
		Where("status = ? AND pay_deadline < ?", models.OrderStatusPendingPayment, s.now()).
		Update("status", models.OrderStatusCancelled).Error
}

func (s *gormOrderStore) FindByRefForUser(ref, userID string) (*models.Order, error) {
	if err := s.cancelDuePayments(
		s.db.Model(&models.Order{}).Where("ref = ? AND user_id = ?", ref, userID),
	); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.
		Preload("Items").
		Preload("ShippingAddress").
		Where("ref = ? AND user_id = ?", ref, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *gormOrderStore) ListByUser(userID string) ([]models.Order, error) {
	if err := s.cancelDuePayments(
		s.db.Model(&models.Order{}).Where("user_id = ?", userID),
	); err != nil {
		return nil, err
	}

	var orders []models.Order
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormOrderStore) ListAll() ([]models.Order, error) {
	if err := s.cancelDuePayments(s.db.Model(&models.Order{})); err != nil {
		return nil, err
	}

	var orders []models.Order
	err := s.db.
		Preload("User").
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *gormOrderStore) TransitionStatus(orderID uint, next models.OrderStatus) error {
	var order models.Order
	err := s.db.First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// Apply the lazy expiry before judging the transition.
	if order.PaymentExpiredAt(s.now()) {
		if err := s.cancelDuePayments(
			s.db.Model(&models.Order{}).Where("id = ?", orderID),
		); err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled
	}

	if !order.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, order.Status).
		Update("status", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent transition.
		return ErrInvalidTransition
	}
	return nil
}
