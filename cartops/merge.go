// Package cartops holds cart operations that span more than one cart.
package cartops

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
)

// MergeGuestCart folds the anonymous cart behind sessionKey into the user's
// cart. Lines matching on (product, color, size) have their quantities
// summed; the rest are reassigned, then the guest cart is deleted. The whole
// merge runs in one transaction and reports (false, nil) when there is
// nothing to merge.
//
// Called explicitly from the login success path. Failures must be logged by
// the caller and never abort the login.
func MergeGuestCart(db *gorm.DB, sessionKey, userID string) (bool, error) {
	if sessionKey == "" {
		return false, nil
	}

	merged := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var guestCart models.Cart
		err := tx.Preload("Items").
			Where("session_key = ? AND user_id IS NULL", sessionKey).
			First(&guestCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var userCart models.Cart
		err = tx.Where("user_id = ?", userID).First(&userCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userCart = models.Cart{UserID: &userID}
			if err := tx.Create(&userCart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		for _, guestItem := range guestCart.Items {
			var userItem models.CartItem
			lookupErr := tx.Where(
				"cart_id = ? AND product_id = ? AND color = ? AND size = ?",
				userCart.ID, guestItem.ProductID, guestItem.Color, guestItem.Size,
			).First(&userItem).Error

			switch {
			case lookupErr == nil:
				userItem.Quantity += guestItem.Quantity
				userItem.AddedAt = time.Now()
				if err := tx.Save(&userItem).Error; err != nil {
					return err
				}
				if err := tx.Delete(&models.CartItem{}, guestItem.ID).Error; err != nil {
					return err
				}
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				// Move the line, don't copy it.
				if err := tx.Model(&models.CartItem{}).
					Where("id = ?", guestItem.ID).
					Update("cart_id", userCart.ID).Error; err != nil {
					return err
				}
			default:
				return lookupErr
			}
		}

		if err := tx.Where("cart_id = ?", guestCart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Cart{}, guestCart.ID).Error; err != nil {
			return err
		}

		merged = true
		return nil
	})

	return merged, err
}
