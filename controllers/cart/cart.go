package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/notify"
	"github.com/sahand-dev/bazaar-api/store"
)

type AddItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// UpdateItemsInput maps cart item ids to new quantities. Values arrive as
// strings; unparseable entries are skipped, not fatal.
type UpdateItemsInput struct {
	Quantities map[string]string `json:"quantities" binding:"required"`
}

// resolveIdentity reads whichever identity the auth middleware attached.
// Every cart handler resolves its cart through this one path.
func resolveIdentity(c *gin.Context) (store.Identity, bool) {
	if userID, ok := c.Get("user_id"); ok {
		return store.UserIdentity(userID.(string)), true
	}
	if key, ok := c.Get("session_key"); ok {
		return store.SessionIdentity(key.(string)), true
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	return store.Identity{}, false
}

type cartView struct {
	ID            uint              `json:"id"`
	Items         []models.CartItem `json:"items"`
	Subtotal      int64             `json:"subtotal"`
	DiscountTotal int64             `json:"discount_total"`
	Total         int64             `json:"total"`
}

func viewOf(cart *models.Cart) cartView {
	now := time.Now()
	return cartView{
		ID:            cart.ID,
		Items:         cart.Items,
		Subtotal:      cart.Subtotal(),
		DiscountTotal: cart.DiscountTotalAt(now),
		Total:         cart.FinalTotalAt(now),
	}
}

// GET /cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	carts := store.NewCartStore(db)
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c)
		if !ok {
			return
		}

		cart, err := carts.FindCartWithItems(identity)
		if errors.Is(err, store.ErrNotFound) {
			// The cart is created lazily; no cart yet is just empty.
			c.JSON(http.StatusOK, cartView{Items: []models.CartItem{}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, viewOf(cart))
	}
}

// POST /cart
func AddCartItem(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	carts := store.NewCartStore(db)
	products := store.NewProductStore(db)
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product, err := products.FindActiveByID(input.ProductID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := carts.GetOrCreateByIdentity(identity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve cart"})
			return
		}

		if err := carts.AddItem(cart.ID, product.ID, input.Quantity, input.Color, input.Size); err != nil {
			if errors.Is(err, store.ErrInvalidQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		hub.Broadcast("cart.item_added", "Product successfully added to the cart", gin.H{
			"product_id": product.ID,
			"quantity":   input.Quantity,
		})
		c.JSON(http.StatusCreated, gin.H{"message": "Product successfully added to the cart"})
	}
}

// PUT /cart
//
// Batch quantity update. A quantity of zero or less removes the line;
// entries that do not parse are skipped and the rest still apply. The
// response says whether anything changed.
func UpdateCartItems(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	carts := store.NewCartStore(db)
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c)
		if !ok {
			return
		}

		var input UpdateItemsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := carts.FindCartWithItems(identity)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		updated, deleted := 0, 0
		for rawID, rawQty := range input.Quantities {
			itemID, err := strconv.ParseUint(rawID, 10, 64)
			if err != nil {
				continue
			}
			qty, err := strconv.Atoi(rawQty)
			if err != nil {
				continue
			}

			err = carts.UpdateItemQuantity(cart.ID, uint(itemID), qty)
			switch {
			case errors.Is(err, store.ErrNotFound):
				continue
			case err != nil:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
				return
			case qty <= 0:
				deleted++
			default:
				updated++
			}
		}

		if updated == 0 && deleted == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "No changes were made to the cart"})
			return
		}
		hub.Broadcast("cart.updated", "Cart has been updated", gin.H{
			"updated": updated,
			"deleted": deleted,
		})
		c.JSON(http.StatusOK, gin.H{
			"message": "Cart has been updated",
			"updated": updated,
			"deleted": deleted,
		})
	}
}

// DELETE /cart/:item_id
func RemoveCartItem(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	carts := store.NewCartStore(db)
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c)
		if !ok {
			return
		}

		itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item_id"})
			return
		}

		cart, err := carts.FindCartWithItems(identity)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		err = carts.RemoveItem(cart.ID, uint(itemID))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}

		hub.Broadcast("cart.item_removed", "Cart item removed", gin.H{"item_id": itemID})
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /cart
func DeleteCart(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	carts := store.NewCartStore(db)
	return func(c *gin.Context) {
		identity, ok := resolveIdentity(c)
		if !ok {
			return
		}

		cart, err := carts.FindCartWithItems(identity)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := carts.DeleteCart(cart.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		hub.Broadcast("cart.cleared", "Cart cleared", nil)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
