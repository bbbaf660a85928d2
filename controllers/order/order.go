package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sahand-dev/bazaar-api/checkout"
	"github.com/sahand-dev/bazaar-api/models"
	"github.com/sahand-dev/bazaar-api/notify"
	"github.com/sahand-dev/bazaar-api/store"
)

type CheckoutRequest struct {
	ShippingAddressID uint   `json:"shipping_address_id" binding:"required"`
	PaymentMethod     string `json:"payment_method" binding:"required"`
	ShippingMethod    string `json:"shipping_method" binding:"required"`
	Notes             string `json:"notes"`
	CouponCode        string `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Checkout requires an authenticated user"})
		return "", false
	}
	return userID.(string), true
}

// POST /orders
func CheckoutHandler(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// The address must belong to the buyer.
		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", req.ShippingAddressID, userID).
			First(&address).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address not found"})
			return
		}

		order, err := checkout.CreateOrder(db, checkout.Input{
			UserID:            userID,
			ShippingAddressID: req.ShippingAddressID,
			PaymentMethod:     models.PaymentMethod(req.PaymentMethod),
			ShippingMethod:    models.ShippingMethod(req.ShippingMethod),
			Notes:             req.Notes,
			CouponCode:        req.CouponCode,
		})
		switch {
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrCartNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
			return
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock for one of the cart items"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}

		hub.Broadcast("order.created", "Order placed successfully", gin.H{
			"ref":         order.Ref,
			"grand_total": order.GrandTotal,
		})
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   order,
		})
	}
}

// GET /orders
func ListMyOrders(db *gorm.DB) gin.HandlerFunc {
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		list, err := orders.ListByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /orders/:ref
func GetMyOrder(db *gorm.DB) gin.HandlerFunc {
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		order, err := orders.FindByRefForUser(c.Param("ref"), userID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func ListAllOrders(db *gorm.DB) gin.HandlerFunc {
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		list, err := orders.ListAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatus(db *gorm.DB, hub *notify.Hub) gin.HandlerFunc {
	orders := store.NewOrderStore(db)
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderID"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err = orders.TransitionStatus(uint(orderID), models.OrderStatus(req.Status))
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		case errors.Is(err, store.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status transition not allowed"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		hub.Broadcast("order.status_changed", "Order status updated", gin.H{
			"order_id": orderID,
			"status":   req.Status,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
