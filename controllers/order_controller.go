package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/middleware"
	"github.com/voyagelab/travel-backend/repository"
)

// OrderController serves the order history. Orders are immutable snapshots,
// so there is nothing here but reads.
type OrderController struct {
	orders repository.OrderRepository
}

func NewOrderController(orders repository.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

// ListOrders handles GET /orders and GET /orders/history.
func (oc *OrderController) ListOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := oc.orders.ForUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles GET /orders/:id.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := oc.orders.ByIDAndUser(c.Request.Context(), orderID, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
