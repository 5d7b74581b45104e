package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/middleware"
	"github.com/voyagelab/travel-backend/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Checkout handles POST /checkout. An optional Idempotency-Key header makes
// retried requests return the original order instead of creating another.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	order, err := cc.checkout.Checkout(c.Request.Context(), userID, c.GetHeader("Idempotency-Key"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
