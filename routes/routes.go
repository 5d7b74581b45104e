package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyagelab/travel-backend/controllers"
	"github.com/voyagelab/travel-backend/middleware"
)

// Controllers bundles the handlers registered by Register.
type Controllers struct {
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Trip     *controllers.TripController
	Checkout *controllers.CheckoutController
	Order    *controllers.OrderController
}

// Register wires all routes. The catalog is public; everything touching a
// user's cart, trips or orders goes through the auth middleware.
func Register(r *gin.Engine, c *Controllers, jwtSecret string) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/packages", c.Catalog.ListPackages)
	r.GET("/services", c.Catalog.ListServices)

	authed := r.Group("/")
	authed.Use(middleware.Auth(jwtSecret))

	authed.GET("/trips", c.Trip.ListTrips)
	authed.POST("/trips", c.Trip.CreateTrip)
	authed.POST("/trips/:tripId/services", c.Trip.AddService)
	authed.DELETE("/trips/:tripId/services", c.Trip.RemoveService)

	authed.GET("/cart", c.Cart.GetCart)
	authed.POST("/cart", c.Cart.AddItem)
	authed.DELETE("/cart", c.Cart.ClearCart)
	authed.DELETE("/cart/:itemId", c.Cart.RemoveItem)

	authed.POST("/checkout", c.Checkout.Checkout)

	authed.GET("/orders", c.Order.ListOrders)
	authed.GET("/orders/history", c.Order.ListOrders)
	authed.GET("/orders/:id", c.Order.GetOrderByID)
}
