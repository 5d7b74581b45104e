package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyagelab/travel-backend/apperrors"
	"github.com/voyagelab/travel-backend/middleware"
	"github.com/voyagelab/travel-backend/services"
)

type TripController struct {
	trips *services.TripService
}

func NewTripController(trips *services.TripService) *TripController {
	return &TripController{trips: trips}
}

// ListTrips handles GET /trips.
func (tc *TripController) ListTrips(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	trips, err := tc.trips.ForUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// CreateTrip handles POST /trips.
func (tc *TripController) CreateTrip(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	trip, err := tc.trips.Create(c.Request.Context(), userID, in.Name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// AddService handles POST /trips/:tripId/services.
func (tc *TripController) AddService(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	var in struct {
		ServiceID uuid.UUID `json:"service_id" binding:"required"`
		Quantity  int       `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ts, err := tc.trips.AddService(c.Request.Context(), userID, tripID, in.ServiceID, in.Quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

// RemoveService handles DELETE /trips/:tripId/services.
func (tc *TripController) RemoveService(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tripID, err := uuid.Parse(c.Param("tripId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}

	var in struct {
		ServiceID uuid.UUID `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := tc.trips.RemoveService(c.Request.Context(), userID, tripID, in.ServiceID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
