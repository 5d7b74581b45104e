package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/voyagelab/travel-backend/logger"
	"github.com/voyagelab/travel-backend/repository"
)

// CatalogController serves the read-only package and service listings.
type CatalogController struct {
	catalog repository.CatalogRepository
}

func NewCatalogController(catalog repository.CatalogRepository) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// ListPackages handles GET /packages with destination, minPrice, maxPrice and
// duration filters.
func (cc *CatalogController) ListPackages(c *gin.Context) {
	filter := repository.PackageFilter{
		Destination: c.Query("destination"),
	}

	if v := c.Query("minPrice"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		filter.MinPrice = &price
	}
	if v := c.Query("maxPrice"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		filter.MaxPrice = &price
	}
	if v := c.Query("duration"); v != "" {
		duration, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration"})
			return
		}
		filter.Duration = &duration
	}

	packages, err := cc.catalog.ListPackages(c.Request.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list packages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch packages"})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// ListServices handles GET /services with type, minPrice and maxPrice filters.
func (cc *CatalogController) ListServices(c *gin.Context) {
	filter := repository.ServiceFilter{
		Type: c.Query("type"),
	}

	if v := c.Query("minPrice"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		filter.MinPrice = &price
	}
	if v := c.Query("maxPrice"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		filter.MaxPrice = &price
	}

	services, err := cc.catalog.ListServices(c.Request.Context(), filter)
	if err != nil {
		logger.Log.Error("failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	c.JSON(http.StatusOK, services)
}
