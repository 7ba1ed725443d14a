package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fixhub/middleware"
	"fixhub/models"
	"fixhub/services/matching"
)

const defaultStatsRadiusKm = 15.0

// MarketHandler exposes the provider feed and client-side market stats.
type MarketHandler struct {
	Svc matching.MatchingService
}

// NearbyRequests handles GET /api/requests/nearby.
func (h *MarketHandler) NearbyRequests(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var opts matching.NearbyOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	feed, err := h.Svc.NearbyRequests(actorID, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": feed})
}

// MarketStats handles GET /api/market/stats.
func (h *MarketHandler) MarketStats(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	radius := defaultStatsRadiusKm
	if raw := c.Query("radiusKm"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radiusKm must be a positive number"})
			return
		}
		radius = r
	}

	stats, err := h.Svc.MarketStats(category, models.Coordinates{Lat: lat, Lng: lng}, radius)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
