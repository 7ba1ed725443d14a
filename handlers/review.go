package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixhub/middleware"
	"fixhub/services/review"
)

// ReviewHandler exposes review creation and the provider review feed.
type ReviewHandler struct {
	Svc review.ReviewService
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actorID, _ := middleware.Actor(c)

	var in review.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	r, err := h.Svc.Create(actorID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListProviderReviews handles GET /api/providers/:id/reviews.
func (h *ReviewHandler) ListProviderReviews(c *gin.Context) {
	reviews, err := h.Svc.ListForProvider(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
