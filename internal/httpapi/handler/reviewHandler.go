package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Create submits a new review for the authenticated user
// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.Create(ctx, userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrRatingOutOfRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "review created successfully",
		"review":  review,
	})
}

// ListByMovie returns all reviews of a movie with the overall average.
// A movie without reviews is a not-found outcome with an empty entry list.
// Works without authentication; the user average is 0 then.
// GET /api/movies/:movie_id/reviews
func (h *ReviewHandler) ListByMovie(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie_id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.svc.ListByMovie(ctx, movieID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, service.ErrNoReviews) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":          "no reviews found for this movie",
				"entries":        []dto.ReviewResponse{},
				"average_rating": 0,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, result)
}
