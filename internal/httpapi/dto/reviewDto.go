package dto

import (
	"time"

	"moviemarks/internal/httpapi/models"
)

// CreateReviewRequest for submitting a new review
type CreateReviewRequest struct {
	MovieID     int64   `json:"movie_id" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	RatingPoint float64 `json:"rating_point" binding:"min=0,max=10"`
}

// ReviewAuthor carries the public profile fields resolved for display
type ReviewAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	Email    string `json:"email"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID          int64        `json:"id"`
	MovieID     int64        `json:"movie_id"`
	Content     string       `json:"content"`
	RatingPoint float64      `json:"rating_point"`
	CreatedAt   time.Time    `json:"created_at"`
	Author      ReviewAuthor `json:"author"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:          review.ID,
		MovieID:     review.MovieID,
		Content:     review.Content,
		RatingPoint: review.RatingPoint,
		CreatedAt:   review.CreatedAt,
		Author: ReviewAuthor{
			ID:       review.User.ID,
			Username: review.User.Username,
			FullName: review.User.FullName,
			Avatar:   review.User.Avatar,
			Email:    review.User.Email,
		},
	}
}

// MovieReviewsResponse for returning all reviews of a movie with the overall
// average rating. UserAverageRating is scoped to the requesting user and 0
// for unauthenticated callers.
type MovieReviewsResponse struct {
	Entries           []ReviewResponse `json:"entries"`
	AverageRating     float64          `json:"average_rating"`
	UserAverageRating float64          `json:"user_average_rating"`
}
