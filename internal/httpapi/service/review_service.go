package service

import (
	"context"
	"errors"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/models"
	"moviemarks/internal/httpapi/repository"
)

var (
	ErrNoReviews        = errors.New("no reviews found for this movie")
	ErrRatingOutOfRange = errors.New("rating point must be between 0 and 10")
)

type ReviewService interface {
	Create(ctx context.Context, userID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	ListByMovie(ctx context.Context, movieID int64, userID string) (*dto.MovieReviewsResponse, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// Create inserts a new review. Every submission is a new record; users may
// review the same movie more than once (revisions). The rating bound is
// enforced here as well as at the binding layer.
func (s *reviewService) Create(ctx context.Context, userID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.RatingPoint < 0 || req.RatingPoint > 10 {
		return nil, ErrRatingOutOfRange
	}

	review := &models.Review{
		UserID:      userID,
		MovieID:     req.MovieID,
		Content:     req.Content,
		RatingPoint: req.RatingPoint,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Reload with the author resolved for display
	stored, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(stored), nil
}

// ListByMovie returns all reviews for a movie, newest first, plus the
// overall average rating computed store-side. When the caller is
// authenticated their own average is included; it stays 0 otherwise.
func (s *reviewService) ListByMovie(ctx context.Context, movieID int64, userID string) (*dto.MovieReviewsResponse, error) {
	reviews, err := s.reviewRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	average, err := s.reviewRepo.AverageForMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	var userAverage float64
	if userID != "" {
		userAverage, err = s.reviewRepo.AverageForMovieAndUser(ctx, movieID, userID)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]dto.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		entries = append(entries, *dto.FromModelToReviewResponse(&review))
	}

	return &dto.MovieReviewsResponse{
		Entries:           entries,
		AverageRating:     average,
		UserAverageRating: userAverage,
	}, nil
}
