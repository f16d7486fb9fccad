package service

import (
	"context"
	"testing"
	"time"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReviewServiceCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Review).ID = 17
			}).
			Return(nil)
		reviewRepo.On("GetByID", mock.Anything, int64(17)).Return(&models.Review{
			ID:          17,
			UserID:      "user-a",
			MovieID:     7,
			Content:     "great",
			RatingPoint: 8,
			CreatedAt:   time.Now(),
			User:        models.User{ID: "user-a", Username: "alice", Email: "alice@example.com"},
		}, nil)

		svc := NewReviewService(reviewRepo)
		review, err := svc.Create(context.Background(), "user-a", dto.CreateReviewRequest{
			MovieID:     7,
			Content:     "great",
			RatingPoint: 8,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(17), review.ID)
		assert.Equal(t, "alice", review.Author.Username)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("RatingOutOfRange", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)

		svc := NewReviewService(reviewRepo)
		_, err := svc.Create(context.Background(), "user-a", dto.CreateReviewRequest{
			MovieID:     7,
			Content:     "way too good",
			RatingPoint: 11,
		})

		assert.ErrorIs(t, err, ErrRatingOutOfRange)
		reviewRepo.AssertNotCalled(t, "Create")
	})
}

func TestReviewServiceListByMovie(t *testing.T) {
	t.Run("NoReviews", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("ListByMovie", mock.Anything, int64(7)).Return([]models.Review{}, nil)

		svc := NewReviewService(reviewRepo)
		_, err := svc.ListByMovie(context.Background(), 7, "")

		assert.ErrorIs(t, err, ErrNoReviews)
		reviewRepo.AssertNotCalled(t, "AverageForMovie")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("ListByMovie", mock.Anything, int64(7)).Return([]models.Review{
			{ID: 2, MovieID: 7, UserID: "user-b", RatingPoint: 4, User: models.User{Username: "bob"}},
			{ID: 1, MovieID: 7, UserID: "user-a", RatingPoint: 8, User: models.User{Username: "alice"}},
		}, nil)
		reviewRepo.On("AverageForMovie", mock.Anything, int64(7)).Return(6.00, nil)

		svc := NewReviewService(reviewRepo)
		result, err := svc.ListByMovie(context.Background(), 7, "")

		assert.NoError(t, err)
		assert.Len(t, result.Entries, 2)
		assert.Equal(t, "bob", result.Entries[0].Author.Username)
		assert.Equal(t, 6.00, result.AverageRating)
		assert.Equal(t, 0.00, result.UserAverageRating)
		reviewRepo.AssertNotCalled(t, "AverageForMovieAndUser")
	})

	t.Run("Authenticated", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("ListByMovie", mock.Anything, int64(7)).Return([]models.Review{
			{ID: 1, MovieID: 7, UserID: "user-a", RatingPoint: 8, User: models.User{Username: "alice"}},
		}, nil)
		reviewRepo.On("AverageForMovie", mock.Anything, int64(7)).Return(6.00, nil)
		reviewRepo.On("AverageForMovieAndUser", mock.Anything, int64(7), "user-a").Return(8.00, nil)

		svc := NewReviewService(reviewRepo)
		result, err := svc.ListByMovie(context.Background(), 7, "user-a")

		assert.NoError(t, err)
		assert.Equal(t, 6.00, result.AverageRating)
		assert.Equal(t, 8.00, result.UserAverageRating)
		reviewRepo.AssertExpectations(t)
	})
}
