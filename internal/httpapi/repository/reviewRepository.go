package repository

import (
	"context"

	"moviemarks/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error)
	ListByMovies(ctx context.Context, movieIDs []int64) ([]models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	AverageForMovie(ctx context.Context, movieID int64) (float64, error)
	AverageForMovieAndUser(ctx context.Context, movieID int64, userID string) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review. Multiple reviews per (user, movie) are
// allowed; each submission is a new record.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID retrieves a review with its author resolved for display.
func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByMovie retrieves all reviews for a movie, newest first, with authors
// resolved.
func (r *reviewRepository) ListByMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByMovies retrieves every review for the given set of movies in one
// query. Used by the enrichment pipeline to feed the batch aggregator.
func (r *reviewRepository) ListByMovies(ctx context.Context, movieIDs []int64) ([]models.Review, error) {
	if len(movieIDs) == 0 {
		return nil, nil
	}
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("movie_id IN ?", movieIDs).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageForMovie is the store-side aggregation path. Rounded to 2 decimal
// places half away from zero, matching rating.Round2.
func (r *reviewRepository) AverageForMovie(ctx context.Context, movieID int64) (float64, error) {
	var avg struct {
		Average float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(ROUND(AVG(rating_point)::numeric, 2), 0)::float8 as average").
		Where("movie_id = ?", movieID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg.Average, nil
}

// AverageForMovieAndUser restricts the average to one user's own reviews.
func (r *reviewRepository) AverageForMovieAndUser(ctx context.Context, movieID int64, userID string) (float64, error) {
	var avg struct {
		Average float64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(ROUND(AVG(rating_point)::numeric, 2), 0)::float8 as average").
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg.Average, nil
}
