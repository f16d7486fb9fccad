package repository

import (
	"context"
	"fmt"

	"moviemarks/internal/httpapi/models"

	"gorm.io/gorm"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Bookmark, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	MovieIDsByUser(ctx context.Context, userID string) ([]int64, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	DeleteByUserAndMovie(ctx context.Context, userID string, movieID int64) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// ListByUser returns one page of the user's bookmarks, most recently
// bookmarked first. Ordering before the offset keeps pages stable.
func (r *bookmarkRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *bookmarkRepository) MovieIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Pluck("movie_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByUserAndMovie removes the bookmark scoped to the authenticated
// owner. Destructive operations are never scoped by movie alone.
func (r *bookmarkRepository) DeleteByUserAndMovie(ctx context.Context, userID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Bookmark{})

	if result.Error != nil {
		return fmt.Errorf("delete bookmark: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
