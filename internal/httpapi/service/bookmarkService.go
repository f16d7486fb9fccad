package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"moviemarks/internal/httpapi/dto"
	"moviemarks/internal/httpapi/models"
	"moviemarks/internal/httpapi/repository"
	"moviemarks/internal/rating"

	"gorm.io/gorm"
)

var (
	ErrAlreadyBookmarked = errors.New("movie already bookmarked")
	ErrBookmarkNotFound  = errors.New("bookmark not found")
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type BookmarkService interface {
	Add(ctx context.Context, userID string, req dto.AddBookmarkRequest) (*models.Bookmark, error)
	Remove(ctx context.Context, userID string, movieID int64) error
	ListByUser(ctx context.Context, userID string, page, limit int) (*dto.BookmarkPageResponse, error)
	CatalogOverview(ctx context.Context, userID string) (*dto.CatalogOverviewResponse, error)
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	reviewRepo   repository.ReviewRepository
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, reviewRepo repository.ReviewRepository) BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		reviewRepo:   reviewRepo,
	}
}

// Add bookmarks a movie for the user. At most one active bookmark per
// (user, movie) is allowed; a second attempt is a conflict.
func (s *bookmarkService) Add(ctx context.Context, userID string, req dto.AddBookmarkRequest) (*models.Bookmark, error) {
	exists, err := s.bookmarkRepo.Exists(ctx, userID, req.MovieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBookmarked
	}

	bookmark := &models.Bookmark{
		UserID:     userID,
		MovieID:    req.MovieID,
		PosterPath: req.PosterPath,
		Title:      req.Title,
		Popularity: req.Popularity,
		IsBookmark: true,
	}
	if req.ReleaseDate != "" {
		released, err := time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		bookmark.ReleaseDate = &released
	}

	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// Remove deletes the user's own bookmark for a movie. Deleting a bookmark
// that does not exist is a not-found outcome, never a silent no-op.
func (s *bookmarkService) Remove(ctx context.Context, userID string, movieID int64) error {
	if err := s.bookmarkRepo.DeleteByUserAndMovie(ctx, userID, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return err
	}
	return nil
}

// ListByUser returns one page of the user's bookmarks enriched with both
// rating averages. Non-positive page and limit values fall back to the
// defaults instead of propagating through the offset arithmetic.
func (s *bookmarkService) ListByUser(ctx context.Context, userID string, page, limit int) (*dto.BookmarkPageResponse, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	total, err := s.bookmarkRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	movieIDs := make([]int64, 0, len(bookmarks))
	for _, b := range bookmarks {
		movieIDs = append(movieIDs, b.MovieID)
	}

	reviews, err := s.reviewRepo.ListByMovies(ctx, movieIDs)
	if err != nil {
		return nil, err
	}
	aggregates := rating.ByMovie(toEntries(reviews), userID)

	entries := make([]dto.EnrichedBookmarkEntry, 0, len(bookmarks))
	for _, b := range bookmarks {
		agg := aggregates[b.MovieID]
		entry := dto.EnrichedBookmarkEntry{
			MovieID:              b.MovieID,
			Title:                b.Title,
			PosterPath:           b.PosterPath,
			Popularity:           b.Popularity,
			IsBookmark:           b.IsBookmark,
			OverallAverageRating: agg.OverallAverage,
			UserAverageRating:    agg.UserAverage,
			CreatedAt:            b.CreatedAt,
		}
		if b.ReleaseDate != nil {
			released := b.ReleaseDate.Format("2006-01-02")
			entry.ReleaseDate = &released
		}
		entries = append(entries, entry)
	}

	return &dto.BookmarkPageResponse{
		Entries:    entries,
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// CatalogOverview covers the union of every movie with at least one review
// and every movie the requesting user has bookmarked, even with zero
// reviews. Pass an empty userID for unauthenticated requests; every entry
// then has is_bookmark false and a zero user average.
func (s *bookmarkService) CatalogOverview(ctx context.Context, userID string) (*dto.CatalogOverviewResponse, error) {
	reviews, err := s.reviewRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	aggregates := rating.ByMovie(toEntries(reviews), userID)

	bookmarked := make(map[int64]bool)
	if userID != "" {
		ids, err := s.bookmarkRepo.MovieIDsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			bookmarked[id] = true
		}
	}

	union := make(map[int64]bool, len(aggregates)+len(bookmarked))
	for id := range aggregates {
		union[id] = true
	}
	for id := range bookmarked {
		union[id] = true
	}

	// ascending movie id keeps the order deterministic
	movieIDs := make([]int64, 0, len(union))
	for id := range union {
		movieIDs = append(movieIDs, id)
	}
	sort.Slice(movieIDs, func(i, j int) bool { return movieIDs[i] < movieIDs[j] })

	entries := make([]dto.CatalogEntry, 0, len(movieIDs))
	for _, id := range movieIDs {
		agg := aggregates[id]
		entries = append(entries, dto.CatalogEntry{
			MovieID:              id,
			IsBookmark:           bookmarked[id],
			OverallAverageRating: agg.OverallAverage,
			UserAverageRating:    agg.UserAverage,
		})
	}

	return &dto.CatalogOverviewResponse{Entries: entries}, nil
}

func toEntries(reviews []models.Review) []rating.Entry {
	entries := make([]rating.Entry, 0, len(reviews))
	for _, r := range reviews {
		entries = append(entries, rating.Entry{
			MovieID: r.MovieID,
			UserID:  r.UserID,
			Points:  r.RatingPoint,
		})
	}
	return entries
}
