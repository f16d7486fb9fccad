package dto

import "time"

// AddBookmarkRequest: payload to bookmark a movie. Metadata fields are a
// snapshot of the upstream catalog entry at bookmark time.
type AddBookmarkRequest struct {
	MovieID     int64   `json:"movie_id" binding:"required"`
	PosterPath  string  `json:"poster_path" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Popularity  float64 `json:"popularity"`
	ReleaseDate string  `json:"release_date" binding:"omitempty,datetime=2006-01-02"`
}

// EnrichedBookmarkEntry is a bookmark joined with its derived rating data.
type EnrichedBookmarkEntry struct {
	MovieID              int64     `json:"movie_id"`
	Title                string    `json:"title"`
	PosterPath           string    `json:"poster_path"`
	Popularity           float64   `json:"popularity"`
	ReleaseDate          *string   `json:"release_date"` // YYYY-MM-DD, null when unknown
	IsBookmark           bool      `json:"is_bookmark"`
	OverallAverageRating float64   `json:"overall_average_rating"`
	UserAverageRating    float64   `json:"user_average_rating"`
	CreatedAt            time.Time `json:"created_at"`
}

// Pagination metadata for the bookmark list. TotalBookmarks is the full
// count for the user, unaffected by paging.
type Pagination struct {
	TotalBookmarks int64 `json:"total_bookmarks"`
	TotalPages     int   `json:"total_pages"`
	CurrentPage    int   `json:"current_page"`
	PageSize       int   `json:"page_size"`
}

// BookmarkPageResponse: one page of enriched bookmarks plus pagination
// metadata.
type BookmarkPageResponse struct {
	Entries    []EnrichedBookmarkEntry `json:"entries"`
	Pagination Pagination              `json:"pagination"`
}

// NewPagination computes pagination metadata from the total count.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return Pagination{
		TotalBookmarks: total,
		TotalPages:     totalPages,
		CurrentPage:    page,
		PageSize:       limit,
	}
}

// CatalogEntry is one movie in the full-catalog overview.
type CatalogEntry struct {
	MovieID              int64   `json:"movie_id"`
	IsBookmark           bool    `json:"is_bookmark"`
	OverallAverageRating float64 `json:"overall_average_rating"`
	UserAverageRating    float64 `json:"user_average_rating"`
}

// CatalogOverviewResponse: every movie that has a review or is bookmarked by
// the requesting user.
type CatalogOverviewResponse struct {
	Entries []CatalogEntry `json:"entries"`
}
