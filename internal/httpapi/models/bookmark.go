package models

import "time"

// Bookmark carries a snapshot of the movie's metadata taken at the time the
// bookmark was created. Snapshot fields are never refreshed from the upstream
// catalog; staleness is accepted.
type Bookmark struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string     `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_movie"`
	MovieID     int64      `json:"movie_id" gorm:"not null;uniqueIndex:idx_bookmarks_user_movie"`
	PosterPath  string     `json:"poster_path" gorm:"not null"`
	Title       string     `json:"title" gorm:"not null"`
	Popularity  float64    `json:"popularity" gorm:"default:0"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	IsBookmark  bool       `json:"is_bookmark" gorm:"default:true"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
