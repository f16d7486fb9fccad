package models

import "time"

type Review struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	MovieID     int64     `json:"movie_id" gorm:"not null;index"`
	Content     string    `json:"content" gorm:"not null"`
	RatingPoint float64   `json:"rating_point" gorm:"not null;check:rating_point >= 0 AND rating_point <= 10"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
