package models

import "time"

// Board is a forum category grouping posts.
type Board struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"<-:create" json:"created_at"`

	// PostCount is filled by a subquery on read and never persisted.
	PostCount int64 `gorm:"->;-:migration" json:"post_count"`
}
