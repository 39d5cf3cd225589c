package models

import "time"

// Post is a user-authored message belonging to one board.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"author"`
	BoardID   uint      `gorm:"not null;index" json:"board_id"`
	Board     Board     `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE;" json:"-"`
	Views     uint      `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
