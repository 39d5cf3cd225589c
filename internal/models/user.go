// Package models contains data structures for the forum's domain models.
package models

import "time"

// User is a registered account. Password holds the bcrypt hash.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"size:254;not null;default:''" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	DateJoined time.Time `gorm:"autoCreateTime;<-:create" json:"date_joined"`
}

// Caller identifies who is performing an operation. The zero value is anonymous.
type Caller struct {
	UserID uint
}

// Authenticated reports whether the caller holds a live session.
func (c Caller) Authenticated() bool {
	return c.UserID != 0
}
