// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxUsernameLength  = 150
	MinPasswordLength  = 8
	MaxPasswordLength  = 72
	MaxBoardNameLength = 100
	MaxPostTitleLength = 200
)

var usernameRegex = regexp.MustCompile(`^[\p{L}\p{N}@.+_-]+$`)

// ValidateUsername checks length and the allowed character set: letters, digits and @.+-_
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits and @/./+/-/_")
	}
	return nil
}

// ValidatePassword checks if a password meets length requirements
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	// bcrypt refuses input longer than 72 bytes.
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d bytes", MaxPasswordLength)
	}
	return nil
}

// ValidateEmail accepts an empty value or a single bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// ValidateBoard checks the writable board fields.
func ValidateBoard(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxBoardNameLength {
		return fmt.Errorf("name must not exceed %d characters", MaxBoardNameLength)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}

// ValidatePost checks the writable post text fields.
func ValidatePost(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxPostTitleLength {
		return fmt.Errorf("title must not exceed %d characters", MaxPostTitleLength)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
