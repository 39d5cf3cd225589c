// Package serializer converts domain models into the JSON shapes the API returns.
package serializer

import (
	"time"
	"unicode/utf8"

	"forum/internal/models"
	"forum/internal/repository"
)

// UserProfile is the public view of a user.
type UserProfile struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
}

// BoardResponse is a board with its live post count.
type BoardResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	PostCount   int64     `json:"post_count"`
}

// PostResponse is a post with its author embedded and content_length computed.
type PostResponse struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Author        UserProfile `json:"author"`
	Board         uint        `json:"board"`
	BoardName     string      `json:"board_name"`
	Views         uint        `json:"views"`
	ContentLength int         `json:"content_length"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Page is the envelope of a paginated list.
type Page[T any] struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Next     *int  `json:"next"`
	Previous *int  `json:"previous"`
	Results  []T   `json:"results"`
}

// AuthResponse is the envelope of every auth endpoint.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user,omitempty"`
	Message string       `json:"message"`
}

// ViewsResponse is returned by the view increment endpoint.
type ViewsResponse struct {
	Status string `json:"status"`
	Views  uint   `json:"views"`
}

func User(u *models.User) UserProfile {
	return UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		DateJoined: u.DateJoined,
	}
}

func Board(b *models.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		PostCount:   b.PostCount,
	}
}

func Boards(boards []models.Board) []BoardResponse {
	out := make([]BoardResponse, len(boards))
	for i := range boards {
		out[i] = Board(&boards[i])
	}
	return out
}

// Post serializes p. content_length counts characters, not bytes.
func Post(p *models.Post) PostResponse {
	return PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Author:        User(&p.Author),
		Board:         p.BoardID,
		BoardName:     p.Board.Name,
		Views:         p.Views,
		ContentLength: utf8.RuneCountInString(p.Content),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PostPage wraps one page of posts in the pagination envelope.
func PostPage(list *repository.PostList) Page[PostResponse] {
	results := make([]PostResponse, len(list.Posts))
	for i := range list.Posts {
		results[i] = Post(&list.Posts[i])
	}
	return Page[PostResponse]{
		Count:    list.Count,
		Page:     list.Page.Number,
		PageSize: list.Page.Size,
		Next:     list.Page.Next(list.Count),
		Previous: list.Page.Previous(),
		Results:  results,
	}
}

// Views builds the increment response.
func Views(n uint) ViewsResponse {
	return ViewsResponse{Status: "views incremented", Views: n}
}
