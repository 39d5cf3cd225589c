package listing

import (
	"strconv"
	"strings"

	"forum/internal/models"
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
	last   bool
}

// ErrInvalidPage is returned for page numbers that are not integers or lie past the last page.
var ErrInvalidPage = &models.AppError{Code: models.CodeNotFound, Message: "Invalid page."}

// ParsePage reads page and page_size. A bad page_size falls back to defaultSize; sizes
// above maxSize are clamped. page may be "last".
func ParsePage(params map[string]string, defaultSize, maxSize int) (Page, error) {
	p := Page{Number: 1, Size: defaultSize}

	if raw := strings.TrimSpace(params["page_size"]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = min(n, maxSize)
		}
	}

	switch raw := strings.TrimSpace(params["page"]); raw {
	case "":
	case "last":
		p.last = true
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPage
		}
		p.Number = n
	}

	return p, nil
}

// Resolve checks the page against the total row count and fixes up "last".
// The first page always exists, even when empty.
func (p Page) Resolve(count int64) (Page, error) {
	pages := p.pages(count)
	if p.last {
		p.Number = pages
		p.last = false
	}
	if p.Number > pages {
		return Page{}, ErrInvalidPage
	}
	return p, nil
}

func (p Page) pages(count int64) int {
	if count <= 0 {
		return 1
	}
	return int((count + int64(p.Size) - 1) / int64(p.Size))
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Next returns the following page number, or nil on the last page.
func (p Page) Next(count int64) *int {
	if p.Number >= p.pages(count) {
		return nil
	}
	n := p.Number + 1
	return &n
}

// Previous returns the preceding page number, or nil on the first page.
func (p Page) Previous() *int {
	if p.Number <= 1 {
		return nil
	}
	n := p.Number - 1
	return &n
}
