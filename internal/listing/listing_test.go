package listing

import (
	"testing"

	"forum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSpec_Parse(t *testing.T) {
	tests := []struct {
		name       string
		params     map[string]string
		wantSQL    []string
		wantArgs   [][]interface{}
		wantOrders []string
	}{
		{
			name:       "defaults",
			params:     map[string]string{},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "unknown keys ignored",
			params:     map[string]string{"colour": "blue", "board": ""},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "board filter",
			params:     map[string]string{"board": "3"},
			wantSQL:    []string{"posts.board_id = ?"},
			wantArgs:   [][]interface{}{{uint(3)}},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "author and board sorted by key",
			params:     map[string]string{"board": "3", "author": "9"},
			wantSQL:    []string{"posts.author_id = ?", "posts.board_id = ?"},
			wantArgs:   [][]interface{}{{uint(9)}, {uint(3)}},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:    "search escapes wildcards",
			params:  map[string]string{"search": "50%_Off"},
			wantSQL: []string{`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\')`},
			wantArgs: [][]interface{}{
				{`%50\%\_off%`, `%50\%\_off%`},
			},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:   "search terms are ANDed",
			params: map[string]string{"search": "go  fiber"},
			wantSQL: []string{
				`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\')`,
				`(LOWER(posts.title) LIKE ? ESCAPE '\' OR LOWER(posts.content) LIKE ? ESCAPE '\')`,
			},
			wantArgs:   [][]interface{}{{"%go%", "%go%"}, {"%fiber%", "%fiber%"}},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "author username",
			params:     map[string]string{"author_username": "Ali"},
			wantSQL:    []string{`posts.author_id IN (SELECT users.id FROM users WHERE LOWER(users.username) LIKE ? ESCAPE '\')`},
			wantArgs:   [][]interface{}{{"%ali%"}},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "blank ordering keeps default",
			params:     map[string]string{"ordering": " , ,"},
			wantOrders: []string{"posts.created_at DESC", "posts.id DESC"},
		},
		{
			name:       "content length ascending",
			params:     map[string]string{"ordering": "content_length"},
			wantOrders: []string{"LENGTH(posts.content) ASC", "posts.id DESC"},
		},
		{
			name:       "multiple orderings with alias",
			params:     map[string]string{"ordering": "-views, content_len"},
			wantOrders: []string{"posts.views DESC", "LENGTH(posts.content) ASC", "posts.id DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := PostSpec.Parse(tt.params)
			require.NoError(t, err)

			require.Len(t, q.Conditions, len(tt.wantSQL))
			for i, c := range q.Conditions {
				assert.Equal(t, tt.wantSQL[i], c.SQL)
				assert.Equal(t, tt.wantArgs[i], c.Args)
			}
			assert.Equal(t, tt.wantOrders, q.Orders)
		})
	}
}

func TestPostSpec_ParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"non integer board", map[string]string{"board": "abc"}},
		{"zero author", map[string]string{"author": "0"}},
		{"negative board", map[string]string{"board": "-1"}},
		{"unknown ordering", map[string]string{"ordering": "title"}},
		{"bare dash ordering", map[string]string{"ordering": "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PostSpec.Parse(tt.params)
			require.Error(t, err)
			assert.True(t, models.IsCode(err, models.CodeValidation))
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		wantNum  int
		wantSize int
		wantErr  bool
	}{
		{"defaults", map[string]string{}, 1, 10, false},
		{"explicit", map[string]string{"page": "3", "page_size": "20"}, 3, 20, false},
		{"clamped size", map[string]string{"page_size": "1000"}, 1, 100, false},
		{"bad size falls back", map[string]string{"page_size": "zero"}, 1, 10, false},
		{"bad page", map[string]string{"page": "two"}, 0, 0, true},
		{"zero page", map[string]string{"page": "0"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePage(tt.params, 10, 100)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, p.Number)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestPage_Resolve(t *testing.T) {
	p := Page{Number: 1, Size: 10}

	got, err := p.Resolve(0)
	require.NoError(t, err)
	assert.Nil(t, got.Next(0))
	assert.Nil(t, got.Previous())

	p = Page{Number: 2, Size: 10}
	got, err = p.Resolve(25)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Offset())
	require.NotNil(t, got.Next(25))
	assert.Equal(t, 3, *got.Next(25))
	require.NotNil(t, got.Previous())
	assert.Equal(t, 1, *got.Previous())

	_, err = Page{Number: 4, Size: 10}.Resolve(25)
	assert.ErrorIs(t, err, ErrInvalidPage)

	last, err := ParsePage(map[string]string{"page": "last"}, 10, 100)
	require.NoError(t, err)
	got, err = last.Resolve(25)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Number)
	assert.Nil(t, got.Next(25))
}
