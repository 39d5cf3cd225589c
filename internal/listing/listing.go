// Package listing turns list query parameters into filter, search and ordering clauses
// driven by a declarative per-resource table.
package listing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"forum/internal/models"

	"gorm.io/gorm"
)

// Match selects how a filter compares its value.
type Match int

const (
	// Exact compares a positive integer id for equality.
	Exact Match = iota
	// IContains is a case-insensitive substring match.
	IContains
)

// Filter maps one query parameter onto a column. Column may be any SQL expression;
// for IContains it must be a single text column.
type Filter struct {
	Column string
	Match  Match
	// Where overrides the generated clause. It must contain exactly one placeholder.
	Where string
}

// Spec declares which facets a resource list accepts.
type Spec struct {
	Filters map[string]Filter

	SearchParam   string
	SearchColumns []string

	OrderingParam string
	// Ordering maps public field names onto SQL expressions.
	Ordering        map[string]string
	DefaultOrdering []string
	// Tiebreak is appended to every ordering so pages are stable.
	Tiebreak string
}

// Condition is one WHERE clause with its arguments.
type Condition struct {
	SQL  string
	Args []interface{}
}

// Query is a parsed list request.
type Query struct {
	Conditions []Condition
	Orders     []string
}

// Parse reads params against the spec. Unknown keys and empty values are ignored;
// malformed values for known keys are validation errors.
func (s Spec) Parse(params map[string]string) (Query, error) {
	var q Query

	names := make([]string, 0, len(s.Filters))
	for name := range s.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		raw := strings.TrimSpace(params[name])
		if raw == "" {
			continue
		}
		cond, err := s.Filters[name].condition(name, raw)
		if err != nil {
			return Query{}, err
		}
		q.Conditions = append(q.Conditions, cond)
	}

	if s.SearchParam != "" && len(s.SearchColumns) > 0 {
		for _, term := range searchTerms(params[s.SearchParam]) {
			q.Conditions = append(q.Conditions, s.searchCondition(term))
		}
	}

	orders, err := s.orders(params[s.OrderingParam])
	if err != nil {
		return Query{}, err
	}
	q.Orders = orders

	return q, nil
}

func (f Filter) condition(name, raw string) (Condition, error) {
	switch f.Match {
	case Exact:
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return Condition{}, models.NewValidationError(fmt.Sprintf("%s must be a positive integer", name))
		}
		return Condition{SQL: f.clause(f.Column + " = ?"), Args: []interface{}{uint(id)}}, nil
	case IContains:
		return Condition{SQL: f.clause(likeClause(f.Column)), Args: []interface{}{containsPattern(raw)}}, nil
	default:
		return Condition{}, fmt.Errorf("listing: unknown match %d for %s", f.Match, name)
	}
}

func (f Filter) clause(generated string) string {
	if f.Where != "" {
		return f.Where
	}
	return generated
}

func (s Spec) searchCondition(term string) Condition {
	clauses := make([]string, len(s.SearchColumns))
	args := make([]interface{}, len(s.SearchColumns))
	pattern := containsPattern(term)
	for i, col := range s.SearchColumns {
		clauses[i] = likeClause(col)
		args[i] = pattern
	}
	return Condition{SQL: "(" + strings.Join(clauses, " OR ") + ")", Args: args}
}

func (s Spec) orders(raw string) ([]string, error) {
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		fields = s.DefaultOrdering
	}

	orders := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		dir := "ASC"
		name := f
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			name = f[1:]
		}
		expr, ok := s.Ordering[name]
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("cannot order by %q", name))
		}
		orders = append(orders, expr+" "+dir)
	}
	if s.Tiebreak != "" {
		orders = append(orders, s.Tiebreak)
	}
	return orders, nil
}

// searchTerms splits a search value on whitespace and commas. Every term must match.
func searchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// Filter applies the WHERE conditions to db.
func (q Query) Filter(db *gorm.DB) *gorm.DB {
	for _, c := range q.Conditions {
		db = db.Where(c.SQL, c.Args...)
	}
	return db
}

// Order applies the ORDER BY terms to db.
func (q Query) Order(db *gorm.DB) *gorm.DB {
	for _, o := range q.Orders {
		db = db.Order(o)
	}
	return db
}
