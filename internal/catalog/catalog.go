// Package catalog searches a remote music catalog for songs with playable
// previews.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/llehouerou/riffle/internal/playlist"
)

// ErrInvalidQuery is returned when a query is out of range.
var ErrInvalidQuery = errors.New("invalid query")

// Query limits.
const (
	DefaultLimit  = 10
	MaxLimit      = 50
	MaxOffset     = 500
	MaxTermLength = 100
)

// Query is one page request.
type Query struct {
	Term    string
	Country string
	// Limit defaults to DefaultLimit when zero.
	Limit  int
	Offset int
}

// Page is one page of search results.
type Page struct {
	Songs  []playlist.Song
	Offset int
	// Total is the number of playable results the catalog returned up to
	// and including this page.
	Total int
}

// HasMore reports whether a following page may exist.
func (p Page) HasMore() bool {
	return p.Offset+len(p.Songs) < p.Total
}

// Searcher finds songs.
type Searcher interface {
	Search(ctx context.Context, q Query) (Page, error)
}

// Normalize trims the term, applies the default limit and validates the
// result.
func (q Query) Normalize() (Query, error) {
	q.Term = strings.TrimSpace(q.Term)
	q.Country = strings.ToLower(strings.TrimSpace(q.Country))
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}

	switch n := utf8.RuneCountInString(q.Term); {
	case n == 0:
		return q, fmt.Errorf("%w: empty term", ErrInvalidQuery)
	case n > MaxTermLength:
		return q, fmt.Errorf("%w: term longer than %d characters", ErrInvalidQuery, MaxTermLength)
	}
	if q.Limit < 1 || q.Limit > MaxLimit {
		return q, fmt.Errorf("%w: limit %d not in 1..%d", ErrInvalidQuery, q.Limit, MaxLimit)
	}
	if q.Offset < 0 || q.Offset > MaxOffset {
		return q, fmt.Errorf("%w: offset %d not in 0..%d", ErrInvalidQuery, q.Offset, MaxOffset)
	}
	return q, nil
}

// Next returns the query for the page after p.
func (q Query) Next(p Page) Query {
	q.Offset = p.Offset + q.Limit
	return q
}
