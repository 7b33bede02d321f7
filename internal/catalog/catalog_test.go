package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr bool
		want    Query
	}{
		{"defaults", Query{Term: "  daft punk "}, false, Query{Term: "daft punk", Limit: DefaultLimit}},
		{"country lowercased", Query{Term: "x", Country: " FR", Limit: 5}, false, Query{Term: "x", Country: "fr", Limit: 5}},
		{"empty term", Query{Term: "   "}, true, Query{}},
		{"term too long", Query{Term: strings.Repeat("a", MaxTermLength+1)}, true, Query{}},
		{"term at max", Query{Term: strings.Repeat("é", MaxTermLength)}, false, Query{Term: strings.Repeat("é", MaxTermLength), Limit: DefaultLimit}},
		{"limit negative", Query{Term: "x", Limit: -1}, true, Query{}},
		{"limit too big", Query{Term: "x", Limit: MaxLimit + 1}, true, Query{}},
		{"limit max", Query{Term: "x", Limit: MaxLimit}, false, Query{Term: "x", Limit: MaxLimit}},
		{"offset negative", Query{Term: "x", Offset: -1}, true, Query{}},
		{"offset too big", Query{Term: "x", Offset: MaxOffset + 1}, true, Query{}},
		{"offset max", Query{Term: "x", Offset: MaxOffset}, false, Query{Term: "x", Limit: DefaultLimit, Offset: MaxOffset}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.Normalize()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuery) {
					t.Fatalf("Normalize() error = %v, want ErrInvalidQuery", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuery_Next(t *testing.T) {
	q := Query{Term: "x", Limit: 10, Offset: 20}
	next := q.Next(Page{Offset: 20})
	if next.Offset != 30 {
		t.Errorf("Next().Offset = %d, want 30", next.Offset)
	}
	if next.Term != "x" || next.Limit != 10 {
		t.Errorf("Next() changed other fields: %+v", next)
	}
}

func TestSections(t *testing.T) {
	sections := Sections(2026)
	if len(sections) != 3 {
		t.Fatalf("len(Sections) = %d, want 3", len(sections))
	}
	if sections[0].Term != "top hits 2026" {
		t.Errorf("first section term = %q", sections[0].Term)
	}
	q := sections[2].Query()
	if q.Country != "in" || q.Limit != SectionLimit {
		t.Errorf("Query() = %+v", q)
	}
}
