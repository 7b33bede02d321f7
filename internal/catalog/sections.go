package catalog

import "fmt"

// Section is a named browse shelf backed by a fixed search term.
type Section struct {
	Title   string
	Term    string
	Country string
}

// SectionLimit is how many songs a section shows.
const SectionLimit = 6

// Sections returns the home shelves for the given year.
func Sections(year int) []Section {
	return []Section{
		{Title: "Selected for you", Term: fmt.Sprintf("top hits %d", year)},
		{Title: "Top hits", Term: "top hits"},
		{Title: "Top hits India", Term: "bollywood top songs", Country: "in"},
	}
}

// Query returns the page request for the section.
func (s Section) Query() Query {
	return Query{Term: s.Term, Country: s.Country, Limit: SectionLimit}
}
