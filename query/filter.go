// Package query holds the canonical browse state: the filter set parsed from
// a persisted query string, the pagination window, and the debounce and
// request-generation machinery that decides when a fetch fires and whether
// its result may still be applied.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GenreAll is the sentinel for "no genre filter".
const GenreAll = "all"

// FilterSet is the canonical catalog query. It is only ever produced by
// ParseFilters or one of the With* methods, and only ever persisted through
// Values, so in-memory state and the serialized form cannot drift apart.
type FilterSet struct {
	Search  string
	GenreID string
	Date    string // ISO date, never before today at parse time
	Page    int
}

// Today formats the reference date the way the API and the filter set expect.
func Today(now time.Time) string {
	return now.Format(time.DateOnly)
}

// ParseFilters derives a canonical filter set from persisted query values.
// A missing, empty, or past date is coerced to today. The second return
// reports whether coercion changed an explicitly persisted date, in which
// case the caller should rewrite its copy in place.
func ParseFilters(values url.Values, today string) (FilterSet, bool) {
	date := strings.TrimSpace(values.Get("date"))
	rewritten := date != "" && date < today
	if date == "" || date < today {
		date = today
	}

	genre := strings.TrimSpace(values.Get("genre_id"))
	if genre == "" {
		genre = GenreAll
	}

	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return FilterSet{
		Search:  values.Get("search"),
		GenreID: genre,
		Date:    date,
		Page:    page,
	}, rewritten
}

// Values serializes the filter set back to query values. Defaults are
// omitted: empty search, the "all" genre, and page 1 carry no parameter.
func (f FilterSet) Values() url.Values {
	values := url.Values{}
	if search := strings.TrimSpace(f.Search); search != "" {
		values.Set("search", search)
	}
	if f.GenreID != "" && f.GenreID != GenreAll {
		values.Set("genre_id", f.GenreID)
	}
	if f.Date != "" {
		values.Set("date", f.Date)
	}
	if f.Page > 1 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	return values
}

// Encode returns the serialized query string.
func (f FilterSet) Encode() string {
	return f.Values().Encode()
}

// WithSearch commits a new search text. Any committed filter change other
// than explicit pagination resets to page 1.
func (f FilterSet) WithSearch(search string) FilterSet {
	f.Search = strings.TrimSpace(search)
	f.Page = 1
	return f
}

// WithGenre commits a genre filter and resets pagination.
func (f FilterSet) WithGenre(genreID string) FilterSet {
	if strings.TrimSpace(genreID) == "" {
		genreID = GenreAll
	}
	f.GenreID = genreID
	f.Page = 1
	return f
}

// WithDate commits a date no earlier than today and resets pagination.
// A past date is a no-op rather than an error: the picker never offers one,
// and a stale persisted value has already been coerced at parse time.
func (f FilterSet) WithDate(date, today string) FilterSet {
	if date == "" || date < today {
		return f
	}
	f.Date = date
	f.Page = 1
	return f
}

// WithPage is the explicit pagination control, the only way a page other
// than 1 enters the filter set.
func (f FilterSet) WithPage(page int) FilterSet {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

// Equal reports whether two filter sets would produce the same fetch.
// Search is compared by trimmed value; the rest by value.
func (f FilterSet) Equal(other FilterSet) bool {
	return strings.TrimSpace(f.Search) == strings.TrimSpace(other.Search) &&
		f.GenreID == other.GenreID &&
		f.Date == other.Date &&
		f.Page == other.Page
}
