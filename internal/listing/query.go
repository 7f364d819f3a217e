package listing

import (
	"net/url"
	"strconv"
	"strings"

	"tawdifak-listings/pkg/cache"
)

// Query is the filter and page state of one listing page, as carried by
// the URL parameters q, country, city, category, workType and page.
type Query struct {
	Search   string `form:"q" binding:"omitempty,max=100"`
	Country  string `form:"country" binding:"omitempty,max=100"`
	City     string `form:"city" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=100"`
	WorkType string `form:"workType" binding:"omitempty,oneof=full_time part_time contract freelance remote"`
	Page     int    `form:"page" binding:"omitempty,min=1,max=10000"`
}

// Normalize trims the filters and puts an unset page at 1.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	q.Country = strings.TrimSpace(q.Country)
	q.City = strings.TrimSpace(q.City)
	q.Category = strings.TrimSpace(q.Category)
	q.WorkType = strings.TrimSpace(q.WorkType)
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Values writes q back as URL parameters; empty filters are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(name, value string) {
		if value != "" {
			v.Set(name, value)
		}
	}
	set("q", q.Search)
	set("country", q.Country)
	set("city", q.City)
	set("category", q.Category)
	set("workType", q.WorkType)
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// WithPage returns a copy of q positioned at page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// SameFilters reports whether q and other differ only in page number.
func (q Query) SameFilters(other Query) bool {
	return q.WithPage(0) == other.WithPage(0)
}

// Key is the cache partition key for q. Field order is fixed: q, country,
// city, category, workType, then page when withPage is set.
func (q Query) Key(listing string, withPage bool) string {
	fields := []cache.KeyField{
		{Name: "q", Value: q.Search},
		{Name: "country", Value: q.Country},
		{Name: "city", Value: q.City},
		{Name: "category", Value: q.Category},
		{Name: "workType", Value: q.WorkType},
	}
	if withPage {
		fields = append(fields, cache.KeyField{Name: "page", Value: strconv.Itoa(q.Page)})
	}
	return cache.ListingKey(listing, fields...)
}
