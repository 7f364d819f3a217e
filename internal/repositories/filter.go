package repositories

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingFilter is the data-access form of a listing query.
type ListingFilter struct {
	Search   string
	Country  string
	City     string
	Category string
	WorkType string
}

// fieldMap names the document fields a collection matches each filter
// against. An empty name means the collection ignores that filter.
type fieldMap struct {
	search   []string
	country  string
	city     string
	category string
	workType string
}

var (
	jobFields = fieldMap{
		search:   []string{"title", "description", "companyName"},
		country:  "country",
		city:     "city",
		category: "categoryId",
		workType: "workType",
	}
	competitionFields = fieldMap{
		search: []string{"title", "organizer", "description"},
		city:   "location",
	}
	immigrationFields = fieldMap{
		search:   []string{"title", "description"},
		country:  "targetCountry",
		category: "programType",
	}
	articleFields     = fieldMap{search: []string{"title", "summary"}}
	testimonialFields = fieldMap{}
)

// build turns f into a MongoDB filter. base holds fixed conditions such as
// the post type and is copied, not modified.
func (m fieldMap) build(f ListingFilter, base bson.M) bson.M {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}

	if f.Search != "" && len(m.search) > 0 {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		or := make(bson.A, 0, len(m.search))
		for _, field := range m.search {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}

	equal := func(field, value string) {
		if field != "" && value != "" {
			filter[field] = value
		}
	}
	equal(m.country, f.Country)
	equal(m.city, f.City)
	equal(m.category, f.Category)
	equal(m.workType, f.WorkType)
	return filter
}
