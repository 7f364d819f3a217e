package utils

import (
	"net/url"
	"strconv"
)

// BuildPageURL returns path with params, positioned at page. Page 1 drops
// the page parameter so the first page has one canonical URL.
func BuildPageURL(path string, params url.Values, page int) string {
	q := url.Values{}
	for key, values := range params {
		if key == "page" {
			continue
		}
		for _, value := range values {
			q.Add(key, value)
		}
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
