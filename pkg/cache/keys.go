package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// KeyField is one labelled component of a listing cache key.
type KeyField struct {
	Name  string
	Value string
}

// ListingKey joins the fields in the order given. Values are query-escaped so
// the separators cannot appear inside them and distinct values never collide.
func ListingKey(listing string, fields ...KeyField) string {
	var b strings.Builder
	b.WriteString("listing:")
	b.WriteString(url.QueryEscape(listing))
	for _, f := range fields {
		b.WriteByte('|')
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}

// cache key prefix for everything stored on behalf of one session.
func SessionPrefix(sessionID string) string {
	return fmt.Sprintf("session:%s:", sessionID)
}

// cache key for the set of keys written by one session.
func SessionIndexKey(sessionID string) string {
	return fmt.Sprintf("session:index:%s", sessionID)
}

// cache key for the aggregated home feed.
func HomeKey(mobile bool) string {
	if mobile {
		return "home:mobile"
	}
	return "home:desktop"
}
