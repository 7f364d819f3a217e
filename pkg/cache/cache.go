// Package cache provides the listing result cache: an in-process store, a
// Redis-backed session store and a guard that keeps storage failures away
// from callers.
package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached query result. Items holds the JSON encoding of the
// displayed list so every backend round-trips the same bytes.
type Entry struct {
	Items      json.RawMessage `json:"items"`
	Page       int             `json:"page"`
	HasMore    bool            `json:"hasMore"`
	TotalCount int64           `json:"totalCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NewEntry encodes items into an Entry.
func NewEntry(items interface{}, page int, hasMore bool, totalCount int64) (*Entry, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, NewCacheError("marshal", err, false)
	}
	return &Entry{
		Items:      data,
		Page:       page,
		HasMore:    hasMore,
		TotalCount: totalCount,
	}, nil
}

// DecodeItems unmarshals the cached list into dest.
func (e *Entry) DecodeItems(dest interface{}) error {
	if err := json.Unmarshal(e.Items, dest); err != nil {
		return NewCacheError("unmarshal", err, false)
	}
	return nil
}

// Expired reports whether the entry is older than ttl at now. A zero ttl never expires.
func (e *Entry) Expired(ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(e.CreatedAt) >= ttl
}

func (e *Entry) clone() *Entry {
	c := *e
	c.Items = append(json.RawMessage(nil), e.Items...)
	return &c
}
