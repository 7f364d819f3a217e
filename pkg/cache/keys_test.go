package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingKey_Deterministic(t *testing.T) {
	a := ListingKey("jobs", KeyField{"q", "مدير"}, KeyField{"country", "MA"})
	b := ListingKey("jobs", KeyField{"q", "مدير"}, KeyField{"country", "MA"})
	assert.Equal(t, a, b)
}

func TestListingKey_NoCollisionOnSeparators(t *testing.T) {
	// joining raw values with "_" would make these two identical
	a := ListingKey("jobs", KeyField{"q", "a_b"}, KeyField{"country", ""})
	b := ListingKey("jobs", KeyField{"q", "a"}, KeyField{"country", "b"})
	assert.NotEqual(t, a, b)

	c := ListingKey("jobs", KeyField{"q", "x|country=y"}, KeyField{"country", ""})
	d := ListingKey("jobs", KeyField{"q", "x"}, KeyField{"country", "y"})
	assert.NotEqual(t, c, d)
}

func TestListingKey_ListingIsPartOfKey(t *testing.T) {
	assert.NotEqual(t,
		ListingKey("jobs", KeyField{"q", ""}),
		ListingKey("workers", KeyField{"q", ""}))
}

func TestHomeKey(t *testing.T) {
	assert.Equal(t, "home:mobile", HomeKey(true))
	assert.Equal(t, "home:desktop", HomeKey(false))
}
