package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPageURL(t *testing.T) {
	params := url.Values{"q": {"مدير"}, "country": {"MA"}, "page": {"2"}}

	assert.Equal(t, "/api/listings/workers?country=MA&page=3&q=%D9%85%D8%AF%D9%8A%D8%B1",
		BuildPageURL("/api/listings/workers", params, 3))
	assert.Equal(t, "/api/listings/workers?country=MA&q=%D9%85%D8%AF%D9%8A%D8%B1",
		BuildPageURL("/api/listings/workers", params, 1))
	assert.Equal(t, "/api/listings/competitions", BuildPageURL("/api/listings/competitions", nil, 1))
}
