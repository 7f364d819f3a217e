package dataapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	Title string `json:"title"`
}

func TestFetchPage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, url.Values{
			"searchQuery": {"مدير"},
			"country":     {"MA"},
			"categoryId":  {"7"},
			"workType":    {"remote"},
			"postType":    {"seeking_worker"},
			"page":        {"2"},
			"limit":       {"16"},
		}, r.URL.Query())
		w.Write([]byte(`{"data":[{"title":"a"},{"title":"b"}],"totalCount":18}`))
	}))
	defer srv.Close()

	items, total, err := FetchPage[job](context.Background(), NewClient(srv.URL+"/", time.Second, 1), "jobs",
		PageParams{Search: "مدير", Country: "MA", Category: "7", WorkType: "remote", PostType: "seeking_worker", Page: 2, Limit: 16})
	require.NoError(t, err)
	assert.EqualValues(t, 18, total)
	assert.Equal(t, []job{{"a"}, {"b"}}, items)
}

func TestFetchPage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":null,"totalCount":0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 3).WithBackoff(time.Millisecond)
	items, total, err := FetchPage[job](context.Background(), client, "jobs", PageParams{Page: 1, Limit: 16})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Zero(t, total)
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetchPage_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad filter", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 3).WithBackoff(time.Millisecond)
	_, _, err := FetchPage[job](context.Background(), client, "jobs", PageParams{Page: 1, Limit: 16})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchPage_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2).WithBackoff(time.Millisecond)
	_, _, err := FetchPage[job](context.Background(), client, "articles", PageParams{Page: 1, Limit: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestFetchPage_BoundsResponseBodies(t *testing.T) {
	huge := strings.Repeat("x", 4*maxErrorBody)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, huge, http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"data":[],"totalCount":0,"pad":"`))
		w.Write([]byte(strings.Repeat("x", maxResponseBytes)))
		w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, 1)

	_, _, err := FetchPage[job](context.Background(), client, "broken", PageParams{Page: 1, Limit: 8})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Len(t, statusErr.Body, maxErrorBody)

	_, _, err = FetchPage[job](context.Background(), client, "articles", PageParams{Page: 1, Limit: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}
