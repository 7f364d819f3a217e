package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tawdifak-listings/pkg/cache"
)

// fakeSource serves total synthetic items per query. Pages listed in gates
// block until their channel is closed.
type fakeSource struct {
	mu      sync.Mutex
	total   int
	err     error
	gates   map[int]chan struct{}
	started chan int
	calls   atomic.Int32
}

func newFakeSource(total int) *fakeSource {
	return &fakeSource{
		total:   total,
		gates:   map[int]chan struct{}{},
		started: make(chan int, 16),
	}
}

func (f *fakeSource) gate(page int) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[page] = ch
	return ch
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeSource) fetch(_ context.Context, q Query, page, limit int) (Result[string], error) {
	f.calls.Add(1)
	f.mu.Lock()
	gate, total, err := f.gates[page], f.total, f.err
	f.mu.Unlock()

	f.started <- page
	if gate != nil {
		<-gate
	}
	if err != nil {
		return Result[string]{}, err
	}
	var items []string
	for i := (page - 1) * limit; i < min(page*limit, total); i++ {
		items = append(items, fmt.Sprintf("%s#%d", q.Search, i))
	}
	return Result[string]{Items: items, TotalCount: int64(total)}, nil
}

func newTestCoordinator(t *testing.T, src *fakeSource, mode Mode, cached bool) *Coordinator[string] {
	t.Helper()
	c, err := NewCoordinator(Descriptor[string]{
		Name:     "jobs",
		Fetch:    src.fetch,
		PageSize: 16,
		Mode:     mode,
		Cached:   cached,
	})
	require.NoError(t, err)
	return c
}

func waitStarted(t *testing.T, src *fakeSource, page int) {
	t.Helper()
	select {
	case got := <-src.started:
		require.Equal(t, page, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("fetch of page %d never started", page)
	}
}

func TestPage_CumulativeLoadMoreUntilExhausted(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(18)
	page := newTestCoordinator(t, src, ModeCumulative, true).NewPage(cache.NewMemoryStore(0))

	require.NoError(t, page.Mount(ctx, Query{Search: "مدير"}))
	s := page.State()
	assert.Len(t, s.Items, 16)
	assert.True(t, s.HasMore)
	assert.Equal(t, 1, s.Page)
	assert.False(t, s.Loading)

	require.NoError(t, page.LoadMore(ctx))
	s = page.State()
	assert.Len(t, s.Items, 18)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.HasMore)
	assert.False(t, s.LoadingMore)
	assert.Equal(t, "مدير#17", s.Items[17])

	// nothing left: no further call
	require.NoError(t, page.LoadMore(ctx))
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestPage_RestoreFromCacheMakesNoCalls(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(40)
	coord := newTestCoordinator(t, src, ModeCumulative, true)
	store := cache.NewMemoryStore(0)
	q := Query{Search: "مدير", Country: "MA"}

	first := coord.NewPage(store)
	require.NoError(t, first.Mount(ctx, q))
	require.NoError(t, first.LoadMore(ctx))
	first.Close()
	require.EqualValues(t, 2, src.calls.Load())

	// back navigation: a fresh page over the same session store
	second := coord.NewPage(store)
	require.NoError(t, second.Mount(ctx, q))
	s := second.State()
	assert.EqualValues(t, 2, src.calls.Load())
	assert.True(t, s.FromCache)
	assert.Len(t, s.Items, 32)
	assert.Equal(t, 2, s.Page)
	assert.True(t, s.HasMore)

	// the restored page counter continues from where it stopped
	require.NoError(t, second.LoadMore(ctx))
	assert.Len(t, second.State().Items, 40)
}

func TestPage_UncachedListingAlwaysFetches(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(5)
	coord := newTestCoordinator(t, src, ModeCumulative, false)
	store := cache.NewMemoryStore(0)

	require.NoError(t, coord.NewPage(store).Mount(ctx, Query{}))
	require.NoError(t, coord.NewPage(store).Mount(ctx, Query{}))
	assert.EqualValues(t, 2, src.calls.Load())
	assert.Equal(t, 0, store.Len())
}

func TestPage_RemountSameQueryIsNoop(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(5)
	page := newTestCoordinator(t, src, ModeDiscrete, false).NewPage(nil)

	require.NoError(t, page.Mount(ctx, Query{Page: 1}))
	require.NoError(t, page.Mount(ctx, Query{Page: 1}))
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestPage_DiscretePagesAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(50)
	coord := newTestCoordinator(t, src, ModeDiscrete, true)
	store := cache.NewMemoryStore(0)
	page := coord.NewPage(store)

	require.NoError(t, page.Mount(ctx, Query{Page: 2}))
	s := page.State()
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, "#16", s.Items[0])
	assert.True(t, s.HasMore)

	require.NoError(t, page.Mount(ctx, Query{Page: 4}))
	s = page.State()
	assert.Equal(t, 4, s.Page)
	assert.Len(t, s.Items, 2)
	assert.False(t, s.HasMore)
	assert.EqualValues(t, 2, src.calls.Load())

	restored := coord.NewPage(store)
	require.NoError(t, restored.Mount(ctx, Query{Page: 2}))
	assert.EqualValues(t, 2, src.calls.Load())
	assert.Equal(t, "#16", restored.State().Items[0])

	assert.ErrorIs(t, restored.LoadMore(ctx), ErrWrongMode)
}

func TestPage_OutOfOrderResponsesKeepLatest(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(100)
	page := newTestCoordinator(t, src, ModeDiscrete, true).NewPage(cache.NewMemoryStore(0))

	gate2 := src.gate(2)
	gate3 := src.gate(3)

	errs := make(chan error, 2)
	go func() { errs <- page.Mount(ctx, Query{Page: 2}) }()
	waitStarted(t, src, 2)
	go func() { errs <- page.Mount(ctx, Query{Page: 3}) }()
	waitStarted(t, src, 3)

	close(gate3)
	require.NoError(t, <-errs)
	close(gate2)
	assert.ErrorIs(t, <-errs, ErrStale)

	s := page.State()
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, "#32", s.Items[0])
	assert.False(t, s.Loading)
}

func TestPage_CacheRestoreDiscardsInFlightFetch(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(100)
	page := newTestCoordinator(t, src, ModeDiscrete, true).NewPage(cache.NewMemoryStore(0))

	require.NoError(t, page.Mount(ctx, Query{Page: 3}))
	waitStarted(t, src, 3)

	gate := src.gate(2)
	errs := make(chan error, 1)
	go func() { errs <- page.Mount(ctx, Query{Page: 2}) }()
	waitStarted(t, src, 2)

	// page 3 comes back from the cache while page 2 is still loading
	require.NoError(t, page.Mount(ctx, Query{Page: 3}))
	assert.True(t, page.State().FromCache)

	close(gate)
	assert.ErrorIs(t, <-errs, ErrStale)

	s := page.State()
	assert.Equal(t, 3, s.Page)
	assert.Equal(t, "#32", s.Items[0])
	assert.False(t, s.Loading)
	assert.EqualValues(t, 2, src.calls.Load())
}

func TestPage_CacheRestoreForgetsFailedFetch(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(100)
	page := newTestCoordinator(t, src, ModeDiscrete, true).NewPage(cache.NewMemoryStore(0))
	require.NoError(t, page.Mount(ctx, Query{Page: 3}))

	src.setErr(errors.New("network down"))
	assert.Error(t, page.Mount(ctx, Query{Page: 2}))
	src.setErr(nil)

	require.NoError(t, page.Mount(ctx, Query{Page: 3}))
	calls := src.calls.Load()

	require.NoError(t, page.Retry(ctx))
	assert.Equal(t, calls, src.calls.Load())
	s := page.State()
	assert.Equal(t, 3, s.Page)
	assert.NoError(t, s.Err)
}

func TestPage_FilterChangeDiscardsInFlightLoadMore(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(40)
	store := cache.NewMemoryStore(0)
	page := newTestCoordinator(t, src, ModeCumulative, true).NewPage(store)
	q1 := Query{Search: "old"}

	require.NoError(t, page.Mount(ctx, q1))
	waitStarted(t, src, 1)

	gate := src.gate(2)
	errs := make(chan error, 1)
	go func() { errs <- page.LoadMore(ctx) }()
	waitStarted(t, src, 2)
	assert.True(t, page.State().LoadingMore)

	require.NoError(t, page.Mount(ctx, Query{Search: "new"}))
	waitStarted(t, src, 1)

	close(gate)
	assert.ErrorIs(t, <-errs, ErrStale)

	s := page.State()
	assert.Len(t, s.Items, 16)
	assert.Equal(t, "new#0", s.Items[0])
	assert.Equal(t, 1, s.Page)
	assert.False(t, s.LoadingMore)

	// the old query's cache entry still holds only its first page
	entry, err := store.Get(ctx, q1.Key("jobs", false))
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Page)
}

func TestPage_ConcurrentLoadMoreIsSingle(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(40)
	page := newTestCoordinator(t, src, ModeCumulative, false).NewPage(nil)
	require.NoError(t, page.Mount(ctx, Query{}))
	waitStarted(t, src, 1)

	gate := src.gate(2)
	errs := make(chan error, 1)
	go func() { errs <- page.LoadMore(ctx) }()
	waitStarted(t, src, 2)

	// second request while the first is in flight
	require.NoError(t, page.LoadMore(ctx))
	close(gate)
	require.NoError(t, <-errs)

	assert.EqualValues(t, 2, src.calls.Load())
	assert.Len(t, page.State().Items, 32)
}

func TestPage_FetchErrorKeepsListAndRetries(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(40)
	page := newTestCoordinator(t, src, ModeCumulative, true).NewPage(cache.NewMemoryStore(0))
	require.NoError(t, page.Mount(ctx, Query{}))

	boom := errors.New("network down")
	src.setErr(boom)
	assert.ErrorIs(t, page.LoadMore(ctx), boom)

	s := page.State()
	assert.Len(t, s.Items, 16)
	assert.Equal(t, 1, s.Page)
	assert.ErrorIs(t, s.Err, boom)
	assert.False(t, s.Loading)
	assert.False(t, s.LoadingMore)

	src.setErr(nil)
	require.NoError(t, page.Retry(ctx))
	s = page.State()
	assert.Len(t, s.Items, 32)
	assert.Equal(t, 2, s.Page)
	assert.NoError(t, s.Err)

	// nothing failed: retry is a no-op
	calls := src.calls.Load()
	require.NoError(t, page.Retry(ctx))
	assert.Equal(t, calls, src.calls.Load())
}

func TestPage_InitialFetchErrorIsRetryable(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(3)
	src.setErr(errors.New("timeout"))
	page := newTestCoordinator(t, src, ModeDiscrete, false).NewPage(nil)

	assert.Error(t, page.Mount(ctx, Query{}))
	s := page.State()
	assert.Empty(t, s.Items)
	assert.Error(t, s.Err)
	assert.False(t, s.Loading)

	src.setErr(nil)
	require.NoError(t, page.Retry(ctx))
	assert.Len(t, page.State().Items, 3)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*cache.Entry, error) {
	return nil, errors.New("quota exceeded")
}

func (brokenStore) Set(context.Context, string, *cache.Entry) error {
	return errors.New("quota exceeded")
}

func (brokenStore) Clear(context.Context) error { return nil }

func TestPage_CacheFailureDoesNotBreakDisplay(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(20)
	page := newTestCoordinator(t, src, ModeCumulative, true).NewPage(brokenStore{})

	require.NoError(t, page.Mount(ctx, Query{}))
	require.NoError(t, page.LoadMore(ctx))
	s := page.State()
	assert.Len(t, s.Items, 20)
	assert.NoError(t, s.Err)
}

func TestPage_CloseDropsInFlightResult(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(10)
	page := newTestCoordinator(t, src, ModeDiscrete, false).NewPage(nil)

	gate := src.gate(1)
	errs := make(chan error, 1)
	go func() { errs <- page.Mount(ctx, Query{}) }()
	waitStarted(t, src, 1)

	page.Close()
	close(gate)
	assert.ErrorIs(t, <-errs, ErrStale)
	assert.Empty(t, page.State().Items)
	assert.ErrorIs(t, page.Mount(ctx, Query{}), ErrClosed)
}

func TestCoordinator_CollapsesIdenticalFetches(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(10)
	coord := newTestCoordinator(t, src, ModeDiscrete, false)
	gate := src.gate(1)

	a, b := coord.NewPage(nil), coord.NewPage(nil)
	errs := make(chan error, 2)
	go func() { errs <- a.Mount(ctx, Query{Search: "x"}) }()
	waitStarted(t, src, 1)
	go func() { errs <- b.Mount(ctx, Query{Search: "x"}) }()

	// give b time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(gate)
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	assert.EqualValues(t, 1, src.calls.Load())
	assert.Equal(t, a.State().Items, b.State().Items)
}

func TestCoordinator_CallerCancellation(t *testing.T) {
	src := newFakeSource(10)
	coord := newTestCoordinator(t, src, ModeDiscrete, false)
	gate := src.gate(1)
	defer close(gate)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := coord.Fetch(ctx, Query{}, 1)
		errs <- err
	}()
	waitStarted(t, src, 1)
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)
}

func TestDescriptor_Validate(t *testing.T) {
	src := newFakeSource(0)
	_, err := NewCoordinator(Descriptor[string]{Name: "jobs", Fetch: src.fetch})
	assert.Error(t, err)
	_, err = NewCoordinator(Descriptor[string]{Name: "jobs", PageSize: 16})
	assert.Error(t, err)
	_, err = NewCoordinator(Descriptor[string]{Fetch: src.fetch, PageSize: 16})
	assert.Error(t, err)
}
