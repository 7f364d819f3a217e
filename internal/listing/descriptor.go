package listing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Result is what a data-access collaborator returns for one page request.
type Result[T any] struct {
	Items      []T
	TotalCount int64
}

// FetchFunc retrieves one page of a listing. page is 1-based; limit is the
// listing's page size.
type FetchFunc[T any] func(ctx context.Context, q Query, page, limit int) (Result[T], error)

// Descriptor declares one listing: where its data comes from and how it paginates.
type Descriptor[T any] struct {
	Name         string
	Fetch        FetchFunc[T]
	PageSize     int
	Mode         Mode
	Cached       bool
	EmptyMessage string
	// FetchTimeout bounds a single collaborator call; zero means DefaultFetchTimeout.
	FetchTimeout time.Duration
}

const DefaultFetchTimeout = 15 * time.Second

var (
	ErrClosed     = errors.New("listing page is closed")
	ErrWrongMode  = errors.New("operation not supported by this pagination mode")
	ErrNotMounted = errors.New("listing page has not been mounted")
	// ErrStale is returned to the caller of a fetch whose response was
	// discarded because a newer fetch superseded it.
	ErrStale = errors.New("fetch superseded by a newer request")
)

// Validate checks the descriptor before it is registered.
func (d Descriptor[T]) Validate() error {
	if d.Name == "" {
		return errors.New("listing descriptor needs a name")
	}
	if d.Fetch == nil {
		return fmt.Errorf("listing %s: no fetch function", d.Name)
	}
	if d.PageSize <= 0 {
		return fmt.Errorf("listing %s: page size must be positive, got %d", d.Name, d.PageSize)
	}
	if d.Mode != ModeDiscrete && d.Mode != ModeCumulative {
		return fmt.Errorf("listing %s: invalid mode %d", d.Name, d.Mode)
	}
	return nil
}

func (d Descriptor[T]) timeout() time.Duration {
	if d.FetchTimeout > 0 {
		return d.FetchTimeout
	}
	return DefaultFetchTimeout
}
