package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"tawdifak-listings/internal/errors"
	"tawdifak-listings/internal/listing"
	"tawdifak-listings/internal/models"
	"tawdifak-listings/internal/utils"
	"tawdifak-listings/internal/validators"
	"tawdifak-listings/pkg/logger"
)

// ListingService runs the listing pages of every session.
type ListingService struct {
	registry  *Registry
	sessions  *SessionManager
	validator validators.QueryValidator
	basePath  string
}

// NewListingService creates the service; basePath prefixes the navigation
// URLs of discrete listings, e.g. "/api/listings".
func NewListingService(registry *Registry, sessions *SessionManager, validator validators.QueryValidator, basePath string) *ListingService {
	return &ListingService{
		registry:  registry,
		sessions:  sessions,
		validator: validator,
		basePath:  basePath,
	}
}

func (s *ListingService) lookup(name string) (Listing, error) {
	l, ok := s.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", name, errors.ErrUnknownListing)
	}
	return l, nil
}

// Show mounts q on the session's page of listing name and returns what to render.
func (s *ListingService) Show(ctx context.Context, sessionID, name string, q listing.Query, mobile bool) (*models.ListingView, error) {
	l, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateQuery(q); err != nil {
		return nil, err
	}

	session := s.sessions.Acquire(sessionID)
	page := session.Page(l)
	err = page.Mount(ctx, q)
	if stderrors.Is(err, listing.ErrClosed) {
		// the session was cleared between lookup and mount
		page = session.Page(l)
		err = page.Mount(ctx, q)
	}
	if err := settle(err); err != nil {
		return nil, err
	}
	return s.view(l, page.Snapshot(), mobile), nil
}

// LoadMore appends the next batch of a cumulative listing.
func (s *ListingService) LoadMore(ctx context.Context, sessionID, name string, mobile bool) (*models.ListingView, error) {
	l, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if l.Mode() != listing.ModeCumulative {
		return nil, fmt.Errorf("listing %q: %w", name, listing.ErrWrongMode)
	}
	page, ok := s.sessions.Acquire(sessionID).ExistingPage(l)
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", name, listing.ErrNotMounted)
	}
	if err := settle(page.LoadMore(ctx)); err != nil {
		return nil, err
	}
	return s.view(l, page.Snapshot(), mobile), nil
}

// Retry repeats the session's last failed fetch of listing name.
func (s *ListingService) Retry(ctx context.Context, sessionID, name string, mobile bool) (*models.ListingView, error) {
	l, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	page, ok := s.sessions.Acquire(sessionID).ExistingPage(l)
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", name, listing.ErrNotMounted)
	}
	if err := settle(page.Retry(ctx)); err != nil {
		return nil, err
	}
	return s.view(l, page.Snapshot(), mobile), nil
}

// ClearSession empties the session's cache and forgets its pages.
func (s *ListingService) ClearSession(ctx context.Context, sessionID string) {
	s.sessions.Clear(ctx, sessionID)
}

// settle separates request errors from fetch failures. A fetch failure is
// already recorded in the page state and rendered inline, and a superseded
// fetch leaves the newer state to render.
func settle(err error) error {
	switch {
	case err == nil, listing.IsStale(err):
		return nil
	case stderrors.Is(err, listing.ErrWrongMode),
		stderrors.Is(err, listing.ErrNotMounted),
		stderrors.Is(err, listing.ErrClosed):
		return err
	default:
		logger.GlobalLogger.Debugf("fetch failure rendered inline: %v", err)
		return nil
	}
}

func (s *ListingService) view(l Listing, snap Snapshot, mobile bool) *models.ListingView {
	v := &models.ListingView{
		Listing:     l.Name(),
		Mode:        l.Mode().String(),
		Items:       snap.Items,
		Page:        snap.Page,
		PageSize:    l.PageSize(),
		TotalCount:  snap.TotalCount,
		HasMore:     snap.HasMore,
		Loading:     snap.Loading,
		LoadingMore: snap.LoadingMore,
		FromCache:   snap.FromCache,
	}

	switch {
	case snap.Count > 0:
		v.State = models.StateReady
	case snap.Err != nil:
		v.State = models.StateError
	case snap.Loading:
		v.State = models.StateLoading
	default:
		v.State = models.StateEmpty
		v.EmptyMessage = l.EmptyMessage()
	}

	if snap.Err != nil {
		v.Error = &models.ListingError{
			Message:   errors.MsgLoadFailed,
			Code:      errors.ErrCodeServiceUnavailable,
			Retryable: true,
		}
	}

	if l.Mode() == listing.ModeDiscrete {
		current := max(snap.Page, 1)
		v.Pagination = listing.PageStrip(current, listing.TotalPages(snap.TotalCount, l.PageSize()), mobile)
		if v.Pagination != nil {
			path := s.basePath + "/" + l.Name()
			params := snap.Query.Values()
			if v.Pagination.PrevEnabled {
				prev := utils.BuildPageURL(path, params, v.Pagination.CurrentPage-1)
				v.Pagination.Prev = &prev
			}
			if v.Pagination.NextEnabled {
				next := utils.BuildPageURL(path, params, v.Pagination.CurrentPage+1)
				v.Pagination.Next = &next
			}
		}
	}
	return v
}
