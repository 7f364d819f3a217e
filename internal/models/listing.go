package models

// View states a client renders: skeleton, grid, "no results" message, or retry control.
const (
	StateLoading = "loading"
	StateReady   = "ready"
	StateEmpty   = "empty"
	StateError   = "error"
)

// PageSlot is one cell of the page-number strip: a page button or an ellipsis.
type PageSlot struct {
	Page     int  `json:"page,omitempty"`
	Active   bool `json:"active,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PaginationControls drives the discrete-page navigation UI.
type PaginationControls struct {
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	PrevEnabled bool       `json:"prevEnabled"`
	NextEnabled bool       `json:"nextEnabled"`
	Slots       []PageSlot `json:"slots"`
	Prev        *string    `json:"prev,omitempty"`
	Next        *string    `json:"next,omitempty"`
}

// ListingError is the inline failure shown in place of (or under) the list.
type ListingError struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// ListingView is everything a client needs to render one listing page.
type ListingView struct {
	Listing      string              `json:"listing"`
	Mode         string              `json:"mode"`
	State        string              `json:"state"`
	Items        interface{}         `json:"items"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"pageSize"`
	TotalCount   int64               `json:"totalCount"`
	HasMore      bool                `json:"hasMore"`
	Loading      bool                `json:"loading"`
	LoadingMore  bool                `json:"loadingMore"`
	FromCache    bool                `json:"fromCache"`
	EmptyMessage string              `json:"emptyMessage,omitempty"`
	Pagination   *PaginationControls `json:"pagination,omitempty"`
	Error        *ListingError       `json:"error,omitempty"`
}
