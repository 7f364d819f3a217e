package listing

import (
	"fmt"

	"tawdifak-listings/internal/models"
)

// Mode selects how a listing paginates. The two are alternatives; a page
// never mixes them.
type Mode int

const (
	// ModeDiscrete shows exactly one page-sized window chosen by the URL page parameter.
	ModeDiscrete Mode = iota
	// ModeCumulative appends a page-sized batch on every "load more".
	ModeCumulative
)

func (m Mode) String() string {
	if m == ModeCumulative {
		return "cumulative"
	}
	return "discrete"
}

// ParseMode accepts "discrete" or "cumulative".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "discrete":
		return ModeDiscrete, nil
	case "cumulative":
		return ModeCumulative, nil
	}
	return ModeDiscrete, fmt.Errorf("unknown pagination mode %q", s)
}

// HasMore reports whether results exist past page.
func HasMore(page, pageSize int, totalCount int64) bool {
	return int64(page)*int64(pageSize) < totalCount
}

// TotalPages is ceil(totalCount / pageSize).
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 || totalCount <= 0 {
		return 0
	}
	return int((totalCount + int64(pageSize) - 1) / int64(pageSize))
}

const desktopWindow = 5

// PageStrip builds the navigation model for the discrete-page variant, or
// nil when there is at most one page. Desktop shows a window of five pages
// around the current one; mobile shows the current page, the next one and
// an ellipsis.
func PageStrip(current, totalPages int, mobile bool) *models.PaginationControls {
	if totalPages <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	controls := &models.PaginationControls{
		CurrentPage: current,
		TotalPages:  totalPages,
		PrevEnabled: current > 1,
		NextEnabled: current < totalPages,
	}
	if mobile {
		controls.Slots = mobileSlots(current, totalPages)
	} else {
		controls.Slots = desktopSlots(current, totalPages)
	}
	return controls
}

func mobileSlots(current, totalPages int) []models.PageSlot {
	slots := []models.PageSlot{{Page: current, Active: true}}
	if current < totalPages {
		slots = append(slots, models.PageSlot{Page: current + 1})
	}
	if current+1 < totalPages {
		slots = append(slots, models.PageSlot{Ellipsis: true})
	}
	return slots
}

func desktopSlots(current, totalPages int) []models.PageSlot {
	start := max(1, current-desktopWindow/2)
	end := min(totalPages, start+desktopWindow-1)
	if end-start+1 < desktopWindow {
		start = max(1, end-desktopWindow+1)
	}

	var slots []models.PageSlot
	if start > 1 {
		slots = append(slots, models.PageSlot{Page: 1})
		if start > 2 {
			slots = append(slots, models.PageSlot{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		slots = append(slots, models.PageSlot{Page: i, Active: i == current})
	}
	if end < totalPages {
		slots = append(slots, models.PageSlot{Ellipsis: true})
	}
	return slots
}
