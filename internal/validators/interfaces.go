package validators

import (
	"tawdifak-listings/internal/listing"
)

type QueryValidator interface {
	ValidateQuery(q listing.Query) error
}
