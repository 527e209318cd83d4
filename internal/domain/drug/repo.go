package drug

import (
	"context"
	"errors"

	"github.com/rxguard/rxguard/pkg/pagination"
)

// ErrNotFound is returned when no locally cached drug matches the lookup.
var ErrNotFound = errors.New("drug: not found")

// ConceptRepository persists locally cached drug concepts so frequently
// checked drugs survive nomenclature outages.
type ConceptRepository interface {
	Upsert(ctx context.Context, d *Drug) error
	GetByRxCUI(ctx context.Context, rxcui string) (*Drug, error)
	SearchByName(ctx context.Context, name string, limit int) ([]Drug, error)
	List(ctx context.Context, params pagination.Params) ([]Drug, int, error)
}
