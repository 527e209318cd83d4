package interaction

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rxguard/rxguard/pkg/pagination"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("interaction: record not found")

// RecordRepository persists the authoritative interaction store.
type RecordRepository interface {
	Create(ctx context.Context, rec *Record) error
	// FindByPair matches the pair in either stored ordering and returns the
	// first record.
	FindByPair(ctx context.Context, rxcuiA, rxcuiB string) (*Record, error)
	List(ctx context.Context, params pagination.Params) ([]Record, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
