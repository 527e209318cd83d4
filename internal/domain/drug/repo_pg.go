package drug

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rxguard/rxguard/pkg/pagination"
)

const drugCols = `id, rxcui, name, synonyms, created_at`

// PgConceptRepository is the PostgreSQL-backed ConceptRepository.
type PgConceptRepository struct {
	pool *pgxpool.Pool
}

func NewPgConceptRepository(pool *pgxpool.Pool) *PgConceptRepository {
	return &PgConceptRepository{pool: pool}
}

func scanDrug(row pgx.Row) (*Drug, error) {
	var d Drug
	err := row.Scan(&d.ID, &d.RxCUI, &d.Name, &d.Synonyms, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan drug: %w", err)
	}
	return &d, nil
}

// Upsert inserts the drug or refreshes name and synonyms when the RxCUI is
// already cached.
func (r *PgConceptRepository) Upsert(ctx context.Context, d *Drug) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	query := `
		INSERT INTO drug (id, rxcui, name, synonyms)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (rxcui) DO UPDATE
		SET name = EXCLUDED.name, synonyms = EXCLUDED.synonyms
		RETURNING ` + drugCols

	row := r.pool.QueryRow(ctx, query, d.ID, d.RxCUI, d.Name, d.Synonyms)
	saved, err := scanDrug(row)
	if err != nil {
		return fmt.Errorf("upsert drug %s: %w", d.RxCUI, err)
	}
	*d = *saved
	return nil
}

func (r *PgConceptRepository) GetByRxCUI(ctx context.Context, rxcui string) (*Drug, error) {
	query := `SELECT ` + drugCols + ` FROM drug WHERE rxcui = $1`
	return scanDrug(r.pool.QueryRow(ctx, query, rxcui))
}

// SearchByName does a case-insensitive substring match over cached names.
func (r *PgConceptRepository) SearchByName(ctx context.Context, name string, limit int) ([]Drug, error) {
	query := `SELECT ` + drugCols + ` FROM drug WHERE name ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2`

	rows, err := r.pool.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("search drugs: %w", err)
	}
	defer rows.Close()

	var drugs []Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, err
		}
		drugs = append(drugs, *d)
	}
	return drugs, rows.Err()
}

func (r *PgConceptRepository) List(ctx context.Context, params pagination.Params) ([]Drug, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM drug`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count drugs: %w", err)
	}

	query := `SELECT ` + drugCols + ` FROM drug ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list drugs: %w", err)
	}
	defer rows.Close()

	var drugs []Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, 0, err
		}
		drugs = append(drugs, *d)
	}
	return drugs, total, rows.Err()
}
