package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rxguard/rxguard/pkg/pagination"
)

const recordCols = `id, drug_1_rxcui, drug_2_rxcui, severity, description, source, created_at`

// PgRecordRepository is the PostgreSQL-backed RecordRepository.
type PgRecordRepository struct {
	pool *pgxpool.Pool
}

func NewPgRecordRepository(pool *pgxpool.Pool) *PgRecordRepository {
	return &PgRecordRepository{pool: pool}
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.Drug1RxCUI, &rec.Drug2RxCUI, &rec.Severity, &rec.Description, &rec.Source, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan interaction record: %w", err)
	}
	return &rec, nil
}

func (r *PgRecordRepository) Create(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO drug_interaction (id, drug_1_rxcui, drug_2_rxcui, severity, description, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + recordCols

	row := r.pool.QueryRow(ctx, query, rec.ID, rec.Drug1RxCUI, rec.Drug2RxCUI, rec.Severity, rec.Description, rec.Source)
	saved, err := scanRecord(row)
	if err != nil {
		return fmt.Errorf("create interaction record: %w", err)
	}
	*rec = *saved
	return nil
}

func (r *PgRecordRepository) FindByPair(ctx context.Context, rxcuiA, rxcuiB string) (*Record, error) {
	query := `
		SELECT ` + recordCols + `
		FROM drug_interaction
		WHERE (drug_1_rxcui = $1 AND drug_2_rxcui = $2)
		   OR (drug_1_rxcui = $2 AND drug_2_rxcui = $1)
		LIMIT 1`

	return scanRecord(r.pool.QueryRow(ctx, query, rxcuiA, rxcuiB))
}

func (r *PgRecordRepository) List(ctx context.Context, params pagination.Params) ([]Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM drug_interaction`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interaction records: %w", err)
	}

	query := `SELECT ` + recordCols + ` FROM drug_interaction ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list interaction records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *rec)
	}
	return records, total, rows.Err()
}

func (r *PgRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drug_interaction WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete interaction record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
