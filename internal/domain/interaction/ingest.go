package interaction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// seedRecords are the critical interactions every deployment starts with.
var seedRecords = []Record{
	{
		Drug1RxCUI:  "11289", // Warfarin
		Drug2RxCUI:  "1191",  // Aspirin
		Severity:    SeverityMajor,
		Description: "Increased risk of bleeding due to additive anticoagulant effects.",
		Source:      "DDInter Prototype",
	},
	{
		Drug1RxCUI:  "10598", // Sildenafil
		Drug2RxCUI:  "7646",  // Nitroglycerin
		Severity:    SeverityContraindicated,
		Description: "Risk of severe hypotension (low blood pressure) which can be fatal.",
		Source:      "DDInter Prototype",
	},
}

// Seed inserts the built-in critical interactions, skipping pairs already
// present. Safe to run repeatedly.
func Seed(ctx context.Context, repo RecordRepository, logger zerolog.Logger) error {
	for _, rec := range seedRecords {
		_, err := repo.FindByPair(ctx, rec.Drug1RxCUI, rec.Drug2RxCUI)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("seed lookup %s/%s: %w", rec.Drug1RxCUI, rec.Drug2RxCUI, err)
		}

		rec := rec
		if err := repo.Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed %s/%s: %w", rec.Drug1RxCUI, rec.Drug2RxCUI, err)
		}
		logger.Info().Str("drug_1", rec.Drug1RxCUI).Str("drug_2", rec.Drug2RxCUI).
			Str("severity", rec.Severity).Msg("seeded interaction")
	}
	return nil
}

// IngestCSV loads interaction records from a CSV file with header
// drug_1_rxcui,drug_2_rxcui,severity,description,source. Lines starting with
// '#' are comments, rows missing either RxCUI are skipped, and pairs already
// stored (in either ordering) are not duplicated. Returns the number of
// records inserted.
func IngestCSV(ctx context.Context, repo RecordRepository, path string, logger zerolog.Logger) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read interactions file: %w", err)
	}

	var kept []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse interactions csv: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"drug_1_rxcui", "drug_2_rxcui", "severity", "description", "source"} {
		if _, ok := col[required]; !ok {
			return 0, fmt.Errorf("interactions csv missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx := col[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	inserted := 0
	for _, row := range rows[1:] {
		id1 := field(row, "drug_1_rxcui")
		id2 := field(row, "drug_2_rxcui")
		if id1 == "" || id2 == "" {
			continue
		}

		if _, err := repo.FindByPair(ctx, id1, id2); err == nil {
			logger.Debug().Str("drug_1", id1).Str("drug_2", id2).Msg("pair already stored, skipping")
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return inserted, fmt.Errorf("ingest lookup %s/%s: %w", id1, id2, err)
		}

		rec := Record{
			Drug1RxCUI:  id1,
			Drug2RxCUI:  id2,
			Severity:    field(row, "severity"),
			Description: field(row, "description"),
			Source:      field(row, "source"),
		}
		if err := repo.Create(ctx, &rec); err != nil {
			return inserted, fmt.Errorf("ingest %s/%s: %w", id1, id2, err)
		}
		inserted++
	}

	logger.Info().Int("inserted", inserted).Str("file", path).Msg("csv ingestion complete")
	return inserted, nil
}
