package interaction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rxguard/rxguard/internal/domain/drug"
	"github.com/rxguard/rxguard/internal/platform/openfda"
	"github.com/rxguard/rxguard/pkg/pagination"
)

type mockRecordRepo struct {
	records   []Record
	failPairs map[string]bool
}

func (m *mockRecordRepo) Create(_ context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRecordRepo) FindByPair(_ context.Context, a, b string) (*Record, error) {
	if m.failPairs[PairKey(a, b)] {
		return nil, errors.New("database unavailable")
	}
	for _, rec := range m.records {
		if (rec.Drug1RxCUI == a && rec.Drug2RxCUI == b) || (rec.Drug1RxCUI == b && rec.Drug2RxCUI == a) {
			found := rec
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRecordRepo) List(_ context.Context, params pagination.Params) ([]Record, int, error) {
	return m.records, len(m.records), nil
}

func (m *mockRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rec := range m.records {
		if rec.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type mockNames struct {
	names map[string]string
}

func (m *mockNames) DisplayName(_ context.Context, rxcui string) (string, error) {
	if name, ok := m.names[rxcui]; ok {
		return name, nil
	}
	return "", errors.New("unknown rxcui")
}

type mockFeed struct {
	summaries map[string]*openfda.Summary
	failPairs map[string]bool
	calls     int
}

func (m *mockFeed) QueryAdverseEvents(_ context.Context, nameA, nameB, rxcuiA, rxcuiB string) (*openfda.Summary, error) {
	m.calls++
	key := PairKey(rxcuiA, rxcuiB)
	if m.failPairs[key] {
		return nil, errors.New("feed timeout")
	}
	if summary, ok := m.summaries[key]; ok {
		return summary, nil
	}
	return &openfda.Summary{Found: false}, nil
}

type mockCache struct {
	drugs map[string]drug.Drug
}

func (m *mockCache) GetByRxCUI(_ context.Context, rxcui string) (*drug.Drug, error) {
	if d, ok := m.drugs[rxcui]; ok {
		return &d, nil
	}
	return nil, drug.ErrNotFound
}

func seededRepo() *mockRecordRepo {
	repo := &mockRecordRepo{}
	_ = Seed(context.Background(), repo, zerolog.Nop())
	return repo
}

func defaultNames() *mockNames {
	return &mockNames{names: map[string]string{
		"11289": "Warfarin",
		"1191":  "Aspirin",
		"10598": "Sildenafil",
		"7646":  "Nitroglycerin",
	}}
}

func bleedingEvidence() *openfda.Summary {
	return &openfda.Summary{
		Found: true,
		TopReactions: []openfda.Reaction{
			{Term: "HEMORRHAGE", Count: 40},
			{Term: "ANAEMIA", Count: 20},
			{Term: "DIZZINESS", Count: 10},
			{Term: "NAUSEA", Count: 5},
		},
		TotalReports: 75,
	}
}

func TestCheck_LocalRecordCorroboratedByEvidence(t *testing.T) {
	feed := &mockFeed{summaries: map[string]*openfda.Summary{
		PairKey("11289", "1191"): bleedingEvidence(),
	}}
	r := NewReconciler(seededRepo(), defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(result.Interactions))
	}

	f := result.Interactions[0]
	if f.Severity != SeverityMajor {
		t.Errorf("authoritative severity must not be overridden, got %q", f.Severity)
	}
	if f.Color != "orange" {
		t.Errorf("expected orange for Major, got %q", f.Color)
	}
	if !f.MultiSourceVerified {
		t.Error("expected MultiSourceVerified with qualifying evidence")
	}
	if !strings.Contains(f.Description, "OpenFDA reports: HEMORRHAGE, ANAEMIA, DIZZINESS") {
		t.Errorf("expected top-3 reaction terms appended, got %q", f.Description)
	}
	if !strings.Contains(f.Description, "additive anticoagulant") {
		t.Errorf("expected original description preserved, got %q", f.Description)
	}
	if f.Drug1Name != "Warfarin" || f.Drug2Name != "Aspirin" {
		t.Errorf("expected resolved names, got %q/%q", f.Drug1Name, f.Drug2Name)
	}
}

func TestCheck_ContraindicatedStaysRedWhenFeedFails(t *testing.T) {
	feed := &mockFeed{failPairs: map[string]bool{PairKey("10598", "7646"): true}}
	r := NewReconciler(seededRepo(), defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"10598", "7646"})
	if err != nil {
		t.Fatalf("feed failure must not fail the check: %v", err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected the authoritative finding to survive, got %d", len(result.Interactions))
	}

	f := result.Interactions[0]
	if f.Severity != SeverityContraindicated || f.Color != "red" {
		t.Errorf("expected Contraindicated/red, got %q/%q", f.Severity, f.Color)
	}
	if f.MultiSourceVerified {
		t.Error("failed feed must not mark the finding verified")
	}
	if !result.Partial {
		t.Error("expected Partial after feed failure")
	}
}

func TestCheck_EvidenceOnlyFinding(t *testing.T) {
	feed := &mockFeed{summaries: map[string]*openfda.Summary{
		PairKey("11289", "1191"): bleedingEvidence(),
	}}
	r := NewReconciler(&mockRecordRepo{}, defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected evidence-only finding, got %d", len(result.Interactions))
	}

	f := result.Interactions[0]
	if f.Severity != "Potential Risk" || f.Color != "yellow" {
		t.Errorf("expected Potential Risk/yellow, got %q/%q", f.Severity, f.Color)
	}
	if f.Source != "OpenFDA (Live)" {
		t.Errorf("expected live source label, got %q", f.Source)
	}
}

func TestCheck_WeakEvidenceIgnored(t *testing.T) {
	feed := &mockFeed{summaries: map[string]*openfda.Summary{
		PairKey("11289", "1191"): {
			Found:        true,
			TopReactions: []openfda.Reaction{{Term: "NAUSEA", Count: riskThreshold}},
			TotalReports: riskThreshold,
		},
	}}
	r := NewReconciler(&mockRecordRepo{}, defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 0 {
		t.Errorf("evidence at the threshold must not surface, got %+v", result.Interactions)
	}
}

func TestCheck_FeedFailureWithoutLocalRecord(t *testing.T) {
	feed := &mockFeed{failPairs: map[string]bool{PairKey("11289", "1191"): true}}
	r := NewReconciler(&mockRecordRepo{}, defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if len(result.Interactions) != 0 {
		t.Errorf("expected no findings, got %+v", result.Interactions)
	}
	if !result.Partial {
		t.Error("expected Partial after feed failure")
	}
}

func TestCheck_Symmetry(t *testing.T) {
	r := NewReconciler(seededRepo(), defaultNames(), &mockFeed{}, nil, zerolog.Nop())

	forward, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := r.Check(context.Background(), []string{"1191", "11289"})
	if err != nil {
		t.Fatal(err)
	}
	if len(forward.Interactions) != 1 || len(reversed.Interactions) != 1 {
		t.Fatalf("expected the pair found in both orders, got %d/%d", len(forward.Interactions), len(reversed.Interactions))
	}
	if forward.Interactions[0].Severity != reversed.Interactions[0].Severity {
		t.Error("expected the same severity regardless of input order")
	}
}

func TestCheck_DuplicateInputsReportedOnce(t *testing.T) {
	r := NewReconciler(seededRepo(), defaultNames(), &mockFeed{}, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191", "11289", "1191"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Interactions) != 1 {
		t.Errorf("expected each pair reported once, got %d", len(result.Interactions))
	}
}

func TestCheck_NameFallsBackToCacheThenID(t *testing.T) {
	cache := &mockCache{drugs: map[string]drug.Drug{
		"11289": {RxCUI: "11289", Name: "Warfarin (cached)"},
	}}
	r := NewReconciler(seededRepo(), &mockNames{names: map[string]string{}}, &mockFeed{}, cache, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(result.Interactions))
	}

	f := result.Interactions[0]
	if f.Drug1Name != "Warfarin (cached)" {
		t.Errorf("expected cached name, got %q", f.Drug1Name)
	}
	if f.Drug2Name != "1191" {
		t.Errorf("expected raw id fallback, got %q", f.Drug2Name)
	}
	if !result.Partial {
		t.Error("expected Partial when a name falls back to the raw id")
	}
}

func TestCheck_SingleDrugNoPairs(t *testing.T) {
	feed := &mockFeed{}
	r := NewReconciler(seededRepo(), defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Interactions) != 0 || feed.calls != 0 {
		t.Errorf("expected nothing checked for a single drug, got %d findings, %d feed calls", len(result.Interactions), feed.calls)
	}
}

func TestCheck_StoreFailureDegradesOnlyThatPair(t *testing.T) {
	repo := seededRepo()
	repo.failPairs = map[string]bool{PairKey("11289", "1191"): true}
	feed := &mockFeed{summaries: map[string]*openfda.Summary{
		PairKey("11289", "1191"): bleedingEvidence(),
	}}
	r := NewReconciler(repo, defaultNames(), feed, nil, zerolog.Nop())

	result, err := r.Check(context.Background(), []string{"11289", "1191", "10598", "7646"})
	if err != nil {
		t.Fatalf("a store failure must not fail the check: %v", err)
	}
	if !result.Partial {
		t.Error("expected Partial after a store failure")
	}

	bySeverity := map[string]Finding{}
	for _, f := range result.Interactions {
		bySeverity[f.Severity] = f
	}
	// the failed pair still reconciles from evidence alone
	if f, ok := bySeverity["Potential Risk"]; !ok {
		t.Errorf("expected evidence-only finding for the failed pair, got %+v", result.Interactions)
	} else if f.Drug1RxCUI != "11289" || f.Drug2RxCUI != "1191" {
		t.Errorf("evidence-only finding on the wrong pair: %+v", f)
	}
	// sibling pairs are reconciled normally
	if f, ok := bySeverity[SeverityContraindicated]; !ok {
		t.Errorf("expected the sibling pair reconciled, got %+v", result.Interactions)
	} else if f.Color != "red" {
		t.Errorf("expected red for Contraindicated, got %q", f.Color)
	}
}
