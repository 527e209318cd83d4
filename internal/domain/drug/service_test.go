package drug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rxguard/rxguard/internal/platform/rxnav"
)

type mockNomenclature struct {
	approx map[string][]rxnav.Match
	exact  map[string][]rxnav.Concept
	fail   map[string]bool
	calls  []string
}

func (m *mockNomenclature) ApproximateSearch(_ context.Context, term string) ([]rxnav.Match, error) {
	key := strings.ToLower(term)
	m.calls = append(m.calls, key)
	if m.fail[key] {
		return nil, errors.New("upstream unavailable")
	}
	return m.approx[key], nil
}

func (m *mockNomenclature) ExactSearch(_ context.Context, term string) ([]rxnav.Concept, error) {
	key := strings.ToLower(term)
	if m.fail[key] {
		return nil, errors.New("upstream unavailable")
	}
	return m.exact[key], nil
}

func (m *mockNomenclature) DisplayName(_ context.Context, rxcui string) (string, error) {
	return "", rxnav.ErrNotFound
}

func newTestResolver(nom Nomenclature) *Resolver {
	return NewResolver(nom, DefaultTransliterationTable(), DefaultSynonymTable(), zerolog.Nop())
}

func TestResolve_EmptyQuery(t *testing.T) {
	r := newTestResolver(&mockNomenclature{})
	if _, err := r.Resolve(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestResolve_SynonymExpansionAndExactRanking(t *testing.T) {
	nom := &mockNomenclature{
		approx: map[string][]rxnav.Match{
			"tylenol": {{RxCUI: "202433", Name: "Tylenol", Score: 85}},
		},
		exact: map[string][]rxnav.Concept{
			"paracetamol": {{RxCUI: "161", Name: "Acetaminophen"}},
		},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "Tylenol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.SearchedTerms) != maxSearchTerms {
		t.Errorf("expected %d searched terms, got %v", maxSearchTerms, result.SearchedTerms)
	}
	if result.SearchedTerms[0] != "Tylenol" {
		t.Errorf("expected original term searched first, got %v", result.SearchedTerms)
	}

	if len(result.Results) < 2 {
		t.Fatalf("expected candidates from both lookups, got %v", result.Results)
	}
	if result.Results[0].RxCUI != "161" || result.Results[0].Score != exactMatchScore {
		t.Errorf("expected exact match ranked first with score %d, got %+v", exactMatchScore, result.Results[0])
	}
	if result.Partial {
		t.Error("expected complete result")
	}
}

func TestResolve_ArabicTranslation(t *testing.T) {
	nom := &mockNomenclature{
		exact: map[string][]rxnav.Concept{
			"aspirin": {{RxCUI: "1191", Name: "Aspirin"}},
		},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "اسبرين")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Query != "Aspirin" {
		t.Errorf("expected translated query Aspirin, got %q", result.Query)
	}
	if result.OriginalQuery != "اسبرين" {
		t.Errorf("expected original query preserved, got %q", result.OriginalQuery)
	}
	if len(result.Results) == 0 || result.Results[0].RxCUI != "1191" {
		t.Errorf("expected Aspirin concept resolved, got %v", result.Results)
	}
}

func TestResolve_DedupKeepsHighestScore(t *testing.T) {
	nom := &mockNomenclature{
		approx: map[string][]rxnav.Match{
			"warfarin": {{RxCUI: "11289", Name: "Warfarin", Score: 70}},
			"coumadin": {{RxCUI: "11289", Name: "Warfarin", Score: 90}},
		},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "warfarin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := 0
	for _, cand := range result.Results {
		if cand.RxCUI == "11289" {
			count++
			if cand.Score != 90 {
				t.Errorf("expected highest score kept, got %d", cand.Score)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected one candidate per RxCUI, got %d", count)
	}
}

func TestResolve_PartialOnLookupFailure(t *testing.T) {
	nom := &mockNomenclature{
		approx: map[string][]rxnav.Match{
			"warfarin": {{RxCUI: "11289", Name: "Warfarin", Score: 95}},
		},
		fail: map[string]bool{"coumadin": true},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "warfarin")
	if err != nil {
		t.Fatalf("one failed term must not fail the resolution: %v", err)
	}
	if !result.Partial {
		t.Error("expected Partial flag after a failed lookup")
	}
	if len(result.Results) == 0 {
		t.Error("expected surviving terms to still produce candidates")
	}
}

func TestResolve_SuggestionsForSparseResults(t *testing.T) {
	r := newTestResolver(&mockNomenclature{})

	result, err := r.Resolve(context.Background(), "aspirn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != 0 {
		t.Fatalf("expected no candidates, got %v", result.Results)
	}
	if len(result.Suggestions) == 0 || len(result.Suggestions) > maxSuggestions {
		t.Fatalf("expected 1..%d suggestions, got %d", maxSuggestions, len(result.Suggestions))
	}
	for i, s := range result.Suggestions {
		if s.Score <= suggestionFloor || s.Score >= 1.0 {
			t.Errorf("suggestion %q score %f out of band", s.Name, s.Score)
		}
		if i > 0 && result.Suggestions[i-1].Score < s.Score {
			t.Error("suggestions not sorted descending")
		}
	}
}

func TestResolve_NoEnglishSuggestionsForArabicQuery(t *testing.T) {
	// an Arabic brand name that translates but resolves to nothing upstream
	r := newTestResolver(&mockNomenclature{})

	result, err := r.Resolve(context.Background(), "بانادول")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Query != "Panadol" {
		t.Fatalf("expected translated query, got %q", result.Query)
	}
	// suggestions score the raw Arabic input, which cannot come close to
	// the Latin vocabulary
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions for an Arabic query, got %v", result.Suggestions)
	}
}

func TestResolve_NoSuggestionsWhenEnoughResults(t *testing.T) {
	nom := &mockNomenclature{
		approx: map[string][]rxnav.Match{
			"aspirin": {
				{RxCUI: "1191", Name: "Aspirin", Score: 95},
				{RxCUI: "1192", Name: "Aspirin 81mg", Score: 80},
				{RxCUI: "1193", Name: "Aspirin 325mg", Score: 75},
			},
		},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "aspirin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions with %d candidates, got %v", len(result.Results), result.Suggestions)
	}
}

func TestResolve_DeterministicTieBreak(t *testing.T) {
	nom := &mockNomenclature{
		approx: map[string][]rxnav.Match{
			"drugx": {
				{RxCUI: "30", Name: "X one", Score: 80},
				{RxCUI: "10", Name: "X two", Score: 80},
				{RxCUI: "20", Name: "X three", Score: 80},
			},
		},
	}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "drugx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10", "20", "30"}
	for i, rxcui := range want {
		if result.Results[i].RxCUI != rxcui {
			t.Fatalf("tie-break order wrong: got %v", result.Results)
		}
	}
}

func TestResolve_CapsResults(t *testing.T) {
	var matches []rxnav.Match
	for i := 0; i < 25; i++ {
		matches = append(matches, rxnav.Match{
			RxCUI: fmt.Sprintf("%03d", i),
			Name:  fmt.Sprintf("Candidate %d", i),
			Score: 50 + i,
		})
	}
	nom := &mockNomenclature{approx: map[string][]rxnav.Match{"drugy": matches}}
	r := newTestResolver(nom)

	result, err := r.Resolve(context.Background(), "drugy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Results) != maxResults {
		t.Errorf("expected results capped at %d, got %d", maxResults, len(result.Results))
	}
}
