package drug

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rxguard/rxguard/internal/platform/rxnav"
)

const (
	// maxSearchTerms bounds synonym fan-out so one query cannot trigger an
	// unbounded number of upstream lookups.
	maxSearchTerms = 3
	maxResults     = 15
	maxSuggestions = 5
	// minResultsForSuggestions is the candidate count below which spelling
	// suggestions are added to the response.
	minResultsForSuggestions = 3
	// exactMatchScore outranks every approximate score RxNav can return.
	exactMatchScore = 100
)

// Nomenclature is the external drug vocabulary the resolver consults.
// *rxnav.Client satisfies it.
type Nomenclature interface {
	ApproximateSearch(ctx context.Context, term string) ([]rxnav.Match, error)
	ExactSearch(ctx context.Context, term string) ([]rxnav.Concept, error)
	DisplayName(ctx context.Context, rxcui string) (string, error)
}

// Resolver turns free-text drug names, Latin or Arabic script, into ranked
// canonical concepts.
type Resolver struct {
	nomenclature Nomenclature
	arabicNames  *TransliterationTable
	synonyms     *SynonymTable
	logger       zerolog.Logger
}

func NewResolver(nomenclature Nomenclature, arabicNames *TransliterationTable, synonyms *SynonymTable, logger zerolog.Logger) *Resolver {
	return &Resolver{
		nomenclature: nomenclature,
		arabicNames:  arabicNames,
		synonyms:     synonyms,
		logger:       logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve runs the full identity-resolution pipeline: Arabic translation,
// synonym expansion, exact and approximate nomenclature lookups, then ranking.
// A failed lookup for one term degrades the result (Partial=true) instead of
// failing the whole resolution; the error return is reserved for invalid
// input.
func (r *Resolver) Resolve(ctx context.Context, query string) (*SearchResult, error) {
	original := query
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	raw := query

	if ContainsArabic(query) {
		translated, match := r.arabicNames.Translate(query)
		r.logger.Debug().
			Str("query", query).
			Str("translated", translated).
			Str("match", match.Kind.String()).
			Msg("arabic translation")
		query = translated
	}

	terms := r.searchTerms(query)

	result := &SearchResult{
		Results:       []Candidate{},
		Query:         query,
		OriginalQuery: original,
		Suggestions:   []Suggestion{},
		SearchedTerms: terms,
	}

	best := map[string]Candidate{}
	for _, term := range terms {
		if err := r.lookupTerm(ctx, term, best); err != nil {
			r.logger.Warn().Str("term", term).Err(err).Msg("lookup failed, continuing with remaining terms")
			result.Partial = true
		}
	}

	result.Results = rank(best)
	if len(result.Results) < minResultsForSuggestions {
		// Suggestions correct what the user actually typed, so they score
		// the raw query, not the translated one. An Arabic query scores
		// near zero against the Latin vocabulary and gets no suggestions.
		result.Suggestions = r.synonyms.Suggest(raw, maxSuggestions)
	}
	return result, nil
}

// searchTerms expands the query through the synonym table and caps the
// fan-out, keeping the query itself first.
func (r *Resolver) searchTerms(query string) []string {
	expanded := r.synonyms.Expand(query)

	terms := []string{query}
	for _, term := range expanded {
		if strings.EqualFold(term, query) {
			continue
		}
		terms = append(terms, term)
		if len(terms) == maxSearchTerms {
			break
		}
	}
	return terms
}

// lookupTerm queries the nomenclature both approximately and exactly for one
// term, folding candidates into best keyed by RxCUI, keeping the highest
// score per concept.
func (r *Resolver) lookupTerm(ctx context.Context, term string, best map[string]Candidate) error {
	matches, err := r.nomenclature.ApproximateSearch(ctx, term)
	if err != nil {
		return err
	}
	for _, m := range matches {
		keep(best, Candidate{
			Concept: Concept{RxCUI: m.RxCUI, Name: m.Name},
			Score:   m.Score,
		})
	}

	concepts, err := r.nomenclature.ExactSearch(ctx, term)
	if err != nil {
		return err
	}
	for _, c := range concepts {
		cand := Candidate{
			Concept: Concept{RxCUI: c.RxCUI, Name: c.Name},
			Score:   exactMatchScore,
		}
		if c.Synonyms != "" {
			cand.Synonyms = []string{c.Synonyms}
		}
		keep(best, cand)
	}
	return nil
}

// keep retains the higher-scored candidate per RxCUI.
func keep(best map[string]Candidate, cand Candidate) {
	if cand.RxCUI == "" {
		return
	}
	if existing, ok := best[cand.RxCUI]; ok && existing.Score >= cand.Score {
		return
	}
	best[cand.RxCUI] = cand
}

// rank orders candidates by score descending, RxCUI ascending on ties, and
// caps the list. The tiebreak keeps output stable across runs.
func rank(best map[string]Candidate) []Candidate {
	out := make([]Candidate, 0, len(best))
	for _, cand := range best {
		out = append(out, cand)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].RxCUI < out[j].RxCUI
	})
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}
