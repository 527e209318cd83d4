package interaction

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rxguard/rxguard/internal/domain/drug"
	"github.com/rxguard/rxguard/internal/platform/openfda"
)

// evidenceReactionLimit caps how many reaction terms a qualifying evidence
// summary contributes to a finding description.
const evidenceReactionLimit = 3

// Nomenclature resolves RxCUIs to display names. *rxnav.Client satisfies it.
type Nomenclature interface {
	DisplayName(ctx context.Context, rxcui string) (string, error)
}

// EvidenceFeed supplies adverse-event evidence for a drug pair.
// *openfda.Client satisfies it.
type EvidenceFeed interface {
	QueryAdverseEvents(ctx context.Context, nameA, nameB, rxcuiA, rxcuiB string) (*openfda.Summary, error)
}

// ConceptCache is the local drug cache consulted when the nomenclature
// cannot resolve a name.
type ConceptCache interface {
	GetByRxCUI(ctx context.Context, rxcui string) (*drug.Drug, error)
}

// CheckResult is the reconciled output for one medication list.
type CheckResult struct {
	Interactions []Finding `json:"interactions"`
	// Partial is set when an external collaborator failed for at least one
	// pair and the result was assembled from what remained.
	Partial bool `json:"partial,omitempty"`
}

// Reconciler merges the authoritative local store with live adverse-event
// evidence. The local store always wins on severity; evidence can corroborate
// a record or surface a pair the store does not know, never downgrade one.
type Reconciler struct {
	records      RecordRepository
	nomenclature Nomenclature
	evidence     EvidenceFeed
	cache        ConceptCache
	logger       zerolog.Logger
}

func NewReconciler(records RecordRepository, nomenclature Nomenclature, evidence EvidenceFeed, cache ConceptCache, logger zerolog.Logger) *Reconciler {
	return &Reconciler{
		records:      records,
		nomenclature: nomenclature,
		evidence:     evidence,
		cache:        cache,
		logger:       logger.With().Str("component", "reconciler").Logger(),
	}
}

// Check reconciles every unordered pair in the medication list. Pairs are
// visited in caller order (i<j) and each pair is reported at most once, so
// the output is deterministic for a given input and store state. Collaborator
// failures degrade single pairs, not the whole check.
func (r *Reconciler) Check(ctx context.Context, rxcuis []string) (*CheckResult, error) {
	result := &CheckResult{Interactions: []Finding{}}

	seen := map[string]bool{}
	for i := 0; i < len(rxcuis); i++ {
		for j := i + 1; j < len(rxcuis); j++ {
			id1, id2 := rxcuis[i], rxcuis[j]
			key := PairKey(id1, id2)
			if id1 == id2 || seen[key] {
				continue
			}
			seen[key] = true

			finding, partial := r.checkPair(ctx, id1, id2)
			if partial {
				result.Partial = true
			}
			if finding != nil {
				result.Interactions = append(result.Interactions, *finding)
			}
		}
	}
	return result, nil
}

// checkPair reconciles one pair. Any collaborator failure, the local store
// included, degrades this pair and marks the result partial; sibling pairs
// are unaffected.
func (r *Reconciler) checkPair(ctx context.Context, id1, id2 string) (*Finding, bool) {
	partial := false

	record, err := r.records.FindByPair(ctx, id1, id2)
	if err != nil && !errors.Is(err, ErrNotFound) {
		r.logger.Warn().Str("drug_1", id1).Str("drug_2", id2).Err(err).
			Msg("record store lookup failed, reconciling from evidence only")
		record = nil
		partial = true
	}
	name1, ok1 := r.displayName(ctx, id1)
	name2, ok2 := r.displayName(ctx, id2)
	if !ok1 || !ok2 {
		partial = true
	}

	ev, evErr := r.queryEvidence(ctx, name1, name2, id1, id2)
	if evErr != nil {
		r.logger.Warn().Str("drug_1", id1).Str("drug_2", id2).Err(evErr).
			Msg("evidence feed failed, reconciling from local store only")
		partial = true
	}

	if record != nil {
		finding := &Finding{
			Drug1RxCUI:  id1,
			Drug2RxCUI:  id2,
			Drug1Name:   name1,
			Drug2Name:   name2,
			Severity:    record.Severity,
			Description: record.Description,
			Color:       ColorForSeverity(record.Severity),
			Source:      record.Source,
		}
		if Qualifies(ev) {
			finding.Description += " | " + evidenceDescription(ev)
			finding.MultiSourceVerified = true
		}
		return finding, partial
	}

	if Qualifies(ev) {
		return &Finding{
			Drug1RxCUI:  id1,
			Drug2RxCUI:  id2,
			Drug1Name:   name1,
			Drug2Name:   name2,
			Severity:    severityPotentialRisk,
			Description: evidenceDescription(ev),
			Color:       "yellow",
			Source:      "OpenFDA (Live)",
		}, partial
	}

	return nil, partial
}

// displayName resolves best-effort: nomenclature, then the local cache, then
// the raw identifier. The second return reports whether a real name was found.
func (r *Reconciler) displayName(ctx context.Context, rxcui string) (string, bool) {
	name, err := r.nomenclature.DisplayName(ctx, rxcui)
	if err == nil && name != "" {
		return name, true
	}

	if r.cache != nil {
		if cached, cacheErr := r.cache.GetByRxCUI(ctx, rxcui); cacheErr == nil {
			return cached.Name, true
		}
	}

	r.logger.Debug().Str("rxcui", rxcui).Err(err).Msg("display name unresolved")
	return rxcui, false
}

func (r *Reconciler) queryEvidence(ctx context.Context, name1, name2, id1, id2 string) (Evidence, error) {
	summary, err := r.evidence.QueryAdverseEvents(ctx, name1, name2, id1, id2)
	if err != nil {
		return Evidence{}, err
	}
	return Evidence{
		Found:        summary.Found,
		RiskScore:    RiskScore(summary.TopReactions),
		TopReactions: summary.TopReactions,
		TotalReports: summary.TotalReports,
	}, nil
}

// evidenceDescription renders the top reaction terms as a human-readable
// summary line.
func evidenceDescription(ev Evidence) string {
	reactions := ev.TopReactions
	if len(reactions) > evidenceReactionLimit {
		reactions = reactions[:evidenceReactionLimit]
	}
	terms := make([]string, 0, len(reactions))
	for _, reaction := range reactions {
		terms = append(terms, reaction.Term)
	}
	return "OpenFDA reports: " + strings.Join(terms, ", ")
}
