package interaction

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rxguard/rxguard/internal/platform/openfda"
)

// Severity labels used by the authoritative store. Ingested data may carry
// other labels; ColorForSeverity maps anything it does not recognize to green.
const (
	SeverityContraindicated = "Contraindicated"
	SeverityMajor           = "Major"
	SeverityModerate        = "Moderate"
	SeverityMinor           = "Minor"

	// severityPotentialRisk labels evidence-only findings. It is advisory and
	// never overrides an authoritative severity.
	severityPotentialRisk = "Potential Risk"
)

// Record is one authoritative pairwise interaction from the local store.
type Record struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Drug1RxCUI  string    `db:"drug_1_rxcui" json:"drug_1_rxcui"`
	Drug2RxCUI  string    `db:"drug_2_rxcui" json:"drug_2_rxcui"`
	Severity    string    `db:"severity" json:"severity"`
	Description string    `db:"description" json:"description"`
	Source      string    `db:"source" json:"source"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PairKey is the canonical unordered form of a drug pair, used for
// deduplicating findings regardless of input order.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// ColorForSeverity maps a severity label to a UI color band. Matching is a
// case-insensitive substring check and the first rule wins, so
// "Contraindicated (absolute)" still lands on red. Unrecognized labels are
// green.
func ColorForSeverity(severity string) string {
	s := strings.ToLower(severity)
	switch {
	case strings.Contains(s, "contraindicated"):
		return "red"
	case strings.Contains(s, "major"), strings.Contains(s, "severe"):
		return "orange"
	case strings.Contains(s, "moderate"):
		return "yellow"
	default:
		return "green"
	}
}

// Finding is one reconciled interaction in a check response.
type Finding struct {
	Drug1RxCUI  string `json:"drug_1_rxcui"`
	Drug2RxCUI  string `json:"drug_2_rxcui"`
	Drug1Name   string `json:"drug_1_name"`
	Drug2Name   string `json:"drug_2_name"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Source      string `json:"source"`
	// MultiSourceVerified is set when an authoritative record is corroborated
	// by qualifying adverse-event evidence.
	MultiSourceVerified bool `json:"multi_source_verified,omitempty"`
}

// Evidence is the scored adverse-event signal for one drug pair. It is
// derived per check and never persisted.
type Evidence struct {
	Found        bool
	RiskScore    int
	TopReactions []openfda.Reaction
	TotalReports int
}
