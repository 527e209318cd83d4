package drug

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyQuery is returned when a search query is empty or whitespace.
var ErrEmptyQuery = errors.New("drug: empty query")

// Concept is a canonical drug identity keyed by RxCUI. Concepts are sourced
// from the nomenclature collaborator; the resolver never mints its own.
type Concept struct {
	RxCUI string `json:"rxcui"`
	Name  string `json:"name"`
}

// Candidate is a scored resolution proposal for one query. Candidates are
// ephemeral, ranked descending by score and deduplicated by RxCUI.
type Candidate struct {
	Concept
	Score    int      `json:"score"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Suggestion is a spelling correction offered when few candidates resolve.
type Suggestion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SearchResult is the full output of one identity resolution.
type SearchResult struct {
	Results       []Candidate  `json:"results"`
	Query         string       `json:"query"`
	OriginalQuery string       `json:"original_query"`
	Suggestions   []Suggestion `json:"suggestions"`
	SearchedTerms []string     `json:"searched_terms"`
	// Partial is set when one or more external lookups failed and the
	// result was assembled from the remaining terms.
	Partial bool `json:"partial,omitempty"`
}

// Drug maps to the drug table: a locally cached copy of a resolved concept.
type Drug struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RxCUI     string    `db:"rxcui" json:"rxcui"`
	Name      string    `db:"name" json:"name"`
	Synonyms  *string   `db:"synonyms" json:"synonyms,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
