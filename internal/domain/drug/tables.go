package drug

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Fuzzy-acceptance thresholds. These are empirical tuning constants carried
// from production data; raising them drops recoverable typos, lowering them
// risks mistranslating unrelated queries.
const (
	translateThreshold = 0.75
	synonymThreshold   = 0.8
	suggestionFloor    = 0.6
)

// MatchKind tags which branch of a table lookup cascade produced a hit, so
// the fallback behaviour is auditable per branch.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchNormalized
	MatchFuzzy
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchNormalized:
		return "normalized"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// TableMatch describes how a table lookup resolved.
type TableMatch struct {
	Kind  MatchKind
	Key   string
	Score float64
}

// TransliterationTable maps Arabic-script drug names to canonical English
// names. It is static configuration data, replaceable at deploy time via
// LoadTransliterationFile.
type TransliterationTable struct {
	entries map[string]string
	// keys sorted for deterministic fuzzy iteration
	keys []string
}

func NewTransliterationTable(entries map[string]string) *TransliterationTable {
	t := &TransliterationTable{entries: entries}
	for k := range entries {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

// LoadTransliterationFile reads a JSON object of {"arabic": "english"} pairs.
func LoadTransliterationFile(path string) (*TransliterationTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transliteration table: %w", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse transliteration table: %w", err)
	}
	return NewTransliterationTable(entries), nil
}

// Translate maps an Arabic drug name to English. The cascade is: exact hit on
// the raw input, exact hit on normalized forms, then a fuzzy pass over
// normalized keys that must clear translateThreshold. When nothing clears,
// the input comes back unchanged with a MatchNone tag.
func (t *TransliterationTable) Translate(text string) (string, TableMatch) {
	if english, ok := t.entries[text]; ok {
		return english, TableMatch{Kind: MatchExact, Key: text, Score: 1.0}
	}

	normalized := NormalizeArabic(text)
	for _, key := range t.keys {
		if NormalizeArabic(key) == normalized {
			return t.entries[key], TableMatch{Kind: MatchNormalized, Key: key, Score: 1.0}
		}
	}

	bestScore := 0.0
	bestKey := ""
	for _, key := range t.keys {
		score := Similarity(normalized, NormalizeArabic(key))
		if score > bestScore && score > translateThreshold {
			bestScore = score
			bestKey = key
		}
	}
	if bestKey != "" {
		return t.entries[bestKey], TableMatch{Kind: MatchFuzzy, Key: bestKey, Score: bestScore}
	}

	return text, TableMatch{Kind: MatchNone}
}

// SynonymTable maps a canonical generic name to its known aliases (brand
// names, alternate spellings).
type SynonymTable struct {
	groups map[string][]string
	keys   []string
}

func NewSynonymTable(groups map[string][]string) *SynonymTable {
	t := &SynonymTable{groups: groups}
	for k := range groups {
		t.keys = append(t.keys, k)
	}
	sort.Strings(t.keys)
	return t
}

// LoadSynonymFile reads a JSON object of {"generic": ["alias", ...]} groups.
func LoadSynonymFile(path string) (*SynonymTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonym table: %w", err)
	}
	groups := map[string][]string{}
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("parse synonym table: %w", err)
	}
	return NewSynonymTable(groups), nil
}

// closure returns the generic key followed by its aliases in table order.
func (t *SynonymTable) closure(generic string) []string {
	aliases := t.groups[generic]
	out := make([]string, 0, len(aliases)+1)
	out = append(out, generic)
	out = append(out, aliases...)
	return out
}

// Expand broadens a term to its full brand/generic group. A structural hit
// (the lowered input equals the generic or one of its aliases) or a fuzzy
// alias hit above synonymThreshold returns that group's closure; only one
// group is ever returned. With no hit the term stands alone.
func (t *SynonymTable) Expand(term string) []string {
	lowered := strings.ToLower(strings.TrimSpace(term))

	for _, generic := range t.keys {
		if lowered == generic {
			return t.closure(generic)
		}
		for _, alias := range t.groups[generic] {
			if lowered == alias {
				return t.closure(generic)
			}
		}
	}

	for _, generic := range t.keys {
		for _, alias := range t.groups[generic] {
			if Similarity(lowered, alias) > synonymThreshold {
				return t.closure(generic)
			}
		}
	}

	return []string{term}
}

// Vocabulary returns every known generic and alias name, generics in sorted
// order each followed by its aliases. Used as the suggestion corpus.
func (t *SynonymTable) Vocabulary() []string {
	var names []string
	for _, generic := range t.keys {
		names = append(names, generic)
		names = append(names, t.groups[generic]...)
	}
	return names
}

// Suggest scores the query against the vocabulary and returns up to limit
// names with similarity strictly between suggestionFloor and 1.0; an exact
// match is not a suggestion. Ordered by score descending, name ascending on
// ties.
func (t *SynonymTable) Suggest(query string, limit int) []Suggestion {
	var out []Suggestion
	for _, name := range t.Vocabulary() {
		score := Similarity(strings.ToLower(query), name)
		if score > suggestionFloor && score < 1.0 {
			out = append(out, Suggestion{Name: name, Score: score})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
