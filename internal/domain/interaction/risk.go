package interaction

import (
	"strings"

	"github.com/rxguard/rxguard/internal/platform/openfda"
)

// criticalWeight multiplies report counts for reaction terms that indicate a
// life-threatening outcome.
const criticalWeight = 5

// riskThreshold gates evidence into the merge: a pair whose weighted score
// does not exceed it is treated as background noise. Note the score conflates
// report volume with reaction gravity; a very widely co-reported pair can
// clear the gate on volume alone. Known heuristic, kept deliberately.
const riskThreshold = 10

// criticalKeywords are matched as substrings of the upper-cased reaction term.
var criticalKeywords = []string{
	"DEATH",
	"DRUG INTERACTION",
	"RENAL FAILURE",
	"HEMORRHAGE",
	"RHABDOMYOLYSIS",
	"SEROTONIN SYNDROME",
	"CARDIAC ARREST",
	"TORSADES DE POINTES",
	"STEVENS-JOHNSON SYNDROME",
	"PANCREATITIS",
}

// RiskScore weights each reaction's report count, multiplying critical terms
// by criticalWeight, and sums.
func RiskScore(reactions []openfda.Reaction) int {
	score := 0
	for _, r := range reactions {
		term := strings.ToUpper(r.Term)
		weight := 1
		for _, keyword := range criticalKeywords {
			if strings.Contains(term, keyword) {
				weight = criticalWeight
				break
			}
		}
		score += r.Count * weight
	}
	return score
}

// Qualifies reports whether the evidence is strong enough to surface.
func Qualifies(ev Evidence) bool {
	return ev.Found && ev.RiskScore > riskThreshold
}
