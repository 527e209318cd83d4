package drug

import "strings"

// Tier scores for structural matches. Prefix and substring hits are common
// for drug-name typos and brand/generic truncations, so they deliberately
// outrank an edit-distance ratio from an unrelated string of similar length.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreSubstring = 0.8
)

// Similarity scores how well target matches query, in [0, 1]. The tiers are
// evaluated as an ordered cascade: the first matching tier wins and no
// averaging happens across tiers. Similarity(x, x) is always 1.
func Similarity(query, target string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(strings.TrimSpace(target))

	if q == t {
		return scoreExact
	}
	if strings.HasPrefix(t, q) || strings.HasPrefix(q, t) {
		return scorePrefix
	}
	if strings.Contains(t, q) || strings.Contains(q, t) {
		return scoreSubstring
	}
	return ratcliffObershelp(q, t)
}

// ratcliffObershelp computes the classic gestalt pattern-matching ratio:
// 2*M / (len(a)+len(b)) where M is the total length of matching blocks found
// by recursively taking the longest common substring and matching the pieces
// on either side of it.
func ratcliffObershelp(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return scoreExact
	}
	return 2.0 * float64(matchedLen(ra, rb)) / float64(total)
}

func matchedLen(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchedLen(a[:ai], b[:bi]) +
		matchedLen(a[ai+size:], b[bi+size:])
}

// longestCommonBlock returns the start positions and length of the longest
// common substring of a and b. Ties resolve to the earliest positions so the
// recursion is deterministic.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	// prev[j] holds the match length ending at a[i-1], b[j-1]
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
