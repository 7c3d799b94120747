package app

import "unicode"

const (
	scoreMatch       = 16
	bonusConsecutive = 8
	bonusBoundary    = 8
	bonusFirstChar   = 4
	penaltyGapStart  = 3
	penaltyGapExtend = 1
)

// FuzzyMatch reports whether every rune of query appears in candidate in
// order. Matching is case-sensitive. The score rewards consecutive runs and
// word boundaries and is only meaningful relative to other candidates for the
// same query. An empty query matches everything with a zero score.
func FuzzyMatch(candidate, query string) (int, bool) {
	q := []rune(query)
	if len(q) == 0 {
		return 0, true
	}
	c := []rune(candidate)

	// Forward pass finds where the first complete match ends, backward pass
	// from there finds the tightest window that still contains the query.
	qi := 0
	end := -1
	for i, r := range c {
		if r == q[qi] {
			qi++
			if qi == len(q) {
				end = i
				break
			}
		}
	}
	if end < 0 {
		return 0, false
	}

	qi = len(q) - 1
	start := end
	for i := end; i >= 0; i-- {
		if c[i] == q[qi] {
			qi--
			if qi < 0 {
				start = i
				break
			}
		}
	}

	score := 0
	qi = 0
	prev := -1
	for i := start; i <= end && qi < len(q); i++ {
		if c[i] != q[qi] {
			continue
		}
		score += scoreMatch
		if isBoundary(c, i) {
			score += bonusBoundary
			if qi == 0 {
				score += bonusFirstChar
			}
		}
		if prev >= 0 {
			if gap := i - prev - 1; gap == 0 {
				score += bonusConsecutive
			} else {
				score -= penaltyGapStart + (gap-1)*penaltyGapExtend
			}
		}
		prev = i
		qi++
	}
	return score, true
}

func isBoundary(c []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev, cur := c[i-1], c[i]
	if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
