package mapping

import "strings"

// normalizeName canonicalizes a column header for comparison: lowercase,
// alphanumerics only. "Cust_NAME", "cust name" and "CustName" all normalize
// to "custname".
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nameSimilarity scores two headers in [0,1]: 1 for identical normalized
// names, otherwise a normalized Levenshtein ratio. Containment (one header
// embedding the other, like "email" in "customer_email") gets a floor score.
func nameSimilarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	longest := len(na)
	if len(nb) > longest {
		longest = len(nb)
	}
	score := 1 - float64(levenshtein(na, nb))/float64(longest)

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		if score < 0.75 {
			score = 0.75
		}
	}
	return score
}

// levenshtein computes edit distance with the classic two-row scan.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// valueOverlap measures how much of the target column's distinct values
// already occur verbatim in the source column, in [0,1].
func valueOverlap(source, target []string) float64 {
	if len(target) == 0 {
		return 0
	}
	sourceSet := make(map[string]struct{}, len(source))
	for _, v := range source {
		if v != "" {
			sourceSet[v] = struct{}{}
		}
	}

	targetSet := make(map[string]struct{}, len(target))
	for _, v := range target {
		if v != "" {
			targetSet[v] = struct{}{}
		}
	}
	if len(targetSet) == 0 {
		return 0
	}

	hits := 0
	for v := range targetSet {
		if _, ok := sourceSet[v]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(targetSet))
}
