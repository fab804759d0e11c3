package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "custname", normalizeName("Cust_NAME"))
	assert.Equal(t, "custname", normalizeName("cust name"))
	assert.Equal(t, "custname", normalizeName("CustName"))
	assert.Equal(t, "age2", normalizeName("AGE-2"))
	assert.Equal(t, "", normalizeName("__"))
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, nameSimilarity("Cust_NAME", "cust name"))

	// Containment gets a floor even when edit distance is large.
	assert.GreaterOrEqual(t, nameSimilarity("email", "Customer_Email"), 0.75)

	assert.Less(t, nameSimilarity("age", "salary"), 0.3)
	assert.Equal(t, 0.0, nameSimilarity("", "name"))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 4, levenshtein("", "abcd"))
	assert.Equal(t, 2, levenshtein("ab", ""))
}

func TestValueOverlap(t *testing.T) {
	src := []string{"alice", "bob", "carol"}

	assert.Equal(t, 1.0, valueOverlap(src, []string{"carol", "alice", "bob"}))
	assert.InDelta(t, 0.5, valueOverlap(src, []string{"alice", "dave"}), 1e-9)
	assert.Equal(t, 0.0, valueOverlap(src, nil))
	assert.Equal(t, 0.0, valueOverlap(src, []string{"", ""}))
}
