package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divis007/data-mapping/pkg/contracts/domain"
)

func TestDeduceTransform_Uppercase(t *testing.T) {
	d, ok := deduceTransform(
		[]string{"alice johnson", "bob smith", "carol white"},
		[]string{"ALICE JOHNSON", "BOB SMITH", "CAROL WHITE"})

	require.True(t, ok)
	assert.Equal(t, domain.TransformUppercase, d.Transform)
	assert.Equal(t, 1.0, d.MatchRatio)
}

func TestDeduceTransform_DirectWinsTies(t *testing.T) {
	// Identical columns also satisfy trim, but direct is tried first.
	vals := []string{"ACME", "GLOBEX"}
	d, ok := deduceTransform(vals, vals)

	require.True(t, ok)
	assert.Equal(t, domain.TransformDirect, d.Transform)
}

func TestDeduceTransform_Prefix(t *testing.T) {
	d, ok := deduceTransform(
		[]string{"ABCD123", "EFGH456", "IJKL789"},
		[]string{"ABCD", "EFGH", "IJKL"})

	require.True(t, ok)
	assert.Equal(t, domain.TransformPrefix, d.Transform)
	assert.Equal(t, map[string]string{"length": "4"}, d.Params)
}

func TestDeduceTransform_LearnedBucket(t *testing.T) {
	d, ok := deduceTransform(
		[]string{"22", "28", "35", "44", "50", "61"},
		[]string{"Young", "Young", "Middle", "Middle", "Senior", "Senior"})

	require.True(t, ok)
	assert.Equal(t, domain.TransformBucket, d.Transform)
	assert.Equal(t, "35,50", d.Params["thresholds"])
	assert.Equal(t, "Young,Middle,Senior", d.Params["labels"])
	assert.Equal(t, 1.0, d.MatchRatio)
}

func TestDeduceTransform_BucketRejectsOverlappingRanges(t *testing.T) {
	_, ok := deduceTransform(
		[]string{"28", "41", "56"},
		[]string{"Gold", "Silver", "Gold"})
	assert.False(t, ok)
}

func TestDeduceTransform_NoisyDataRejected(t *testing.T) {
	// Two of three rows are uppercased; 0.67 agreement is not enough.
	_, ok := deduceTransform(
		[]string{"alice", "bob", "carol"},
		[]string{"ALICE", "BOB", "charlie"})
	assert.False(t, ok)
}

func TestDeduceTransform_EmptyColumns(t *testing.T) {
	_, ok := deduceTransform([]string{"", ""}, []string{"", ""})
	assert.False(t, ok)
}

func TestDeduceTransform_BeforeAt(t *testing.T) {
	d, ok := deduceTransform(
		[]string{"alice@acme.com", "bob@globex.io", "carol@initech.net"},
		[]string{"alice", "bob", "carol"})

	require.True(t, ok)
	assert.Equal(t, domain.TransformBeforeAt, d.Transform)
}

func TestFormatThreshold(t *testing.T) {
	assert.Equal(t, "35", formatThreshold(35))
	assert.Equal(t, "35.5", formatThreshold(35.5))
}
