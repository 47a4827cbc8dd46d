package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeIntoEmpty(t *testing.T) {
	packed := Merge("", "quality", "abc123")

	hash, ok := Parse(packed).Get("quality")
	require.True(t, ok)
	assert.Equal(t, "abc123", hash)
}

func TestMergeAccumulatesDistinctTags(t *testing.T) {
	packed := Merge(Merge("", "quality", "abc123"), "compliance", "def456")

	set := Parse(packed)
	quality, ok := set.Get("quality")
	require.True(t, ok)
	assert.Equal(t, "abc123", quality)

	compliance, ok := set.Get("compliance")
	require.True(t, ok)
	assert.Equal(t, "def456", compliance)
}

func TestMergeReplacesExistingTag(t *testing.T) {
	existing := Merge(Merge("", "quality", "old"), "compliance", "keep")

	packed := Merge(existing, "quality", "new")

	set := Parse(packed)
	quality, _ := set.Get("quality")
	assert.Equal(t, "new", quality)
	compliance, _ := set.Get("compliance")
	assert.Equal(t, "keep", compliance)
}

func TestMergePreservesOrder(t *testing.T) {
	packed := Merge(Merge("", "quality", "a"), "compliance", "b")
	assert.Equal(t, "quality:a;compliance:b", packed)

	// Replacing in place must not move the fragment to the end.
	packed = Merge(packed, "quality", "c")
	assert.Equal(t, "quality:c;compliance:b", packed)
}

func TestMergeTreatsUnparseableContentAsLegacy(t *testing.T) {
	packed := Merge("QmSomeBareIpfsHash", "quality", "abc123")

	set := Parse(packed)
	legacy, ok := set.Get(LegacyTag)
	require.True(t, ok)
	assert.Equal(t, "QmSomeBareIpfsHash", legacy)

	quality, ok := set.Get("quality")
	require.True(t, ok)
	assert.Equal(t, "abc123", quality)
}

func TestMergeIsDeterministic(t *testing.T) {
	a := Merge("quality:x;compliance:y", "quality", "z")
	b := Merge("quality:x;compliance:y", "quality", "z")
	assert.Equal(t, a, b)
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Equal(t, "", Set(nil).String())
}

func TestGenerateStable(t *testing.T) {
	fields := Fields{
		ProductID: 7,
		Type:      "quality",
		Verifier:  "0x1111111111111111111111111111111111111111",
		Result:    "88",
		Notes:     "passed",
		Timestamp: 1700000000,
	}

	first := Generate(fields)
	second := Generate(fields)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestGenerateSensitiveToEveryField(t *testing.T) {
	base := Fields{
		ProductID: 7,
		Type:      "quality",
		Verifier:  "0x1111111111111111111111111111111111111111",
		Result:    "88",
		Notes:     "passed",
		Timestamp: 1700000000,
	}
	baseHash := Generate(base)

	variants := []Fields{}
	v := base
	v.ProductID = 8
	variants = append(variants, v)
	v = base
	v.Type = "compliance"
	variants = append(variants, v)
	v = base
	v.Verifier = "0x2222222222222222222222222222222222222222"
	variants = append(variants, v)
	v = base
	v.Result = "89"
	variants = append(variants, v)
	v = base
	v.Notes = "failed"
	variants = append(variants, v)
	v = base
	v.Timestamp = 1700000001
	variants = append(variants, v)

	for _, variant := range variants {
		assert.NotEqual(t, baseHash, Generate(variant))
	}
}
