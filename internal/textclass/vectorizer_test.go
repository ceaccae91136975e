package textclass

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizer_Fit(t *testing.T) {
	docs := []string{
		"verify your password now",
		"verify your account now",
		"team lunch on friday",
		"team meeting on friday",
	}

	v := NewVectorizer()
	v.Fit(docs)

	// min_df 2: terms in a single document are dropped
	_, hasPassword := v.Vocabulary["password"]
	assert.False(t, hasPassword)
	_, hasVerify := v.Vocabulary["verify"]
	assert.True(t, hasVerify)
	_, hasBigram := v.Vocabulary["verify your"]
	assert.True(t, hasBigram)

	require.Equal(t, len(v.Vocabulary), len(v.IDF))
	for _, idf := range v.IDF {
		assert.Greater(t, idf, 0.0)
	}
}

func TestVectorizer_TransformL2Normalized(t *testing.T) {
	docs := []string{
		"urgent urgent password reset",
		"urgent password reset required",
		"weekly status update attached",
		"weekly update for the team",
	}

	v := NewVectorizer()
	v.Fit(docs)

	for _, doc := range docs {
		vec := v.Transform(doc)
		require.NotEmpty(t, vec)

		norm := 0.0
		for _, w := range vec {
			norm += w * w
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
	}
}

func TestVectorizer_TransformUnknownTerms(t *testing.T) {
	v := NewVectorizer()
	v.Fit([]string{"alpha beta", "alpha beta", "gamma delta", "gamma delta"})

	assert.Empty(t, v.Transform("completely novel words"))
	assert.Empty(t, v.Transform(""))
}

func TestVectorizer_Deterministic(t *testing.T) {
	docs := []string{
		"confirm your banking detail",
		"confirm your payment detail",
		"notes from the call attached",
		"notes from the standup attached",
	}

	a := NewVectorizer()
	a.Fit(docs)
	b := NewVectorizer()
	b.Fit(docs)

	assert.Equal(t, a.Vocabulary, b.Vocabulary)
	assert.Equal(t, a.IDF, b.IDF)
	assert.Equal(t, a.Transform(docs[0]), b.Transform(docs[0]))
}

func TestVectorizer_TokenPattern(t *testing.T) {
	v := NewVectorizer()
	terms := v.terms("Hello, WORLD! a x2 under_score 42")

	// Single characters are dropped, casing is folded
	assert.Contains(t, terms, "hello")
	assert.Contains(t, terms, "world")
	assert.Contains(t, terms, "x2")
	assert.Contains(t, terms, "under_score")
	assert.Contains(t, terms, "42")
	assert.NotContains(t, terms, "a")
}
