package train

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExamples(n int) []Example {
	examples := make([]Example, n)
	for i := range examples {
		examples[i] = Example{
			Text:  fmt.Sprintf("message number %d", i),
			Label: i % 2,
		}
	}
	return examples
}

func TestDeduplicate(t *testing.T) {
	examples := []Example{
		{Text: "hello", Label: 0},
		{Text: "hello", Label: 0},
		{Text: "hello", Label: 1},
		{Text: "world", Label: 0},
		{Text: "hello", Label: 0},
	}

	kept, removed := Deduplicate(examples)
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 3)

	// First occurrences keep their order
	assert.Equal(t, Example{Text: "hello", Label: 0}, kept[0])
	assert.Equal(t, Example{Text: "hello", Label: 1}, kept[1])
	assert.Equal(t, Example{Text: "world", Label: 0}, kept[2])
}

func TestDeduplicate_NoDuplicates(t *testing.T) {
	examples := makeExamples(10)
	kept, removed := Deduplicate(examples)
	assert.Zero(t, removed)
	assert.Equal(t, examples, kept)
}

func TestSplitNoOverlap(t *testing.T) {
	examples := makeExamples(100)

	train, test, removed := SplitNoOverlap(examples, 0.2, 20, 42)
	assert.Zero(t, removed)
	assert.Len(t, test, 20)
	assert.Len(t, train, 80)

	// No text appears in both partitions
	inTrain := make(map[string]struct{})
	for _, ex := range train {
		inTrain[ex.Text] = struct{}{}
	}
	for _, ex := range test {
		_, leaked := inTrain[ex.Text]
		assert.False(t, leaked, "text leaked into test: %s", ex.Text)
	}
}

func TestSplitNoOverlap_Stratified(t *testing.T) {
	examples := makeExamples(100)
	_, test, _ := SplitNoOverlap(examples, 0.2, 20, 7)

	pos := 0
	for _, ex := range test {
		pos += ex.Label
	}
	assert.Equal(t, 10, pos)
}

func TestSplitNoOverlap_ForcedRemoval(t *testing.T) {
	// Every row shares one text, so every split overlaps and the fallback
	// must strip the test partition clean.
	examples := make([]Example, 0, 40)
	for i := 0; i < 20; i++ {
		examples = append(examples,
			Example{Text: "same text", Label: 0},
			Example{Text: "same text", Label: 1},
		)
	}

	train, test, removed := SplitNoOverlap(examples, 0.2, 5, 42)
	assert.Greater(t, removed, 0)
	assert.Empty(t, test)
	assert.NotEmpty(t, train)
}

func TestSplitNoOverlap_Deterministic(t *testing.T) {
	examples := makeExamples(60)

	train1, test1, _ := SplitNoOverlap(examples, 0.25, 10, 42)
	train2, test2, _ := SplitNoOverlap(examples, 0.25, 10, 42)
	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestStratifiedFolds(t *testing.T) {
	examples := makeExamples(50)
	folds := stratifiedFolds(examples, 5, 42)
	require.Len(t, folds, 5)

	seen := make(map[int]struct{})
	for _, fold := range folds {
		assert.Len(t, fold, 10)

		pos := 0
		for _, idx := range fold {
			_, dup := seen[idx]
			require.False(t, dup, "index %d assigned twice", idx)
			seen[idx] = struct{}{}
			pos += examples[idx].Label
		}
		assert.Equal(t, 5, pos)
	}
	assert.Len(t, seen, 50)
}
