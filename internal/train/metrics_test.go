package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name          string
		pred          []int
		truth         []int
		wantAccuracy  float64
		wantPrecision float64
		wantRecall    float64
	}{
		{
			name:          "perfect predictions",
			pred:          []int{1, 0, 1, 0},
			truth:         []int{1, 0, 1, 0},
			wantAccuracy:  1.0,
			wantPrecision: 1.0,
			wantRecall:    1.0,
		},
		{
			name:          "one false positive",
			pred:          []int{1, 1, 1, 0},
			truth:         []int{1, 0, 1, 0},
			wantAccuracy:  0.75,
			wantPrecision: 2.0 / 3.0,
			wantRecall:    1.0,
		},
		{
			name:          "one false negative",
			pred:          []int{1, 0, 0, 0},
			truth:         []int{1, 0, 1, 0},
			wantAccuracy:  0.75,
			wantPrecision: 1.0,
			wantRecall:    0.5,
		},
		{
			name:          "all negative predictions",
			pred:          []int{0, 0, 0, 0},
			truth:         []int{1, 0, 1, 0},
			wantAccuracy:  0.5,
			wantPrecision: 0.0,
			wantRecall:    0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := Evaluate(tt.pred, tt.truth)
			assert.InDelta(t, tt.wantAccuracy, ev.Accuracy, 1e-9)
			assert.InDelta(t, tt.wantPrecision, ev.PerClass[1].Precision, 1e-9)
			assert.InDelta(t, tt.wantRecall, ev.PerClass[1].Recall, 1e-9)
		})
	}
}

func TestEvaluate_Empty(t *testing.T) {
	ev := Evaluate(nil, nil)
	assert.Zero(t, ev.Accuracy)
	assert.Zero(t, ev.F1Positive())
}

func TestF1Score(t *testing.T) {
	// precision 2/3, recall 1 -> F1 = 0.8
	f1 := F1Score([]int{1, 1, 1, 0}, []int{1, 0, 1, 0})
	assert.InDelta(t, 0.8, f1, 1e-9)
}

func TestPrecisionRecallCurve(t *testing.T) {
	probs := []float64{0.1, 0.4, 0.35, 0.8}
	truth := []int{0, 0, 1, 1}

	precision, recall, thresholds := PrecisionRecallCurve(probs, truth)
	require.Len(t, thresholds, 4)
	assert.Equal(t, []float64{0.1, 0.35, 0.4, 0.8}, thresholds)

	// Lowest threshold predicts everything positive
	assert.InDelta(t, 0.5, precision[0], 1e-9)
	assert.InDelta(t, 1.0, recall[0], 1e-9)

	// Highest threshold keeps only the top score
	assert.InDelta(t, 1.0, precision[3], 1e-9)
	assert.InDelta(t, 0.5, recall[3], 1e-9)

	// Recall never increases as the threshold rises
	for i := 1; i < len(recall); i++ {
		assert.LessOrEqual(t, recall[i], recall[i-1]+1e-9)
	}
}

func TestPrecisionRecallCurve_Empty(t *testing.T) {
	precision, recall, thresholds := PrecisionRecallCurve(nil, nil)
	assert.Nil(t, precision)
	assert.Nil(t, recall)
	assert.Nil(t, thresholds)
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)

	mean, std = meanStd(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}
