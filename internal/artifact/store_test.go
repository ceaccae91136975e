package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/textclass"
)

func fittedPipeline(t *testing.T) *textclass.Pipeline {
	t.Helper()
	p := textclass.NewPipeline(textclass.FamilyLogisticRegression)
	p.Fit(
		[]string{
			"urgent verify password", "urgent verify account",
			"meeting notes attached", "meeting agenda attached",
		},
		[]int{1, 1, 0, 0},
	)
	return p
}

func TestStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	thresholdPath := filepath.Join(dir, "threshold.json")

	store := NewStore([]string{modelPath}, thresholdPath, zap.NewNop())
	require.NoError(t, store.SavePair(fittedPipeline(t), 0.62))

	model := store.LoadModel()
	require.NotNil(t, model)
	assert.Equal(t, textclass.FamilyLogisticRegression, model.Family)

	threshold, ok := store.LoadThreshold()
	assert.True(t, ok)
	assert.Equal(t, 0.62, threshold)
}

func TestStore_LoadModel_Missing(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(
		[]string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")},
		filepath.Join(dir, "threshold.json"),
		zap.NewNop(),
	)

	assert.Nil(t, store.LoadModel())
}

func TestStore_LoadModel_ProbesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	// Only the second candidate exists
	data, err := fittedPipeline(t).Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(second, data, 0644))

	store := NewStore([]string{first, second}, "", zap.NewNop())
	require.NotNil(t, store.LoadModel())
}

func TestStore_LoadModel_CorruptFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage not json"), 0644))

	// A corrupt artifact is skipped, leaving scoring rules-only
	store := NewStore([]string{path}, "", zap.NewNop())
	assert.Nil(t, store.LoadModel())
}

func TestStore_LoadModel_CorruptSkippedForNextCandidate(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.json")
	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("garbage not json"), 0644))

	data, err := fittedPipeline(t).Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(valid, data, 0644))

	store := NewStore([]string{corrupt, valid}, "", zap.NewNop())
	model := store.LoadModel()
	require.NotNil(t, model)
	assert.Equal(t, textclass.FamilyLogisticRegression, model.Family)
}

func TestStore_LoadThreshold_Missing(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(nil, filepath.Join(dir, "threshold.json"), zap.NewNop())

	threshold, ok := store.LoadThreshold()
	assert.False(t, ok)
	assert.Equal(t, DefaultThreshold, threshold)
}

func TestStore_LoadThreshold_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "threshold.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	store := NewStore(nil, path, zap.NewNop())
	threshold, ok := store.LoadThreshold()
	assert.False(t, ok)
	assert.Equal(t, DefaultThreshold, threshold)
}

func TestStore_SavePair_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "nested", "models", "model.json")
	thresholdPath := filepath.Join(dir, "nested", "models", "threshold.json")

	store := NewStore([]string{modelPath}, thresholdPath, zap.NewNop())
	require.NoError(t, store.SavePair(fittedPipeline(t), 0.5))

	_, err := os.Stat(modelPath)
	assert.NoError(t, err)
	_, err = os.Stat(thresholdPath)
	assert.NoError(t, err)
}

func TestStore_SavePair_NoPath(t *testing.T) {
	store := NewStore(nil, "", zap.NewNop())
	assert.Error(t, store.SavePair(fittedPipeline(t), 0.5))
}
