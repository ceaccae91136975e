package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/textclass"
)

// DefaultThreshold is the decision threshold used when no calibrated value
// has been persisted. Intentionally lower than the training fallback of 0.7
// so an uncalibrated deployment errs toward flagging.
const DefaultThreshold = 0.45

type thresholdRecord struct {
	Threshold float64 `json:"threshold"`
}

// Store loads and persists trained model artifacts. Model paths are ordered
// candidates: the first existing file wins.
type Store struct {
	modelPaths    []string
	thresholdPath string
	logger        *zap.Logger
}

func NewStore(modelPaths []string, thresholdPath string, logger *zap.Logger) *Store {
	return &Store{
		modelPaths:    modelPaths,
		thresholdPath: thresholdPath,
		logger:        logger,
	}
}

// LoadModel probes the candidate paths in order and loads the first model
// that decodes. An unreadable or corrupt candidate is skipped with a warning;
// no usable model returns nil and the caller falls back to rules-only
// scoring. Artifact problems are never fatal.
func (s *Store) LoadModel() *textclass.Pipeline {
	for _, path := range s.modelPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("failed to read model artifact, skipping",
					zap.String("path", path),
					zap.Error(err))
			}
			continue
		}

		model, err := textclass.Unmarshal(data)
		if err != nil {
			s.logger.Warn("failed to decode model artifact, skipping",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		s.logger.Info("loaded model artifact",
			zap.String("path", path),
			zap.String("family", string(model.Family)))
		return model
	}

	s.logger.Warn("no usable model artifact found, scoring will use rules only",
		zap.Strings("paths", s.modelPaths))
	return nil
}

// LoadThreshold reads the calibrated decision threshold. The second return
// reports whether a persisted value was found.
func (s *Store) LoadThreshold() (float64, bool) {
	data, err := os.ReadFile(s.thresholdPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read threshold file",
				zap.String("path", s.thresholdPath),
				zap.Error(err))
		}
		return DefaultThreshold, false
	}

	var record thresholdRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("failed to parse threshold file",
			zap.String("path", s.thresholdPath),
			zap.Error(err))
		return DefaultThreshold, false
	}
	return record.Threshold, true
}

// SavePair persists the model and its calibrated threshold. Both files are
// written to a temp path and renamed so a crash never leaves a torn artifact.
func (s *Store) SavePair(model *textclass.Pipeline, threshold float64) error {
	if len(s.modelPaths) == 0 {
		return fmt.Errorf("no model path configured")
	}

	modelData, err := model.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := writeAtomic(s.modelPaths[0], modelData); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}

	thresholdData, err := json.Marshal(thresholdRecord{Threshold: threshold})
	if err != nil {
		return fmt.Errorf("failed to encode threshold: %w", err)
	}
	if err := writeAtomic(s.thresholdPath, thresholdData); err != nil {
		return fmt.Errorf("failed to write threshold: %w", err)
	}

	s.logger.Info("saved model artifacts",
		zap.String("model_path", s.modelPaths[0]),
		zap.String("threshold_path", s.thresholdPath),
		zap.Float64("threshold", threshold))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
