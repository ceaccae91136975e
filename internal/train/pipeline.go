package train

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/SibhiSS/PhishNet/internal/textclass"
)

const minTestWarnSize = 20

// Options controls the training pipeline
type Options struct {
	TestFraction  float64
	MaxSplitTries int
	Folds         int
	Seed          int64
	PositiveLabel string
}

// DefaultOptions returns the standard pipeline settings
func DefaultOptions() Options {
	return Options{
		TestFraction:  0.2,
		MaxSplitTries: 20,
		Folds:         5,
		Seed:          42,
		PositiveLabel: "attack",
	}
}

// FamilyReport holds the cross-validation and held-out results of one
// candidate model family
type FamilyReport struct {
	Family   textclass.Family
	CVMeanF1 float64
	CVStdF1  float64
	Test     Evaluation
}

// Result is the outcome of a full training run
type Result struct {
	DuplicatesRemoved int
	TrainSize         int
	TestSize          int
	Families          []FamilyReport
	Winner            textclass.Family
	Model             *textclass.Pipeline
	Threshold         float64
	Warnings          []string
}

// Pipeline trains, selects and calibrates an attack classifier
type Pipeline struct {
	opts   Options
	logger *zap.Logger
}

func NewPipeline(opts Options, logger *zap.Logger) *Pipeline {
	return &Pipeline{opts: opts, logger: logger}
}

// Run executes the full training flow: deduplicate, split with no text
// overlap, cross-validate both model families on the training partition,
// refit the winner on all training data and calibrate its decision
// threshold on the held-out partition.
func (p *Pipeline) Run(examples []Example) (*Result, error) {
	result := &Result{}

	examples, result.DuplicatesRemoved = Deduplicate(examples)
	if result.DuplicatesRemoved > 0 {
		p.logger.Info("removed duplicate examples",
			zap.Int("removed", result.DuplicatesRemoved),
			zap.Int("remaining", len(examples)))
	}

	pos, neg := 0, 0
	for _, ex := range examples {
		if ex.Label == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return nil, fmt.Errorf("dataset needs both classes, got %d positive and %d negative", pos, neg)
	}

	train, test, forced := SplitNoOverlap(examples, p.opts.TestFraction, p.opts.MaxSplitTries, p.opts.Seed)
	if forced > 0 {
		warn := fmt.Sprintf("no overlap-free split found in %d tries, dropped %d overlapping test rows", p.opts.MaxSplitTries, forced)
		result.Warnings = append(result.Warnings, warn)
		p.logger.Warn(warn)
	}
	result.TrainSize = len(train)
	result.TestSize = len(test)
	if len(test) < minTestWarnSize {
		warn := fmt.Sprintf("test partition has only %d examples, metrics will be noisy", len(test))
		result.Warnings = append(result.Warnings, warn)
		p.logger.Warn(warn)
	}
	if len(test) == 0 {
		return nil, fmt.Errorf("test partition is empty")
	}

	families := []textclass.Family{
		textclass.FamilyLogisticRegression,
		textclass.FamilyMultinomialNB,
	}
	for _, family := range families {
		report, err := p.evaluateFamily(family, train, test)
		if err != nil {
			return nil, err
		}
		result.Families = append(result.Families, report)
		p.logger.Info("evaluated model family",
			zap.String("family", string(family)),
			zap.Float64("cv_mean_f1", report.CVMeanF1),
			zap.Float64("cv_std_f1", report.CVStdF1),
			zap.Float64("test_f1", report.Test.F1Positive()))
	}

	// Winner by held-out F1, logistic regression keeps ties
	winner := result.Families[0]
	for _, report := range result.Families[1:] {
		if report.Test.F1Positive() > winner.Test.F1Positive() {
			winner = report
		}
	}
	result.Winner = winner.Family

	model := textclass.NewPipeline(winner.Family)
	texts, labels := partition(train)
	model.Fit(texts, labels)
	result.Model = model

	if winner.Test.Accuracy >= 1.0 {
		warn := "perfect held-out accuracy, dataset may be too easy or leaking"
		result.Warnings = append(result.Warnings, warn)
		p.logger.Warn(warn)
	}

	testTexts, testLabels := partition(test)
	probs := make([]float64, len(testTexts))
	for i, text := range testTexts {
		prob, err := model.PredictProbability(text)
		if err != nil {
			return nil, fmt.Errorf("failed to score test example: %w", err)
		}
		probs[i] = prob
	}
	result.Threshold = SelectThreshold(probs, testLabels)

	p.logger.Info("training complete",
		zap.String("winner", string(result.Winner)),
		zap.Float64("threshold", result.Threshold),
		zap.Int("train_size", result.TrainSize),
		zap.Int("test_size", result.TestSize))

	return result, nil
}

// evaluateFamily cross-validates a family on the training partition and
// measures a refit on the held-out partition.
func (p *Pipeline) evaluateFamily(family textclass.Family, train, test []Example) (FamilyReport, error) {
	folds := stratifiedFolds(train, p.opts.Folds, p.opts.Seed)

	var scores []float64
	for f := range folds {
		var foldTrain, foldVal []Example
		inVal := make(map[int]struct{}, len(folds[f]))
		for _, idx := range folds[f] {
			inVal[idx] = struct{}{}
		}
		for i, ex := range train {
			if _, ok := inVal[i]; ok {
				foldVal = append(foldVal, ex)
			} else {
				foldTrain = append(foldTrain, ex)
			}
		}
		if len(foldVal) == 0 || len(foldTrain) == 0 {
			continue
		}

		model := textclass.NewPipeline(family)
		texts, labels := partition(foldTrain)
		model.Fit(texts, labels)

		valTexts, valLabels := partition(foldVal)
		preds := make([]int, len(valTexts))
		for i, text := range valTexts {
			pred, err := model.Predict(text)
			if err != nil {
				return FamilyReport{}, fmt.Errorf("failed to score %s fold: %w", family, err)
			}
			preds[i] = pred
		}
		scores = append(scores, F1Score(preds, valLabels))
	}

	mean, std := meanStd(scores)

	model := textclass.NewPipeline(family)
	texts, labels := partition(train)
	model.Fit(texts, labels)
	testTexts, testLabels := partition(test)
	preds := make([]int, len(testTexts))
	for i, text := range testTexts {
		pred, err := model.Predict(text)
		if err != nil {
			return FamilyReport{}, fmt.Errorf("failed to score %s: %w", family, err)
		}
		preds[i] = pred
	}

	return FamilyReport{
		Family:   family,
		CVMeanF1: mean,
		CVStdF1:  std,
		Test:     Evaluate(preds, testLabels),
	}, nil
}

func partition(examples []Example) ([]string, []int) {
	texts := make([]string, len(examples))
	labels := make([]int, len(examples))
	for i, ex := range examples {
		texts[i] = ex.Text
		labels[i] = ex.Label
	}
	return texts, labels
}
