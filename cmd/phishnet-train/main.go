package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SibhiSS/PhishNet/internal/artifact"
	"github.com/SibhiSS/PhishNet/internal/logging"
	"github.com/SibhiSS/PhishNet/internal/train"
	"go.uber.org/zap"
)

var (
	datasetPath   = flag.String("dataset", "Dataset/social_synthetic_1000.csv", "Path to the labeled CSV dataset")
	positiveLabel = flag.String("positive-label", "attack", "Label value treated as the positive class")
	modelPath     = flag.String("model", "models/social_model.json", "Output path for the model artifact")
	thresholdPath = flag.String("threshold-file", "models/social_threshold.json", "Output path for the calibrated threshold")
	testFraction  = flag.Float64("test-fraction", 0.2, "Fraction of the dataset held out for evaluation")
	folds         = flag.Int("folds", 5, "Number of cross-validation folds")
	seed          = flag.Int64("seed", 42, "Random seed for splitting and shuffling")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog       = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	examples, err := train.LoadCSV(*datasetPath, *positiveLabel)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("Loaded dataset",
		zap.String("path", *datasetPath),
		zap.Int("examples", len(examples)))

	opts := train.DefaultOptions()
	opts.TestFraction = *testFraction
	opts.Folds = *folds
	opts.Seed = *seed
	opts.PositiveLabel = *positiveLabel

	pipeline := train.NewPipeline(opts, logger)
	result, err := pipeline.Run(examples)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	fmt.Printf("\n=== Training Summary ===\n")
	fmt.Printf("Duplicates removed: %d\n", result.DuplicatesRemoved)
	fmt.Printf("Train size: %d\n", result.TrainSize)
	fmt.Printf("Test size: %d\n", result.TestSize)
	for _, report := range result.Families {
		fmt.Printf("\n--- %s ---\n", report.Family)
		fmt.Printf("CV F1: %.4f (+/- %.4f)\n", report.CVMeanF1, report.CVStdF1)
		fmt.Printf("Test accuracy: %.4f\n", report.Test.Accuracy)
		fmt.Printf("Test F1 (positive class): %.4f\n", report.Test.F1Positive())
	}
	fmt.Printf("\nSelected family: %s\n", result.Winner)
	fmt.Printf("Calibrated threshold: %.6f\n", result.Threshold)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	store := artifact.NewStore([]string{*modelPath}, *thresholdPath, logger)
	if err := store.SavePair(result.Model, result.Threshold); err != nil {
		logger.Fatal("Failed to save artifacts", zap.Error(err))
	}

	fmt.Printf("\nModel saved to %s\n", *modelPath)
	fmt.Printf("Threshold saved to %s\n", *thresholdPath)
}
