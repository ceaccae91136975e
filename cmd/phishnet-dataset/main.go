package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SibhiSS/PhishNet/internal/synth"
)

var (
	outPath     = flag.String("out", "Dataset/social_synthetic_1000.csv", "Output CSV path")
	total       = flag.Int("total", 1000, "Number of rows to generate")
	attackRatio = flag.Float64("attack-ratio", 0.61, "Fraction of rows labeled Attack")
	seed        = flag.Int64("seed", 42, "Random seed")
)

func main() {
	flag.Parse()

	opts := synth.Options{
		Total:       *total,
		AttackRatio: *attackRatio,
		Seed:        *seed,
	}

	generator := synth.NewGenerator(opts)
	rows := generator.Generate()

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		fmt.Printf("Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Printf("Failed to create output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := generator.WriteCSV(f, rows); err != nil {
		fmt.Printf("Failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d rows -> %s\n", len(rows), *outPath)
}
