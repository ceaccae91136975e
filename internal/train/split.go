package train

import (
	"math/rand"
)

// Example is one labeled training row
type Example struct {
	Text  string
	Label int
}

// Deduplicate drops rows whose exact (text, label) pair was already seen and
// reports how many were removed. Order of first occurrences is preserved.
func Deduplicate(examples []Example) ([]Example, int) {
	seen := make(map[Example]struct{}, len(examples))
	kept := make([]Example, 0, len(examples))
	for _, ex := range examples {
		if _, dup := seen[ex]; dup {
			continue
		}
		seen[ex] = struct{}{}
		kept = append(kept, ex)
	}
	return kept, len(examples) - len(kept)
}

// stratifiedSplit shuffles each class independently and carves off testFrac
// of every class, so the test partition keeps the class balance.
func stratifiedSplit(examples []Example, testFrac float64, seed int64) (train, test []Example) {
	rng := rand.New(rand.NewSource(seed))

	byClass := [2][]int{}
	for i, ex := range examples {
		byClass[ex.Label] = append(byClass[ex.Label], i)
	}

	testIdx := make(map[int]struct{})
	for _, idxs := range byClass {
		shuffled := append([]int(nil), idxs...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		n := int(float64(len(shuffled))*testFrac + 0.5)
		for _, idx := range shuffled[:n] {
			testIdx[idx] = struct{}{}
		}
	}

	for i, ex := range examples {
		if _, isTest := testIdx[i]; isTest {
			test = append(test, ex)
		} else {
			train = append(train, ex)
		}
	}
	return train, test
}

// overlapTexts returns the texts present in both partitions
func overlapTexts(train, test []Example) map[string]struct{} {
	inTrain := make(map[string]struct{}, len(train))
	for _, ex := range train {
		inTrain[ex.Text] = struct{}{}
	}
	overlap := make(map[string]struct{})
	for _, ex := range test {
		if _, ok := inTrain[ex.Text]; ok {
			overlap[ex.Text] = struct{}{}
		}
	}
	return overlap
}

// SplitNoOverlap produces a stratified train/test split with no text value
// in both partitions. It retries up to maxTries randomized splits; if every
// attempt overlaps (heavily templated data), it keeps the first split and
// forcibly removes the overlapping rows from the test partition, reporting
// how many were dropped.
func SplitNoOverlap(examples []Example, testFrac float64, maxTries int, seed int64) (train, test []Example, removed int) {
	for try := 0; try < maxTries; try++ {
		train, test = stratifiedSplit(examples, testFrac, seed+int64(try))
		if len(overlapTexts(train, test)) == 0 {
			return train, test, 0
		}
	}

	// Fallback: strip overlapping rows from the test partition
	train, test = stratifiedSplit(examples, testFrac, seed)
	overlap := overlapTexts(train, test)
	kept := test[:0]
	for _, ex := range test {
		if _, dup := overlap[ex.Text]; dup {
			removed++
			continue
		}
		kept = append(kept, ex)
	}
	return train, kept, removed
}

// stratifiedFolds assigns examples to k folds, keeping the class balance per
// fold. Returns the example indices of each fold.
func stratifiedFolds(examples []Example, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))

	folds := make([][]int, k)
	for label := 0; label < 2; label++ {
		var idxs []int
		for i, ex := range examples {
			if ex.Label == label {
				idxs = append(idxs, i)
			}
		}
		rng.Shuffle(len(idxs), func(i, j int) {
			idxs[i], idxs[j] = idxs[j], idxs[i]
		})
		for i, idx := range idxs {
			folds[i%k] = append(folds[i%k], idx)
		}
	}
	return folds
}
