package baseline

import (
	"fmt"
	"math/rand"
	"sort"
)

// StratifiedKFold partitions example indices into k folds such that
// each fold's label distribution approximates the global one: every
// class's examples are spread across folds with per-fold counts
// differing by at most one. Fold membership is a partition — no index
// is omitted or duplicated. The optional rng shuffles each class's
// example order before assignment; nil keeps input order.
func StratifiedKFold(labels []int, k int, rng *rand.Rand) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("stratified k-fold: k must be >= 2, got %d", k)
	}
	if k > len(labels) {
		return nil, fmt.Errorf("stratified k-fold: k=%d exceeds %d examples", k, len(labels))
	}

	byLabel := make(map[int][]int)
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}
	classes := make([]int, 0, len(byLabel))
	for label := range byLabel {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	folds := make([][]int, k)
	// The cursor carries across classes so small classes do not all
	// land in the first folds.
	cursor := 0
	for _, label := range classes {
		indices := byLabel[label]
		if rng != nil {
			rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		for _, idx := range indices {
			folds[cursor%k] = append(folds[cursor%k], idx)
			cursor++
		}
	}

	for _, fold := range folds {
		sort.Ints(fold)
	}
	return folds, nil
}

// TrainTest splits indices for one cross-validation round: the given
// fold is the test set, every other fold is training.
func TrainTest(folds [][]int, fold int) (train []int, test []int) {
	for i, indices := range folds {
		if i == fold {
			test = append(test, indices...)
			continue
		}
		train = append(train, indices...)
	}
	sort.Ints(train)
	return train, test
}
