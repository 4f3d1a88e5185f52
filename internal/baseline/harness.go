package baseline

import (
	"fmt"
	"math/rand"
	"strings"
)

// JoinTokens renders a token sequence as the single-space-joined text
// consumed by the vectorizer.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Config controls one cross-validation run.
type Config struct {
	// Folds is the number of stratified folds (default 9).
	Folds int
	// MaxFeatures caps the tf-idf vocabulary. Zero keeps every term.
	MaxFeatures int
}

const defaultFolds = 9

// FoldResult reports one cross-validation round.
type FoldResult struct {
	Fold      int     `json:"fold"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Accuracy  float64 `json:"accuracy"`
	F1        float64 `json:"f1"`
}

// Result reports a full cross-validation run.
type Result struct {
	Folds           []FoldResult `json:"folds"`
	AverageAccuracy float64      `json:"average_accuracy"`
	AverageF1       float64      `json:"average_f1"`
	NumFeatures     int          `json:"num_features"`
	NumExamples     int          `json:"num_examples"`
}

// CrossValidate vectorizes texts once, then trains and evaluates a
// fresh classifier per stratified fold. newClassifier may be nil, in
// which case the nearest-centroid baseline is used. Vectorizer and
// classifier failures propagate unmodified.
func CrossValidate(
	texts []string,
	labels []int,
	cfg Config,
	newClassifier func() Classifier,
	rng *rand.Rand,
) (Result, error) {
	if len(texts) != len(labels) {
		return Result{}, fmt.Errorf("cross-validate: %d texts for %d labels", len(texts), len(labels))
	}
	folds := cfg.Folds
	if folds == 0 {
		folds = defaultFolds
	}
	if newClassifier == nil {
		newClassifier = func() Classifier { return &NearestCentroid{} }
	}

	vectorizer := NewTFIDF(cfg.MaxFeatures)
	features := vectorizer.FitTransform(texts)

	foldIndices, err := StratifiedKFold(labels, folds, rng)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Folds:       make([]FoldResult, 0, folds),
		NumFeatures: vectorizer.NumFeatures(),
		NumExamples: len(texts),
	}
	accSum := 0.0
	f1Sum := 0.0

	for fold := range foldIndices {
		trainIdx, testIdx := TrainTest(foldIndices, fold)
		trainX, trainY := gather(features, labels, trainIdx)
		testX, testY := gather(features, labels, testIdx)

		clf := newClassifier()
		if err := clf.Fit(trainX, trainY); err != nil {
			return Result{}, err
		}
		predictions, err := clf.Predict(testX)
		if err != nil {
			return Result{}, err
		}

		acc := Accuracy(predictions, testY)
		f1 := FreqBucketedF1(trainY, predictions, testY)
		accSum += acc
		f1Sum += f1
		result.Folds = append(result.Folds, FoldResult{
			Fold:      fold,
			TrainSize: len(trainIdx),
			TestSize:  len(testIdx),
			Accuracy:  acc,
			F1:        f1,
		})
	}

	result.AverageAccuracy = accSum / float64(folds)
	result.AverageF1 = f1Sum / float64(folds)
	return result, nil
}

func gather(features [][]float64, labels []int, indices []int) ([][]float64, []int) {
	x := make([][]float64, len(indices))
	y := make([]int, len(indices))
	for i, idx := range indices {
		x[i] = features[idx]
		y[i] = labels[idx]
	}
	return x, y
}
