package baseline

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Classifier is the swappable training boundary. Implementations
// consume dense feature rows with integer labels.
type Classifier interface {
	Fit(x [][]float64, y []int) error
	Predict(x [][]float64) ([]int, error)
}

// NearestCentroid classifies by cosine similarity to per-class mean
// vectors. It is the packaged baseline classifier.
type NearestCentroid struct {
	labels    []int
	centroids [][]float64
}

// Fit computes one l2-normalized centroid per class.
func (c *NearestCentroid) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("fit: empty training set")
	}
	if len(x) != len(y) {
		return fmt.Errorf("fit: %d rows for %d labels", len(x), len(y))
	}

	dim := len(x[0])
	sums := make(map[int][]float64)
	counts := make(map[int]int)
	for i, row := range x {
		if len(row) != dim {
			return fmt.Errorf("fit: row %d has %d features, want %d", i, len(row), dim)
		}
		sum, ok := sums[y[i]]
		if !ok {
			sum = make([]float64, dim)
			sums[y[i]] = sum
		}
		floats.Add(sum, row)
		counts[y[i]]++
	}

	c.labels = make([]int, 0, len(sums))
	for label := range sums {
		c.labels = append(c.labels, label)
	}
	sort.Ints(c.labels)

	c.centroids = make([][]float64, len(c.labels))
	for i, label := range c.labels {
		centroid := sums[label]
		floats.Scale(1/float64(counts[label]), centroid)
		if norm := floats.Norm(centroid, 2); norm > 0 {
			floats.Scale(1/norm, centroid)
		}
		c.centroids[i] = centroid
	}
	return nil
}

// Predict assigns each row the label of its most similar centroid.
// Ties resolve to the lowest label.
func (c *NearestCentroid) Predict(x [][]float64) ([]int, error) {
	if len(c.centroids) == 0 {
		return nil, fmt.Errorf("predict: classifier is not fitted")
	}

	out := make([]int, len(x))
	for i, row := range x {
		if len(row) != len(c.centroids[0]) {
			return nil, fmt.Errorf("predict: row %d has %d features, want %d", i, len(row), len(c.centroids[0]))
		}
		best := 0
		bestScore := floats.Dot(row, c.centroids[0])
		for j := 1; j < len(c.centroids); j++ {
			score := floats.Dot(row, c.centroids[j])
			if score > bestScore {
				best = j
				bestScore = score
			}
		}
		out[i] = c.labels[best]
	}
	return out, nil
}
