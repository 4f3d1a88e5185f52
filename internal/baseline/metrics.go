package baseline

import "sort"

// Accuracy returns the fraction of predictions matching the truth.
func Accuracy(predictions []int, truth []int) float64 {
	if len(truth) == 0 {
		return 0
	}
	correct := 0
	for i, p := range predictions {
		if p == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(truth))
}

type prCounts struct {
	truePos  int
	falsePos int
	falseNeg int
}

// FreqBucketedF1 computes the macro average of per-bucket F1 scores,
// where each prediction is bucketed by how many training examples
// share the true (and predicted) label's frequency. On a balanced
// selection every label has the same frequency, collapsing this to a
// single-bucket F1.
func FreqBucketedF1(trainLabels []int, predictions []int, truth []int) float64 {
	label2freq := make(map[int]int, len(trainLabels))
	for _, label := range trainLabels {
		label2freq[label]++
	}

	buckets := make(map[int]*prCounts)
	ensure := func(freq int) *prCounts {
		bucket, ok := buckets[freq]
		if !ok {
			bucket = &prCounts{}
			buckets[freq] = bucket
		}
		return bucket
	}

	for i, predicted := range predictions {
		actual := truth[i]
		trueFreq := label2freq[actual]
		falseFreq := label2freq[predicted]
		ensure(trueFreq)
		ensure(falseFreq)

		if predicted == actual {
			buckets[trueFreq].truePos++
			continue
		}
		buckets[trueFreq].falseNeg++
		buckets[falseFreq].falsePos++
	}

	freqs := make([]int, 0, len(buckets))
	for freq := range buckets {
		freqs = append(freqs, freq)
	}
	sort.Ints(freqs)

	sum := 0.0
	for _, freq := range freqs {
		sum += f1(buckets[freq])
	}
	if len(freqs) == 0 {
		return 0
	}
	return sum / float64(len(freqs))
}

func f1(c *prCounts) float64 {
	precision := ratio(c.truePos, c.truePos+c.falsePos)
	recall := ratio(c.truePos, c.truePos+c.falseNeg)
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

func ratio(num int, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
