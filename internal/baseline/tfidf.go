// Package baseline vectorizes balanced selections and runs the
// cross-validated authorship baseline. The vectorizer and classifier
// are swappable boundaries consuming (text, label) pairs.
package baseline

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer turns documents into dense feature rows.
type Vectorizer interface {
	FitTransform(docs []string) [][]float64
	Transform(docs []string) [][]float64
}

// TFIDF is a term-frequency / inverse-document-frequency vectorizer
// over whitespace-separated tokens, with smoothed idf and l2 row
// normalization. MaxFeatures caps the vocabulary to the terms with the
// highest corpus frequency; zero keeps every term.
type TFIDF struct {
	MaxFeatures int

	vocab map[string]int
	idf   []float64
}

// NewTFIDF returns a vectorizer with the given vocabulary cap.
func NewTFIDF(maxFeatures int) *TFIDF {
	return &TFIDF{MaxFeatures: maxFeatures}
}

// NumFeatures returns the fitted vocabulary size.
func (v *TFIDF) NumFeatures() int {
	return len(v.vocab)
}

// FitTransform learns the vocabulary and idf weights from docs and
// returns their feature rows.
func (v *TFIDF) FitTransform(docs []string) [][]float64 {
	df := make(map[string]int)
	corpusCount := make(map[string]int)
	for _, doc := range docs {
		counts := termCounts(doc)
		for term, count := range counts {
			df[term]++
			corpusCount[term] += count
		}
	}

	terms := selectTerms(corpusCount, v.MaxFeatures)

	v.vocab = make(map[string]int, len(terms))
	for i, term := range terms {
		v.vocab[term] = i
	}
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return v.Transform(docs)
}

// Transform maps docs onto the fitted vocabulary. Unknown terms are
// ignored.
func (v *TFIDF) Transform(docs []string) [][]float64 {
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.vocab))
		for term, count := range termCounts(doc) {
			j, ok := v.vocab[term]
			if !ok {
				continue
			}
			row[j] = float64(count) * v.idf[j]
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		rows[i] = row
	}
	return rows
}

func termCounts(doc string) map[string]int {
	counts := make(map[string]int)
	for _, term := range strings.Fields(doc) {
		counts[term]++
	}
	return counts
}

// selectTerms orders the vocabulary lexicographically, capping it to
// the max highest-frequency terms first when a cap is set.
func selectTerms(corpusCount map[string]int, max int) []string {
	terms := make([]string, 0, len(corpusCount))
	for term := range corpusCount {
		terms = append(terms, term)
	}

	if max > 0 && len(terms) > max {
		sort.Slice(terms, func(i, j int) bool {
			if corpusCount[terms[i]] != corpusCount[terms[j]] {
				return corpusCount[terms[i]] > corpusCount[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:max]
	}

	sort.Strings(terms)
	return terms
}
