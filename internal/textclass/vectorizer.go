// Package textclass implements the statistical text classifier behind the
// spam and social-engineering models: a TF-IDF vectorizer feeding either a
// logistic regression or a multinomial naive Bayes, trained offline and
// persisted as a JSON artifact.
package textclass

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9_]{2,}`)

// SparseVector is a sparse feature vector keyed by vocabulary index
type SparseVector map[int]float64

// Vectorizer converts text into L2-normalized TF-IDF vectors over word
// 1..2-grams. Terms seen in fewer than MinDF fitting documents are dropped.
type Vectorizer struct {
	NgramMax   int            `json:"ngram_max"`
	MinDF      int            `json:"min_df"`
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// NewVectorizer creates an unfitted vectorizer with the default settings
// (unigrams and bigrams, minimum document frequency 2)
func NewVectorizer() *Vectorizer {
	return &Vectorizer{NgramMax: 2, MinDF: 2}
}

// terms returns the n-gram terms of a document, with repeats
func (v *Vectorizer) terms(text string) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, len(tokens)*v.NgramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= v.NgramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit builds the vocabulary and IDF table from the training documents
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	kept := make([]string, 0, len(df))
	for term, n := range df {
		if n >= v.MinDF {
			kept = append(kept, term)
		}
	}
	// Deterministic vocabulary indices
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	total := float64(len(docs))
	for i, term := range kept {
		v.Vocabulary[term] = i
		// Smoothed IDF so unseen-in-fold terms never divide by zero
		v.IDF[i] = math.Log((1+total)/(1+float64(df[term]))) + 1
	}
}

// Transform converts one document into an L2-normalized TF-IDF vector.
// Terms outside the fitted vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) SparseVector {
	vec := make(SparseVector)
	for _, term := range v.terms(doc) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}
	norm := 0.0
	for idx := range vec {
		vec[idx] *= v.IDF[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// TransformAll converts a document slice
func (v *Vectorizer) TransformAll(docs []string) []SparseVector {
	vecs := make([]SparseVector, len(docs))
	for i, doc := range docs {
		vecs[i] = v.Transform(doc)
	}
	return vecs
}

// Size returns the vocabulary size
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}
