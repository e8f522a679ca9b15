package tfidf

import (
	"math"
	"sort"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
)

// Vectorizer builds a TF-IDF space over a corpus.
// Tokenization is delegated to the injected normalizer.
type Vectorizer struct {
	normalizer domain.Normalizer
}

// NewVectorizer creates a vectorizer that tokenizes with n.
func NewVectorizer(n domain.Normalizer) *Vectorizer {
	return &Vectorizer{normalizer: n}
}

// Model is a fitted TF-IDF space. It is read-only after Fit.
type Model struct {
	normalizer domain.Normalizer
	vocabulary map[string]int
	// Terms holds the vocabulary in column order.
	Terms []string
	// IDF holds one weight per column.
	IDF []float64
	// Matrix holds one L2-normalized row per document.
	Matrix [][]float64
}

// Fit builds the vocabulary and IDF values from corpus and weights every document.
func (v *Vectorizer) Fit(corpus []string) (*Model, error) {
	if len(corpus) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	// Build vocabulary and document frequencies
	docs := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		docs[i] = v.normalizer.Normalize(text)
		seen := make(map[string]struct{})
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	m := &Model{
		normalizer: v.normalizer,
		vocabulary: make(map[string]int, len(terms)),
		Terms:      terms,
		IDF:        make([]float64, len(terms)),
	}
	N := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		// Smoothed IDF
		m.IDF[i] = math.Log((1+N)/(1+float64(df[term]))) + 1.0
	}
	m.Matrix = make([][]float64, len(docs))
	for i, tokens := range docs {
		m.Matrix[i] = m.weigh(tokens)
	}
	return m, nil
}

// Dimension returns the number of vocabulary columns.
func (m *Model) Dimension() int { return len(m.Terms) }

// Transform projects text into the fitted space. Stems outside the
// vocabulary are ignored.
func (m *Model) Transform(text string) []float64 {
	return m.weigh(m.normalizer.Normalize(text))
}

func (m *Model) weigh(tokens []string) []float64 {
	vec := make([]float64, len(m.Terms))
	tf := make(map[int]int)
	for _, tok := range tokens {
		if idx, ok := m.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) * m.IDF[idx]
	}
	// L2 normalize
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
