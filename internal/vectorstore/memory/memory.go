package memory

import (
	"errors"
	"math"
	"sort"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
)

// Index is an in-memory brute-force cosine similarity index over one corpus.
type Index struct {
	dimension int
	vectors   [][]float64
	docs      domain.Corpus
}

func NewIndex(dimension int) *Index { return &Index{dimension: dimension} }

// Upsert appends documents with their vectors.
func (s *Index) Upsert(docs domain.Corpus, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return errors.New("documents and vectors length mismatch")
	}
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Len returns the number of indexed documents.
func (s *Index) Len() int { return len(s.vectors) }

// Similarities scores every document against vector, in document order.
func (s *Index) Similarities(vector []float64) []float64 {
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = cosine(s.vectors[i], vector)
	}
	return scores
}

// Search returns the topK documents by descending score. Equal scores keep
// document order. topK <= 0 returns every document.
func (s *Index) Search(vector []float64, topK int) []domain.SearchResult {
	scores := s.Similarities(vector)
	idxs := argsortDesc(scores)
	if topK <= 0 || topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.SearchResult{Document: s.docs[j], Score: scores[j]})
	}
	return results
}

// cosine is zero whenever either vector has zero norm.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim > 1 {
		sim = 1
	}
	return sim
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(i, j int) bool { return vals[idxs[i]] > vals[idxs[j]] })
	return idxs
}
