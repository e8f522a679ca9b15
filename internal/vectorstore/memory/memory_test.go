package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
)

func corpus(texts ...string) domain.Corpus {
	c := make(domain.Corpus, len(texts))
	for i, t := range texts {
		c[i] = domain.Document{Index: i + 1, Text: t}
	}
	return c
}

func TestUpsertValidatesShape(t *testing.T) {
	idx := NewIndex(2)
	assert.Error(t, idx.Upsert(corpus("a"), nil))
	assert.Error(t, idx.Upsert(corpus("a"), [][]float64{{1, 0, 0}}))
	require.NoError(t, idx.Upsert(corpus("a"), [][]float64{{1, 0}}))
	assert.Equal(t, 1, idx.Len())
}

func TestSimilarities(t *testing.T) {
	idx := NewIndex(2)
	require.NoError(t, idx.Upsert(corpus("a", "b", "c"), [][]float64{{1, 0}, {0, 1}, {0, 0}}))

	sims := idx.Similarities([]float64{3, 4})
	require.Len(t, sims, 3)
	assert.InDelta(t, 0.6, sims[0], 1e-12)
	assert.InDelta(t, 0.8, sims[1], 1e-12)
	assert.Zero(t, sims[2])

	assert.Equal(t, []float64{0, 0, 0}, idx.Similarities([]float64{0, 0}))
}

func TestSearchKeepsDocumentOrderOnTies(t *testing.T) {
	idx := NewIndex(2)
	require.NoError(t, idx.Upsert(corpus("a", "b", "c", "d"), [][]float64{{0, 1}, {1, 0}, {0, 1}, {1, 0}}))

	res := idx.Search([]float64{1, 0}, 0)
	require.Len(t, res, 4)
	got := []int{res[0].Document.Index, res[1].Document.Index, res[2].Document.Index, res[3].Document.Index}
	assert.Equal(t, []int{2, 4, 1, 3}, got)

	res = idx.Search([]float64{1, 0}, 1)
	require.Len(t, res, 1)
	assert.Equal(t, "b", res[0].Document.Text)
}
