package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
	"github.com/itscharlieeee/tdf-esp/internal/service"
)

func sampleResult(conf domain.Confidence, score float64) *service.Result {
	docs := domain.Corpus{
		{Index: 1, Text: "gato perro"},
		{Index: 2, Text: "casa grande"},
	}
	return &service.Result{
		Query:        "¿gato?",
		Corpus:       docs,
		Terms:        []string{"cas", "gat"},
		Matrix:       [][]float64{{0, 0.70710678}, {0.57735, 0}},
		Similarities: []float64{score, 0},
		Ranking: []domain.SearchResult{
			{Document: docs[0], Score: score},
			{Document: docs[1], Score: 0},
		},
		Answer: domain.Answer{Index: 0, Document: docs[0], Score: score, Confidence: conf},
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.123", FormatScore(0.12345, 3))
	assert.Equal(t, "0.001", FormatScore(0.0005, 3))
	assert.Equal(t, "1.000", FormatScore(1, 3))
	assert.Equal(t, "0", FormatScore(0.2, 0))
}

func TestMatrixRows(t *testing.T) {
	headers, rows := MatrixRows(sampleResult(domain.ConfidenceHigh, 0.5), 3)
	assert.Equal(t, []string{"", "cas", "gat"}, headers)
	assert.Equal(t, [][]string{
		{"Doc 1", "0.000", "0.707"},
		{"Doc 2", "0.577", "0.000"},
	}, rows)
}

func TestMatrixDoesNotMutateResult(t *testing.T) {
	res := sampleResult(domain.ConfidenceHigh, 0.5)
	out := Matrix(res, 3)
	assert.Contains(t, out, "Doc 2")
	assert.Contains(t, out, "gat")
	assert.Contains(t, out, "0.707")
	assert.Equal(t, 0.70710678, res.Matrix[0][1])
}

func TestAnswer(t *testing.T) {
	high := Answer(sampleResult(domain.ConfidenceHigh, 0.70711), 3)
	assert.Equal(t, "Question: ¿gato?\nAnswer: gato perro\nSimilarity: 0.707 (high confidence)", high)

	low := Answer(sampleResult(domain.ConfidenceLow, 0.004), 3)
	assert.Contains(t, low, "Answer (low confidence): gato perro")
	assert.Contains(t, low, "Similarity: 0.004 (low confidence)")
}

func TestRankingAndRender(t *testing.T) {
	res := sampleResult(domain.ConfidenceHigh, 0.5)
	assert.Equal(t, "1. Doc 1  0.500  gato perro\n2. Doc 2  0.000  casa grande", Ranking(res, 3))

	out := Render(res, 3)
	assert.True(t, strings.HasPrefix(out, "TF-IDF matrix\n"))
	assert.Contains(t, out, "Answer: gato perro")
	assert.True(t, strings.HasSuffix(out, "casa grande\n"))
}
