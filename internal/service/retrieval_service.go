package service

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
	"github.com/itscharlieeee/tdf-esp/internal/embedding/tfidf"
	"github.com/itscharlieeee/tdf-esp/internal/vectorstore/memory"
)

// DefaultConfidenceThreshold separates high from low confidence answers.
const DefaultConfidenceThreshold = 0.01

// Result holds everything one analysis produced, at full precision.
type Result struct {
	Query        string
	Corpus       domain.Corpus
	Terms        []string
	Matrix       [][]float64
	Similarities []float64
	Ranking      []domain.SearchResult
	Answer       domain.Answer
}

// RetrievalService answers a question with the most similar document.
// Every call to Analyze fits a fresh model; nothing is kept between requests.
type RetrievalService struct {
	chunker    domain.Chunker
	vectorizer *tfidf.Vectorizer
	threshold  float64
	topK       int
	logger     *logrus.Entry
}

func NewRetrievalService(chunker domain.Chunker, vectorizer *tfidf.Vectorizer, threshold float64, topK int, logger *logrus.Entry) *RetrievalService {
	if logger == nil {
		logger = logrus.WithField("component", "retrieval")
	}
	return &RetrievalService{chunker: chunker, vectorizer: vectorizer, threshold: threshold, topK: topK, logger: logger}
}

// Analyze validates the request, fits the corpus, scores the query and ranks the documents.
func (s *RetrievalService) Analyze(req domain.Request) (*Result, error) {
	corpus := s.chunker.Chunk(req.Documents)
	if len(corpus) == 0 {
		s.logger.Warn("rejected request without documents")
		return nil, domain.ErrEmptyCorpus
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.logger.Warn("rejected request without question")
		return nil, domain.ErrEmptyQuery
	}

	model, err := s.vectorizer.Fit(corpus.Texts())
	if err != nil {
		return nil, fmt.Errorf("fit corpus: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"documents":  len(corpus),
		"vocabulary": model.Dimension(),
	}).Debug("fitted tf-idf model")

	index := memory.NewIndex(model.Dimension())
	if err := index.Upsert(corpus, model.Matrix); err != nil {
		return nil, fmt.Errorf("index corpus: %w", err)
	}
	vec, err := Score(query, model)
	if err != nil {
		return nil, err
	}
	sims := index.Similarities(vec)
	answer, err := Rank(sims, s.threshold)
	if err != nil {
		return nil, err
	}
	answer.Document = corpus[answer.Index]

	s.logger.WithFields(logrus.Fields{
		"document":   answer.Document.Index,
		"score":      answer.Score,
		"confidence": answer.Confidence.String(),
	}).Info("answered question")

	return &Result{
		Query:        query,
		Corpus:       corpus,
		Terms:        model.Terms,
		Matrix:       model.Matrix,
		Similarities: sims,
		Ranking:      index.Search(vec, s.topK),
		Answer:       answer,
	}, nil
}

// Score projects query into model's space.
func Score(query string, model *tfidf.Model) ([]float64, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	return model.Transform(query), nil
}

// Rank picks the first highest score. Answers scoring above threshold are
// high confidence; the rest are still returned with low confidence.
func Rank(sims []float64, threshold float64) (domain.Answer, error) {
	if len(sims) == 0 {
		return domain.Answer{}, domain.ErrEmptyCorpus
	}
	best := 0
	for i := 1; i < len(sims); i++ {
		if sims[i] > sims[best] {
			best = i
		}
	}
	answer := domain.Answer{Index: best, Score: sims[best], Confidence: domain.ConfidenceLow}
	if sims[best] > threshold {
		answer.Confidence = domain.ConfidenceHigh
	}
	return answer, nil
}
