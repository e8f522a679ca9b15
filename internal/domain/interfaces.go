package domain

import "errors"

var (
	// ErrEmptyCorpus is returned when no usable document lines remain.
	ErrEmptyCorpus = errors.New("enter at least one document")
	// ErrEmptyQuery is returned for a blank question.
	ErrEmptyQuery = errors.New("write a question")
)

// Document is a single line of user input, identified by its 1-based position.
type Document struct {
	Index int
	Text  string
}

// Corpus is the ordered set of documents of one analysis request.
type Corpus []Document

// Texts returns the document texts in corpus order.
func (c Corpus) Texts() []string {
	out := make([]string, len(c))
	for i, d := range c {
		out[i] = d.Text
	}
	return out
}

// Request is what the UI hands to the core for one analysis.
type Request struct {
	Documents string
	Query     string
}

// Confidence labels how much the best score can be trusted.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceHigh
)

func (c Confidence) String() string {
	if c == ConfidenceHigh {
		return "high"
	}
	return "low"
}

// SearchResult represents a matching document with a relevance score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Answer is the best scoring document of a request.
type Answer struct {
	// Index is the 0-based row of the document in the corpus.
	Index      int
	Document   Document
	Score      float64
	Confidence Confidence
}

// Normalizer turns free text into an ordered sequence of stems.
type Normalizer interface {
	Normalize(text string) []string
}

// Chunker splits raw user input into corpus documents.
type Chunker interface {
	Chunk(raw string) Corpus
}
