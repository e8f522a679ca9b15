package chunker

import (
	"strings"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
)

// LineChunker treats every non-blank input line as one document.
type LineChunker struct{}

func NewLineChunker() *LineChunker { return &LineChunker{} }

// Chunk splits raw on newlines, trims each line and drops blank ones.
// Documents are numbered from 1 in input order.
func (c *LineChunker) Chunk(raw string) domain.Corpus {
	var corpus domain.Corpus
	for _, line := range strings.Split(raw, "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		corpus = append(corpus, domain.Document{Index: len(corpus) + 1, Text: text})
	}
	return corpus
}
