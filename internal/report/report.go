// Package report renders analysis results as text. Rounding happens here
// only; results keep full precision.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/itscharlieeee/tdf-esp/internal/domain"
	"github.com/itscharlieeee/tdf-esp/internal/service"
)

// DefaultPrecision is the number of decimals shown for weights and scores.
const DefaultPrecision = 3

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// FormatScore rounds v to precision decimals.
func FormatScore(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// RowLabel names the document at 0-based row i.
func RowLabel(i int) string { return "Doc " + strconv.Itoa(i+1) }

// MatrixRows returns the header (empty corner cell, then stems) and one
// formatted row per document.
func MatrixRows(res *service.Result, precision int) ([]string, [][]string) {
	headers := make([]string, 0, len(res.Terms)+1)
	headers = append(headers, "")
	headers = append(headers, res.Terms...)
	rows := make([][]string, len(res.Matrix))
	for i, weights := range res.Matrix {
		row := make([]string, 0, len(weights)+1)
		row = append(row, RowLabel(i))
		for _, w := range weights {
			row = append(row, FormatScore(w, precision))
		}
		rows[i] = row
	}
	return headers, rows
}

// Matrix renders the TF-IDF matrix as a bordered table.
func Matrix(res *service.Result, precision int) string {
	headers, rows := MatrixRows(res, precision)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	return t.String()
}

// Answer describes the winning document and its confidence.
func Answer(res *service.Result, precision int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", res.Query)
	if res.Answer.Confidence == domain.ConfidenceHigh {
		fmt.Fprintf(&b, "Answer: %s\n", res.Answer.Document.Text)
	} else {
		fmt.Fprintf(&b, "Answer (low confidence): %s\n", res.Answer.Document.Text)
	}
	fmt.Fprintf(&b, "Similarity: %s (%s confidence)", FormatScore(res.Answer.Score, precision), res.Answer.Confidence)
	return b.String()
}

// Ranking lists documents by descending similarity.
func Ranking(res *service.Result, precision int) string {
	var b strings.Builder
	for i, r := range res.Ranking {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s  %s  %s", i+1, RowLabel(r.Document.Index-1), FormatScore(r.Score, precision), r.Document.Text)
	}
	return b.String()
}

// Render joins matrix, answer and ranking into one report.
func Render(res *service.Result, precision int) string {
	return strings.Join([]string{
		"TF-IDF matrix",
		Matrix(res, precision),
		"",
		Answer(res, precision),
		"",
		"Ranking",
		Ranking(res, precision),
	}, "\n") + "\n"
}
