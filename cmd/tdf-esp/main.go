package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/itscharlieeee/tdf-esp/internal/chunker"
	"github.com/itscharlieeee/tdf-esp/internal/config"
	"github.com/itscharlieeee/tdf-esp/internal/domain"
	"github.com/itscharlieeee/tdf-esp/internal/embedding/tfidf"
	"github.com/itscharlieeee/tdf-esp/internal/normalizer"
	"github.com/itscharlieeee/tdf-esp/internal/report"
	"github.com/itscharlieeee/tdf-esp/internal/service"
	"github.com/itscharlieeee/tdf-esp/internal/tui"
)

func main() {
	var (
		cfgPath  string
		docsPath string
		question string
		printOut bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/tdf-esp/config.yaml if not provided)")
	flag.StringVar(&docsPath, "docs", "", "Text file with one document per line (defaults to the demo documents)")
	flag.StringVar(&question, "question", "", "Question to answer (defaults to the demo question)")
	flag.BoolVar(&printOut, "print", false, "Run one analysis, print the report and exit")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log, printOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	documents := cfg.Demo.Documents
	if docsPath != "" {
		data, err := os.ReadFile(docsPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to read documents")
		}
		documents = strings.Split(string(data), "\n")
	}
	if question == "" {
		question = cfg.Demo.Question
	}

	// Assemble components
	norm := normalizer.NewSpanish(cfg.Retrieval.MinTokenRunes)
	svc := service.NewRetrievalService(
		chunker.NewLineChunker(),
		tfidf.NewVectorizer(norm),
		cfg.Retrieval.ConfidenceThreshold,
		cfg.Retrieval.TopK,
		logger.WithField("component", "retrieval"),
	)

	if printOut {
		res, err := svc.Analyze(domain.Request{Documents: strings.Join(documents, "\n"), Query: question})
		if errors.Is(err, domain.ErrEmptyCorpus) || errors.Is(err, domain.ErrEmptyQuery) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if err != nil {
			logger.WithError(err).Fatal("analysis failed")
		}
		fmt.Print(report.Render(res, cfg.Display.Precision))
		return
	}

	m := tui.New(svc, tui.Options{
		Title:         cfg.Demo.Title,
		Documents:     documents,
		Question:      question,
		Suggestions:   cfg.Demo.Suggestions,
		Precision:     cfg.Display.Precision,
		MatrixColumns: cfg.Display.MatrixColumns,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.WithError(err).Fatal("tui failed")
	}
}

// newLogger writes to the configured file, else to stderr in print mode.
// The TUI owns the terminal, so without a file its logs are discarded.
func newLogger(cfg config.LogConfig, printMode bool) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	logger.SetLevel(level)

	closeFn := func() {}
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(f)
		closeFn = func() { _ = f.Close() }
	case printMode:
		logger.SetOutput(os.Stderr)
	default:
		logger.SetOutput(io.Discard)
	}
	return logger, closeFn, nil
}
