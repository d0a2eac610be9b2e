package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logging"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"go.uber.org/zap"
)

// app holds what a command needs after configuration has been resolved.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	taxonomy *taxonomy.Taxonomy
	printer  *observability.Printer

	closers []func() error
}

// newApp loads configuration, builds the logger and loads the taxonomy.
func newApp() (*app, error) {
	cfg, err := config.Load(settings, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if outputFormat != formatText && outputFormat != formatJSON {
		return nil, fmt.Errorf("unsupported --format %q (want %s or %s)", outputFormat, formatText, formatJSON)
	}

	logger, err := logging.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		tax, err = taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load taxonomy: %w", err)
		}
		logger.Debug("taxonomy loaded", zap.String("path", cfg.TaxonomyPath), zap.Int("skills", len(tax.Canonical())))
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		taxonomy: tax,
		printer:  observability.NewPrinter(os.Stdout),
	}
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})
	return a, nil
}

// Close releases everything opened through the app, most recent first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// embedder returns the Gemini embedder wrapped in the on-disk cache.
func (a *app) embedder(ctx context.Context) (embedding.Embedder, error) {
	if a.cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable or gemini_api_key config is required")
	}
	gemini, err := embedding.NewGeminiEmbedder(ctx, a.cfg.GeminiAPIKey, a.cfg.EmbeddingModel, a.cfg.EmbeddingDimension)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	a.closers = append(a.closers, gemini.Close)

	cacheDir := filepath.Join(a.cfg.EmbeddingsDir, "cache")
	cached, err := embedding.NewCachedEmbedder(gemini, gemini.Model(), cacheDir, a.logger)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

// matcher opens the record store and builds a Matcher. The embedder is attached only when
// withEmbedder is set, so commands that never embed run without an API key.
func (a *app) matcher(ctx context.Context, withEmbedder bool, opts ...pipeline.Option) (*pipeline.Matcher, error) {
	st, err := store.Open(ctx, a.cfg.DataDir, a.cfg.DatabaseURL, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	a.closers = append(a.closers, st.Close)

	all := []pipeline.Option{
		pipeline.WithTaxonomy(a.taxonomy),
		pipeline.WithLogger(a.logger),
		pipeline.WithWeights(a.cfg.SemanticWeight, a.cfg.SkillWeight),
		pipeline.WithMaxSnippets(a.cfg.MaxSnippets),
	}
	if withEmbedder {
		emb, err := a.embedder(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, pipeline.WithEmbedder(emb))
	}
	return pipeline.New(st, append(all, opts...)...), nil
}

// jsonOutput reports whether results should be printed as JSON.
func jsonOutput() bool {
	return outputFormat == formatJSON
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// readInputText reads a .txt, .md or .html file as plain text.
func readInputText(path string) (string, error) {
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

// progressPrinter writes pipeline progress lines to stderr.
func progressPrinter(event pipeline.ProgressEvent) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
}
