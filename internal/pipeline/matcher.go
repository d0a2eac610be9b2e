// Package pipeline orchestrates resume upload, job matching, comparison and analytics.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/taxonomy"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// Pipeline step names reported through ProgressEvent and StepError.
const (
	StepLoadResume = "load_resume"
	StepExtract    = "extract_resume"
	StepProcessJD  = "process_jd"
	StepEmbed      = "embed"
	StepScore      = "score"
	StepATS        = "ats"
	StepEvidence   = "evidence"
	StepValidate   = "validate_report"
	StepSave       = "save"
	StepCompareJob = "compare_job"
	StepAggregate  = "aggregate"
)

// compareWorkers bounds concurrent job descriptions in Compare.
const compareWorkers = 4

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Matcher runs the matching pipeline over a record store.
type Matcher struct {
	store    store.Store
	embedder embedding.Embedder
	taxonomy *taxonomy.Taxonomy
	logger   *zap.Logger

	semanticWeight float64
	skillWeight    float64
	maxSnippets    int

	onProgress ProgressCallback
	now        func() time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithEmbedder sets the embedding provider used by Analyze and Compare.
func WithEmbedder(e embedding.Embedder) Option {
	return func(m *Matcher) {
		m.embedder = e
	}
}

// WithTaxonomy replaces the built-in skill taxonomy.
func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(m *Matcher) {
		if t != nil {
			m.taxonomy = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithWeights sets the score fusion weights. They are normalized at scoring time.
func WithWeights(semantic, skill float64) Option {
	return func(m *Matcher) {
		m.semanticWeight = semantic
		m.skillWeight = skill
	}
}

// WithMaxSnippets sets how many context snippets are kept per extracted skill.
func WithMaxSnippets(n int) Option {
	return func(m *Matcher) {
		m.maxSnippets = n
	}
}

// WithProgress registers a callback for step progress.
func WithProgress(cb ProgressCallback) Option {
	return func(m *Matcher) {
		m.onProgress = cb
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		m.now = now
	}
}

// New creates a Matcher over st. Without WithEmbedder, only UploadResume, Analytics and
// record lookups are available.
func New(st store.Store, opts ...Option) *Matcher {
	m := &Matcher{
		store:          st,
		taxonomy:       taxonomy.Default(),
		logger:         zap.NewNop(),
		semanticWeight: scoring.DefaultSemanticWeight,
		skillWeight:    scoring.DefaultSkillWeight,
		maxSnippets:    2,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// emitProgress calls the progress callback if configured
func (m *Matcher) emitProgress(step, message string, content any) {
	m.logger.Debug(message, zap.String("pipeline_step", step))
	if m.onProgress != nil {
		m.onProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// Resume returns a stored resume record.
func (m *Matcher) Resume(ctx context.Context, resumeID string) (*types.ResumeRecord, error) {
	return m.store.LoadResume(ctx, resumeID)
}

// Report returns a stored analysis.
func (m *Matcher) Report(ctx context.Context, analysisID string) (*types.MatchReport, error) {
	return m.store.LoadAnalysis(ctx, analysisID)
}

// loadResumeText loads a resume and returns it with its trimmed text.
func (m *Matcher) loadResumeText(ctx context.Context, resumeID string) (*types.ResumeRecord, string, error) {
	record, err := m.store.LoadResume(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}
	text := strings.TrimSpace(record.RawText)
	if text == "" {
		return nil, "", &MissingResumeTextError{ResumeID: resumeID}
	}
	return record, text, nil
}

// embed truncates text to the provider limit and embeds it.
func (m *Matcher) embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := m.embedder.Embed(ctx, embedding.TruncateRunes(text, embedding.MaxInputRunes))
	if err != nil {
		return nil, &StepError{Step: StepEmbed, Cause: err}
	}
	return vec, nil
}
