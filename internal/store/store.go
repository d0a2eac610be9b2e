// Package store persists resume and analysis records, on disk or in PostgreSQL.
package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// ID prefixes for stored records.
const (
	ResumePrefix   = "resume"
	AnalysisPrefix = "analysis"
)

// Store is the record storage used by the matching pipeline.
type Store interface {
	SaveResume(ctx context.Context, record *types.ResumeRecord) error
	LoadResume(ctx context.Context, resumeID string) (*types.ResumeRecord, error)
	SaveAnalysis(ctx context.Context, report *types.MatchReport) error
	LoadAnalysis(ctx context.Context, analysisID string) (*types.MatchReport, error)
	// ListAnalyses returns every stored analysis, oldest first.
	ListAnalyses(ctx context.Context) ([]*types.MatchReport, error)
	Close() error
}

// NewID returns prefix + "_" + 32 lowercase hex characters.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Open returns a PostgresStore when databaseURL is set, otherwise a FileStore rooted at dataDir.
func Open(ctx context.Context, dataDir, databaseURL string, logger *zap.Logger) (Store, error) {
	if databaseURL != "" {
		return ConnectPostgres(ctx, databaseURL, logger)
	}
	return NewFileStore(dataDir, logger)
}
