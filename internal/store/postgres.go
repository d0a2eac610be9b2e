package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

// schemaSQL creates the record tables. Records are kept whole in JSONB; the extra columns
// serve ordering and lookups.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS resumes (
	resume_id   TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	text_sha256 TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	record      JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	analysis_id       TEXT PRIMARY KEY,
	resume_id         TEXT NOT NULL,
	final_match_score DOUBLE PRECISION NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	record            JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at);
`

// PostgresStore keeps records in PostgreSQL
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// ConnectPostgres establishes a connection pool and creates the record tables if needed.
func ConnectPostgres(ctx context.Context, databaseURL string, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Debug("connected to postgres")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// SaveResume upserts a resume record
func (s *PostgresStore) SaveResume(ctx context.Context, record *types.ResumeRecord) error {
	jsonBytes, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (resume_id, filename, text_sha256, created_at, record)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (resume_id) DO UPDATE
		 SET filename = $2, text_sha256 = $3, created_at = $4, record = $5`,
		record.ResumeID, record.Filename, record.TextSHA256, record.CreatedAt, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// LoadResume retrieves a resume record by id
func (s *PostgresStore) LoadResume(ctx context.Context, resumeID string) (*types.ResumeRecord, error) {
	var jsonBytes []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM resumes WHERE resume_id = $1`,
		resumeID,
	).Scan(&jsonBytes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &NotFoundError{Kind: ResumePrefix, ID: resumeID}
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var record types.ResumeRecord
	if err := json.Unmarshal(jsonBytes, &record); err != nil {
		return nil, &CorruptRecordError{Path: "resumes/" + resumeID, Cause: err}
	}
	return &record, nil
}

// SaveAnalysis upserts an analysis record
func (s *PostgresStore) SaveAnalysis(ctx context.Context, report *types.MatchReport) error {
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (analysis_id, resume_id, final_match_score, created_at, record)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (analysis_id) DO UPDATE
		 SET resume_id = $2, final_match_score = $3, created_at = $4, record = $5`,
		report.AnalysisID, report.ResumeID, report.Score.FinalMatchScore, report.CreatedAt, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// LoadAnalysis retrieves an analysis record by id
func (s *PostgresStore) LoadAnalysis(ctx context.Context, analysisID string) (*types.MatchReport, error) {
	var jsonBytes []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM analyses WHERE analysis_id = $1`,
		analysisID,
	).Scan(&jsonBytes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &NotFoundError{Kind: AnalysisPrefix, ID: analysisID}
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var report types.MatchReport
	if err := json.Unmarshal(jsonBytes, &report); err != nil {
		return nil, &CorruptRecordError{Path: "analyses/" + analysisID, Cause: err}
	}
	return &report, nil
}

// ListAnalyses retrieves every analysis record, oldest first, skipping records that fail to decode
func (s *PostgresStore) ListAnalyses(ctx context.Context) ([]*types.MatchReport, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT analysis_id, record FROM analyses ORDER BY created_at, analysis_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var reports []*types.MatchReport
	for rows.Next() {
		var id string
		var jsonBytes []byte
		if err := rows.Scan(&id, &jsonBytes); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		var report types.MatchReport
		if err := json.Unmarshal(jsonBytes, &report); err != nil {
			s.logger.Warn("skipping corrupt analysis", zap.String("analysis_id", id), zap.Error(err))
			continue
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return reports, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
