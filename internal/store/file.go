package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
	"go.uber.org/zap"
)

const (
	resumesDir  = "resumes"
	analysesDir = "analyses"
)

// FileStore keeps one pretty-printed JSON file per record under
// <data_dir>/resumes and <data_dir>/analyses.
type FileStore struct {
	dataDir string
	logger  *zap.Logger
}

// NewFileStore creates the record directories under dataDir.
func NewFileStore(dataDir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, dir := range []string{resumesDir, analysesDir} {
		if err := os.MkdirAll(filepath.Join(dataDir, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}
	return &FileStore{dataDir: dataDir, logger: logger}, nil
}

// SaveResume writes the resume record, replacing any record with the same id.
func (s *FileStore) SaveResume(_ context.Context, record *types.ResumeRecord) error {
	return s.write(resumesDir, record.ResumeID, record)
}

// LoadResume reads a resume record.
func (s *FileStore) LoadResume(_ context.Context, resumeID string) (*types.ResumeRecord, error) {
	var record types.ResumeRecord
	if err := s.read(resumesDir, ResumePrefix, resumeID, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveAnalysis writes the analysis record, replacing any record with the same id.
func (s *FileStore) SaveAnalysis(_ context.Context, report *types.MatchReport) error {
	return s.write(analysesDir, report.AnalysisID, report)
}

// LoadAnalysis reads an analysis record.
func (s *FileStore) LoadAnalysis(_ context.Context, analysisID string) (*types.MatchReport, error) {
	var report types.MatchReport
	if err := s.read(analysesDir, AnalysisPrefix, analysisID, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListAnalyses reads every analysis record, oldest first. Unreadable records are logged
// and skipped so one damaged file does not hide the rest.
func (s *FileStore) ListAnalyses(_ context.Context) ([]*types.MatchReport, error) {
	paths, err := filepath.Glob(filepath.Join(s.dataDir, analysesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	reports := make([]*types.MatchReport, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable analysis", zap.String("path", path), zap.Error(err))
			continue
		}
		var report types.MatchReport
		if err := json.Unmarshal(data, &report); err != nil {
			s.logger.Warn("skipping corrupt analysis", zap.String("path", path), zap.Error(err))
			continue
		}
		reports = append(reports, &report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.Before(reports[j].CreatedAt)
		}
		return reports[i].AnalysisID < reports[j].AnalysisID
	})
	return reports, nil
}

// Close is a no-op for FileStore.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) write(dir, id string, v any) error {
	if !validID(id) {
		return fmt.Errorf("invalid record id %q", id)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	path := filepath.Join(s.dataDir, dir, id+".json")
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	s.logger.Debug("record saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func (s *FileStore) read(dir, kind, id string, v any) error {
	if !validID(id) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	path := filepath.Join(s.dataDir, dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Kind: kind, ID: id}
		}
		return fmt.Errorf("failed to read record: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &CorruptRecordError{Path: path, Cause: err}
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place,
// so readers never see a partially written record.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// validID rejects ids that would escape the record directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
