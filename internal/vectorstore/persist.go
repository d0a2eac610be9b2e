package vectorstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sbinet/npyio"
)

const (
	metaFile    = "meta.json"
	vectorsFile = "vectors.npy"
)

type meta struct {
	IDs []string `json:"ids"`
}

func (s *Store) load() error {
	metaPath := filepath.Join(s.dir, metaFile)
	raw, err := os.ReadFile(metaPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &LoadError{Path: metaPath, Message: "read failed", Cause: err}
	}

	var m meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return &LoadError{Path: metaPath, Message: "invalid JSON", Cause: err}
	}
	if len(m.IDs) == 0 {
		return nil
	}

	vecPath := filepath.Join(s.dir, vectorsFile)
	data, err := readMatrix(vecPath)
	if err != nil {
		return err
	}
	if len(data) != len(m.IDs)*s.dim {
		return &LoadError{
			Path:    vecPath,
			Message: fmt.Sprintf("holds %d values, want %d ids x %d dims", len(data), len(m.IDs), s.dim),
		}
	}

	for i, id := range m.IDs {
		if _, dup := s.rows[id]; dup {
			return &LoadError{Path: metaPath, Message: fmt.Sprintf("duplicate id %q", id)}
		}
		s.rows[id] = i
	}
	s.ids = m.IDs
	s.data = data
	return nil
}

func readMatrix(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "open failed", Cause: err}
	}
	defer func() { _ = f.Close() }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid npy header", Cause: err}
	}

	n := 1
	for _, d := range r.Header.Descr.Shape {
		n *= d
	}
	data := make([]float32, n)
	if err := r.Read(&data); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid npy data", Cause: err}
	}
	return data, nil
}

func (s *Store) persist() error {
	metaJSON, err := json.MarshalIndent(meta{IDs: s.ids}, "", "  ")
	if err != nil {
		return &PersistError{Path: filepath.Join(s.dir, metaFile), Cause: err}
	}

	var vec bytes.Buffer
	if err := npyio.Write(&vec, s.data); err != nil {
		return &PersistError{Path: filepath.Join(s.dir, vectorsFile), Cause: err}
	}

	if err := writeFileAtomic(filepath.Join(s.dir, vectorsFile), vec.Bytes()); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(s.dir, metaFile), metaJSON)
}

// writeFileAtomic writes data to a temp file in the same directory and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistError{Path: path, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &PersistError{Path: path, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &PersistError{Path: path, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &PersistError{Path: path, Cause: err}
	}
	return nil
}
