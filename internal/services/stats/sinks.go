package stats

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/dartscore-go/internal/model"
	"github.com/mcoot/dartscore-go/internal/storage"
)

// StorageSink appends summaries to the storage statistics history
type StorageSink struct {
	storage storage.Storage
}

// NewStorageSink creates a new StorageSink
func NewStorageSink(storage storage.Storage) *StorageSink {
	return &StorageSink{storage: storage}
}

func (s *StorageSink) Name() string { return "storage" }

func (s *StorageSink) Record(ctx context.Context, stats *model.GameStatistics) error {
	return s.storage.RecordStatistics(ctx, stats)
}

// YAMLSink keeps the history as a YAML sequence in a single file
type YAMLSink struct {
	path string
	mu   sync.Mutex
}

// NewYAMLSink creates a YAMLSink writing to path
func NewYAMLSink(path string) *YAMLSink {
	return &YAMLSink{path: path}
}

func (s *YAMLSink) Name() string { return "yaml" }

func (s *YAMLSink) Record(ctx context.Context, stats *model.GameStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load()
	if err != nil {
		return err
	}
	history = append(history, *stats)

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.write(history)
}

// Load reads the recorded history. A missing file is an empty history.
func (s *YAMLSink) Load() ([]model.GameStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *YAMLSink) load() ([]model.GameStatistics, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history []model.GameStatistics
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return history, nil
}

func (s *YAMLSink) write(history []model.GameStatistics) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".stats-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := yaml.NewEncoder(tmp)
	enc.SetIndent(2)
	if err := enc.Encode(history); err != nil {
		tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
