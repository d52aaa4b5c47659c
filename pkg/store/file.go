package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
)

// FileStore keeps each chart as a JSON file named after its ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// DefaultDir returns the chart directory under $XDG_DATA_HOME, falling back
// to ~/.local/share/seatchart/charts.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "seatchart", "charts"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "seatchart", "charts"), nil
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, [DefaultDir] is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *FileStore) chartPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, doc *chart.Document) (string, error) {
	if err := prepare(doc, s.now()); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := chart.WriteFile(doc, s.chartPath(doc.ID)); err != nil {
		return "", err
	}
	return doc.ID, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*chart.Document, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, err := chart.ReadFile(s.chartPath(id))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, NotFound(id)
	}
	return doc, err
}

func (s *FileStore) List(ctx context.Context, n int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read chart dir: %w", err)
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if ValidateID(strings.TrimSuffix(entry.Name(), ".json")) != nil {
			continue
		}
		doc, err := chart.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		summaries = append(summaries, Summarize(doc))
	}
	sortNewestFirst(summaries)
	return limit(summaries, n), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.chartPath(id)); err != nil {
		if os.IsNotExist(err) {
			return NotFound(id)
		}
		return fmt.Errorf("remove chart file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the chart files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
