package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opengovlab/drishti/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("artifact.store",
	fx.Provide(New),
)

// Store abstracts the artifact filesystem: create-directory-if-absent,
// write-whole-file, read-whole-file, delete and existence checks.
type Store interface {
	Write(filename string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
	Exists(path string) bool
}

type fsStore struct {
	baseDir string
}

func New(cfg config.Config) Store {
	return &fsStore{baseDir: cfg.ReportsDir}
}

// NewWithDir returns a store rooted at dir. Used in tests.
func NewWithDir(dir string) Store {
	return &fsStore{baseDir: dir}
}

func (s *fsStore) Write(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	path := filepath.Join(s.baseDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

func (s *fsStore) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (s *fsStore) Delete(path string) error {
	return os.Remove(path)
}

func (s *fsStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FormatFileSize renders a byte count as a human-readable string.
func FormatFileSize(bytes int) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	}
}
