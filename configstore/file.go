package configstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/certomancer/certomancer-go/interfaces"
)

// FileSource serves configuration documents from a local directory.
type FileSource struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileSource creates a file-based configuration source rooted at baseDir.
func NewFileSource(baseDir string, log *slog.Logger) (*FileSource, error) {
	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("could not access base directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", baseDir)
	}

	return &FileSource{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Fetch retrieves a document from the directory by its validated name.
// Returns ErrConfigNotFound if the file doesn't exist.
func (s *FileSource) Fetch(ctx context.Context, name interfaces.ConfigName) ([]byte, error) {
	if err := name.Validate(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.baseDir, filepath.FromSlash(name.String()))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, interfaces.ErrConfigNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	s.log.Debug("Fetched config document from file",
		slog.String("path", path),
		slog.Int("size", len(data)))

	return data, nil
}

// Available checks if the file source is accessible by verifying the base directory exists.
func (s *FileSource) Available(ctx context.Context) bool {
	_, err := os.Stat(s.baseDir)
	if err != nil {
		s.log.Debug("File source unavailable", "err", err)
		return false
	}
	return true
}

// Name returns a unique identifier for this source.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file-%s", filepath.Base(s.baseDir))
}

// LocationURI returns the URI that identifies this source.
func (s *FileSource) LocationURI() string {
	return s.locationURI
}
