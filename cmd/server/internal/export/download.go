package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// FileSink writes export results into a downloads directory. Save opens
// and closes exactly one file handle per call.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Save materializes the result's bytes and returns the file path.
func (s *FileSink) Save(result *models.ExportResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(result.Filename))
	if err := os.WriteFile(path, result.Content, 0o644); err != nil {
		return "", fmt.Errorf("write download: %w", err)
	}
	return path, nil
}
