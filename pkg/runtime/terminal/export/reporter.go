package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/booking-atlas/pkg/export/excel"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
)

// Reporter writes export documents as xlsx workbooks into a target
// directory, named by generation time.
type Reporter struct {
	dir string
}

func NewReporter(dir string) *Reporter {
	if dir == "" {
		dir = "."
	}
	return &Reporter{dir: dir}
}

// Handle renders the document and returns the path it was written to.
func (r *Reporter) Handle(doc domain.ExportDocument) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(r.dir, excel.Filename(doc.GeneratedAt))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := excel.Write(doc, f); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
