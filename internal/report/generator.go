package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomsh-hr/pingstat/internal/models"
)

// Generator writes per-host report artifacts into one output directory.
type Generator struct {
	dir string
}

// NewGenerator creates the output directory if needed.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// TextSummary writes the host's daily stat table to a summary file.
func (g *Generator) TextSummary(host string, buckets []models.Bucket) error {
	filename := filepath.Join(g.dir, fmt.Sprintf("summary_%s.txt", sanitizeFilename(host)))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Latency Report - %s\n", host)
	fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	BucketTable(models.Daily, buckets).Print(file)
	return nil
}

// sanitizeFilename replaces dots and special characters for safe filenames
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(s)
}
