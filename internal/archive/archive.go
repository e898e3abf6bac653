package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveResult moves an existing result file into an "archive" directory
// next to it, suffixed with a timestamp. It returns the archive path, or
// "" when there was nothing to archive.
func ArchiveResult(resultFile string) (string, error) {
	if _, err := os.Stat(resultFile); os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("failed to stat result file: %w", err)
	}

	archiveDir := filepath.Join(filepath.Dir(resultFile), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(resultFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	now := time.Now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, now.Format("20060102-150405"), ext))

	// Two runs within the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, now.Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(resultFile, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive result file: %w", err)
	}

	return archivePath, nil
}
