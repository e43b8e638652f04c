package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files next to their packages. Files with a
// relative Dir are placed under baseDir.
func WriteFiles(files []GeneratedFile, baseDir string) error {
	for _, file := range files {
		outputPath := resolvePath(file, baseDir)

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Stale returns the paths of files whose on-disk content differs from the
// generated content, including files that do not exist yet.
func Stale(files []GeneratedFile, baseDir string) ([]string, error) {
	var stale []string

	for _, file := range files {
		p := resolvePath(file, baseDir)

		existing, err := os.ReadFile(p) //nolint:gosec // path comes from the loaded package set
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, p)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		if !bytes.Equal(existing, file.Content) {
			stale = append(stale, p)
		}
	}

	return stale, nil
}

func resolvePath(file GeneratedFile, baseDir string) string {
	p := file.Path()
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}

	return filepath.Join(baseDir, p)
}
