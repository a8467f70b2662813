// Package archive copies classified JARs into per-category folders.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"modsort/internal/model"
)

// Categories in folder order. Every folder is created up front so the
// layout is complete even when a category is empty.
var categories = []model.Classification{
	model.ClassClientOnly,
	model.ClassServerOnly,
	model.ClassUniversal,
	model.ClassAPILibrary,
	model.ClassError,
}

// Copy places each record's JAR under destDir in the folder named by
// its final classification. Per-file copy failures are logged and
// skipped; the returned count is the number of files copied.
func Copy(modsDir, destDir string, records []*model.ModRecord, logger *log.Logger) (int, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}
	for _, c := range categories {
		if err := os.MkdirAll(filepath.Join(destDir, c.Folder()), 0755); err != nil {
			return 0, fmt.Errorf("create category folder: %w", err)
		}
	}

	copied := 0
	for _, rec := range records {
		src := filepath.Join(modsDir, rec.Filename)
		dst := filepath.Join(destDir, rec.Final.Folder(), rec.Filename)
		if err := copyFile(src, dst); err != nil {
			logger.Warn("could not copy file", "file", rec.Filename, "err", err)
			continue
		}
		copied++
	}
	return copied, nil
}

// copyFile copies contents and keeps the source's modification time,
// so archived mods can still be sorted by release date.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
