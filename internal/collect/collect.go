// Package collect runs the per-archive phase: enumerate the JARs in a
// mods directory, extract metadata, scan compiled code and produce one
// ModRecord per archive plus the modId index used by correction.
package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"modsort/internal/classify"
	"modsort/internal/jar"
	"modsort/internal/manifest"
	"modsort/internal/model"
	"modsort/internal/scan"
)

const manifestEntry = "META-INF/mods.toml"

// Result holds everything later phases need. Order is the enumeration
// order (filenames sorted case-insensitively); Index maps modId to
// filename, last write wins when two archives declare the same modId.
// Records classified error never enter the index.
type Result struct {
	Dir     string
	Order   []string
	Records map[string]*model.ModRecord
	Index   map[string]string
}

// Run analyzes every *.jar directly inside dir. A failure to open one
// archive yields an error record for that archive only; the returned
// error is non-nil only when the directory itself cannot be listed.
func Run(dir string) (Result, error) {
	res := Result{
		Dir:     dir,
		Records: make(map[string]*model.ModRecord),
		Index:   make(map[string]string),
	}

	names, err := listJars(dir)
	if err != nil {
		return res, err
	}
	res.Order = names

	for _, filename := range names {
		res.Records[filename] = analyzeOne(dir, filename, res.Index)
	}
	return res, nil
}

// listJars returns *.jar filenames (case-insensitive match) in dir,
// sorted case-insensitively for deterministic enumeration.
func listJars(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list mods directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".jar") {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

func analyzeOne(dir, filename string, index map[string]string) *model.ModRecord {
	rec := &model.ModRecord{Filename: filename}

	r, err := jar.Open(filepath.Join(dir, filename))
	if err != nil {
		rec.Initial = model.ClassError
		rec.InitialReason = fmt.Sprintf("failed to read JAR (%v)", err)
		rec.Final = model.ClassError
		return rec
	}
	defer r.Close()

	entries := r.Entries()
	toml := ""
	if hasEntry(entries, manifestEntry) {
		text, err := r.ReadEntryText(manifestEntry)
		if err != nil {
			// A present but unreadable manifest means the archive
			// itself is damaged.
			rec.Initial = model.ClassError
			rec.InitialReason = fmt.Sprintf("failed to read JAR (%v)", err)
			rec.Final = model.ClassError
			return rec
		}
		toml = text
	}

	meta := manifest.Extract(toml)
	rec.ModID = meta.ModID
	rec.Dependencies = meta.Dependencies

	rec.Initial, rec.InitialReason = classify.Initial(toml, entries, func() scan.Findings {
		return scan.Archive(r)
	})
	rec.Final = rec.Initial

	if rec.ModID != "" {
		index[rec.ModID] = filename
	}
	return rec
}

func hasEntry(entries []string, name string) bool {
	for _, e := range entries {
		if e == name {
			return true
		}
	}
	return false
}
