// Package jar provides read access to mod archives. A Reader lists
// entry names in archive order and opens individual entries; archive
// level failures and entry level failures are kept distinct so a bad
// entry never invalidates the whole archive.
package jar

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Reader is the capability the analysis phases consume. Entries
// returns names in archive order; the order is stable for a given
// archive and drives deterministic scanning.
type Reader interface {
	Entries() []string
	ReadEntry(name string) ([]byte, error)
	ReadEntryText(name string) (string, error)
	Close() error
}

// ArchiveError reports that an archive could not be opened or is
// structurally invalid.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("open archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// EntryError reports that a single entry could not be read. Callers
// skip the entry and continue.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("read entry %s: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

type zipReader struct {
	rc      *zip.ReadCloser
	names   []string
	entries map[string]*zip.File
}

// Open opens a JAR (zip) archive for reading. A corrupt or truncated
// file yields an *ArchiveError.
func Open(path string) (Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ArchiveError{Path: path, Err: err}
	}

	r := &zipReader{
		rc:      rc,
		names:   make([]string, 0, len(rc.File)),
		entries: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		r.names = append(r.names, f.Name)
		if _, dup := r.entries[f.Name]; !dup {
			r.entries[f.Name] = f
		}
	}
	return r, nil
}

func (r *zipReader) Entries() []string {
	return r.names
}

func (r *zipReader) ReadEntry(name string) ([]byte, error) {
	f, ok := r.entries[name]
	if !ok {
		return nil, &EntryError{Name: name, Err: fmt.Errorf("no such entry")}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &EntryError{Name: name, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &EntryError{Name: name, Err: err}
	}
	return data, nil
}

// ReadEntryText decodes an entry as UTF-8, dropping invalid byte
// sequences instead of failing. Manifests in the wild are not always
// cleanly encoded.
func (r *zipReader) ReadEntryText(name string) (string, error) {
	data, err := r.ReadEntry(name)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func (r *zipReader) Close() error {
	return r.rc.Close()
}
