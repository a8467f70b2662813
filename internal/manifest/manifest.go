// Package manifest extracts mod metadata from mods.toml text by
// pattern matching, not TOML parsing. The classification rules are
// keyed to exactly these patterns, and real manifests are frequently
// malformed in ways a grammar parser would reject.
package manifest

import (
	"regexp"
	"strings"

	"modsort/internal/model"
)

var (
	modIDRe       = regexp.MustCompile(`modId\s*=\s*["'](.+?)["']`)
	depHeaderRe   = regexp.MustCompile(`\[\[dependencies\..+?\]\]`)
	sideRe        = regexp.MustCompile(`(?i)side\s*=\s*["'](.+?)["']`)
	displayTestRe = regexp.MustCompile(`(?i)displayTest\s*=\s*["']CLIENT_ONLY["']`)

	// Handles triple-quoted, double-quoted and single-quoted forms so a
	// multi-line description cannot swallow later keys.
	descriptionRe = regexp.MustCompile(`(?i)description\s*=\s*(?:"""([\s\S]*?)"""|'''([\s\S]*?)'''|"((?:\\.|[^"\\])*)"|'((?:\\.|[^"\\])*)')`)
)

// Metadata is the extracted identity of one mod: its own modId (empty
// when unparseable) and its declared dependencies in declaration order.
type Metadata struct {
	ModID        string
	Dependencies []model.Dependency
}

// Extract pulls the modId and dependency list out of manifest text.
// Dependency blocks without a resolvable modId are dropped; a missing
// side defaults to BOTH.
func Extract(toml string) Metadata {
	var meta Metadata

	if m := modIDRe.FindStringSubmatch(toml); m != nil {
		meta.ModID = m[1]
	}

	for _, block := range dependencyBlocks(toml) {
		m := modIDRe.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		dep := model.Dependency{ModID: m[1], Side: model.SideBoth}
		if s := sideRe.FindStringSubmatch(block); s != nil {
			dep.Side = model.ParseSide(s[1])
		}
		meta.Dependencies = append(meta.Dependencies, dep)
	}

	return meta
}

// dependencyBlocks returns one text slice per dependency table-array
// header. Each block runs from its header to the next table-array at
// the start of a line, or to the end of text.
func dependencyBlocks(toml string) []string {
	headers := depHeaderRe.FindAllStringIndex(toml, -1)
	if headers == nil {
		return nil
	}

	blocks := make([]string, 0, len(headers))
	for _, h := range headers {
		end := len(toml)
		if next := strings.Index(toml[h[1]:], "\n[["); next >= 0 {
			end = h[1] + next
		}
		blocks = append(blocks, toml[h[0]:end])
	}
	return blocks
}

// DeclaresClientOnlyDisplay reports whether the manifest pins
// displayTest to CLIENT_ONLY.
func DeclaresClientOnlyDisplay(toml string) bool {
	return displayTestRe.MatchString(toml)
}

// DeclaresExports reports whether the manifest carries an exports
// table-array.
func DeclaresExports(toml string) bool {
	return strings.Contains(toml, "[[exports]]")
}

// Description returns the manifest's description value, or "" when
// absent.
func Description(toml string) string {
	m := descriptionRe.FindStringSubmatch(toml)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
