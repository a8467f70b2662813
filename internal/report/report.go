// Package report renders the classification results as a
// human-readable log and, optionally, a machine-readable JSON report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"modsort/internal/model"
)

// Meta describes the run the report belongs to.
type Meta struct {
	ScannedDir string    `json:"scanned_dir"`
	Timestamp  time.Time `json:"timestamp"`
}

// Report is the JSON document shape.
type Report struct {
	Meta        Meta               `json:"meta"`
	Counts      map[string]int     `json:"counts"`
	Records     []*model.ModRecord `json:"records"`
	Corrections int                `json:"corrections"`
}

const (
	ruleHeavy = "================================================================================"
	ruleLight = "--------------------------------------------------------------------------------"
)

// Counts aggregates final classifications.
func Counts(records []*model.ModRecord) map[model.Classification]int {
	counts := make(map[model.Classification]int)
	for _, rec := range records {
		counts[rec.Final]++
	}
	return counts
}

// Render produces the full text report: a header, one block per record
// sorted case-insensitively by filename, and a summary count table.
func Render(meta Meta, records []*model.ModRecord) string {
	sorted := sortByFilename(records)

	var sb strings.Builder
	sb.WriteString(ruleHeavy + "\n")
	sb.WriteString(" Mod Classification Report\n")
	sb.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&sb, "Scan time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Scanned directory: %s\n", meta.ScannedDir)
	sb.WriteString(ruleLight + "\n\n")

	for _, rec := range sorted {
		writeRecord(&sb, rec)
	}

	counts := Counts(records)
	labels := make([]model.Classification, 0, len(counts))
	for c := range counts {
		labels = append(labels, c)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Label() < labels[j].Label()
	})

	sb.WriteString("\n" + ruleHeavy + "\n")
	sb.WriteString(" Summary\n")
	sb.WriteString(ruleHeavy + "\n")
	for _, c := range labels {
		fmt.Fprintf(&sb, "- %-25s: %d\n", c.Label(), counts[c])
	}
	sb.WriteString(ruleLight + "\n")
	return sb.String()
}

func writeRecord(sb *strings.Builder, rec *model.ModRecord) {
	fmt.Fprintf(sb, "--- %s ---\n", rec.Filename)

	modID := rec.ModID
	if modID == "" {
		modID = "unresolved"
	}
	fmt.Fprintf(sb, "  - Mod ID            : %s\n", modID)

	if len(rec.Dependencies) > 0 {
		sb.WriteString("  - Dependencies:\n")
		for _, dep := range rec.Dependencies {
			fmt.Fprintf(sb, "    - %s (side=%s)\n", dep.ModID, dep.Side)
		}
	} else {
		sb.WriteString("  - Dependencies: none\n")
	}

	sb.WriteString("\n  - Analysis chain:\n")
	fmt.Fprintf(sb, "    1. Initial: %s [reason: %s]\n", rec.Initial.Label(), rec.InitialReason)
	if rec.WasCorrected {
		fmt.Fprintf(sb, "    2. Dependency correction: classification revised because %s\n", rec.CorrectionReason)
	} else {
		sb.WriteString("    2. Dependency correction: not needed\n")
	}
	fmt.Fprintf(sb, "    3. Final: %s\n", rec.Final.Label())

	sb.WriteString("\n" + strings.Repeat("-", 40) + "\n\n")
}

// WriteLog renders the text report to path, creating parent
// directories as needed.
func WriteLog(path string, meta Meta, records []*model.ModRecord) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Render(meta, records)), 0644)
}

// WriteJSON writes the machine-readable report to path.
func WriteJSON(path string, meta Meta, records []*model.ModRecord, corrections int) error {
	counts := make(map[string]int)
	for c, n := range Counts(records) {
		counts[c.String()] = n
	}

	rep := Report{
		Meta:        meta,
		Counts:      counts,
		Records:     sortByFilename(records),
		Corrections: corrections,
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if err := ensureParent(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func sortByFilename(records []*model.ModRecord) []*model.ModRecord {
	sorted := make([]*model.ModRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Filename) < strings.ToLower(sorted[j].Filename)
	})
	return sorted
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
