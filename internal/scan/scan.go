// Package scan inspects compiled-code entries for byte-level marker
// signatures. Signals are monotonic: once a marker set has been seen
// in any entry, the signal stays true for the archive.
package scan

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"modsort/internal/jar"
)

// Signal names, as defined in signatures.yaml.
const (
	SigLevelIsClientSide  = "level_isclientside"
	SigDistExecutorClient = "distexecutor_client"
	SigDistExecutorServer = "distexecutor_server"
	SigOnlyInClient       = "onlyin_client"
	SigOnlyInServer       = "onlyin_server"
	SigFMLEnvironmentDist = "fmlenvironment_dist"
	SigGenericClientRef   = "generic_client_ref"
	SigServerRef          = "server_ref"
)

//go:embed signatures.yaml
var signaturesYAML []byte

type signalDef struct {
	Name    string   `yaml:"name"`
	Markers []string `yaml:"markers"`
}

type signatureTable struct {
	Signals []signalDef `yaml:"signals"`
}

type compiledSignal struct {
	name    string
	markers [][]byte
}

var signalTable = mustLoadTable(signaturesYAML)

func mustLoadTable(raw []byte) []compiledSignal {
	var table signatureTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		panic(fmt.Sprintf("load signatures.yaml: %v", err))
	}
	compiled := make([]compiledSignal, 0, len(table.Signals))
	for _, def := range table.Signals {
		if def.Name == "" || len(def.Markers) == 0 {
			panic(fmt.Sprintf("signatures.yaml: incomplete signal %+v", def))
		}
		sig := compiledSignal{name: def.Name}
		for _, m := range def.Markers {
			sig.markers = append(sig.markers, []byte(m))
		}
		compiled = append(compiled, sig)
	}
	return compiled
}

// Findings maps signal name to whether any compiled entry matched it.
// Every signal in the table is present, defaulted to false.
type Findings map[string]bool

// Archive scans every .class entry of the archive against the signal
// table. Unreadable entries are skipped. Scanning stops early once all
// signals are true; since signals only accumulate, the result is the
// same either way.
func Archive(r jar.Reader) Findings {
	findings := make(Findings, len(signalTable))
	for _, sig := range signalTable {
		findings[sig.name] = false
	}

	remaining := len(signalTable)
	for _, name := range r.Entries() {
		if !strings.HasSuffix(strings.ToLower(name), ".class") {
			continue
		}
		content, err := r.ReadEntry(name)
		if err != nil {
			continue
		}

		for _, sig := range signalTable {
			if findings[sig.name] {
				continue
			}
			if containsAll(content, sig.markers) {
				findings[sig.name] = true
				remaining--
			}
		}
		if remaining == 0 {
			break
		}
	}
	return findings
}

func containsAll(content []byte, markers [][]byte) bool {
	for _, m := range markers {
		if !bytes.Contains(content, m) {
			return false
		}
	}
	return true
}
