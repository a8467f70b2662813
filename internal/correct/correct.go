// Package correct revises single-side classifications whose declared
// dependencies require both sides. It is a single forward sweep in
// enumeration order, with no re-sweep to fixpoint: a chain A -> B -> C
// promotes B only when B is enumerated after C, and A only when A is
// enumerated after B.
package correct

import (
	"fmt"

	"modsort/internal/model"
)

// The platform's own identifiers are present in nearly every manifest
// and say nothing about the mod's sides.
var ignoredDependencies = map[string]struct{}{
	"minecraft": {},
	"forge":     {},
}

// Apply sweeps records in enumeration order and promotes eligible
// single-side records to universal. A record is corrected at most
// once; the first qualifying dependency in declaration order wins.
// Returns the number of corrections made.
func Apply(order []string, records map[string]*model.ModRecord, index map[string]string) int {
	corrections := 0
	for _, filename := range order {
		rec, ok := records[filename]
		if !ok || rec.Initial == model.ClassError {
			continue
		}
		// Eligibility tracks the current final classification, so a
		// record promoted by an earlier run stays promoted and a second
		// sweep over corrected output is a no-op.
		if rec.WasCorrected || !rec.Final.SingleSide() {
			continue
		}

		for _, dep := range rec.Dependencies {
			if _, ignored := ignoredDependencies[dep.ModID]; ignored {
				continue
			}

			if dep.Side == model.SideBoth {
				promote(rec, fmt.Sprintf("dependency '%s' is required on both sides", dep.ModID))
				corrections++
				break
			}

			depFilename, ok := index[dep.ModID]
			if !ok {
				continue
			}
			depRec, ok := records[depFilename]
			if !ok {
				continue
			}
			// Current final, not initial: an earlier correction in this
			// same sweep counts.
			if depRec.Final == model.ClassUniversal || depRec.Final == model.ClassAPILibrary {
				promote(rec, fmt.Sprintf("depends on a universal/API mod '%s'", dep.ModID))
				corrections++
				break
			}
		}
	}
	return corrections
}

func promote(rec *model.ModRecord, reason string) {
	rec.Final = model.ClassUniversal
	rec.CorrectionReason = reason
	rec.WasCorrected = true
}
