package correct

import (
	"testing"

	"modsort/internal/model"
)

func record(filename, modID string, class model.Classification, deps ...model.Dependency) *model.ModRecord {
	return &model.ModRecord{
		Filename:     filename,
		ModID:        modID,
		Dependencies: deps,
		Initial:      class,
		Final:        class,
	}
}

func run(recs ...*model.ModRecord) (map[string]*model.ModRecord, []string, int) {
	records := make(map[string]*model.ModRecord)
	index := make(map[string]string)
	var order []string
	for _, r := range recs {
		records[r.Filename] = r
		order = append(order, r.Filename)
		if r.ModID != "" && r.Initial != model.ClassError {
			index[r.ModID] = r.Filename
		}
	}
	n := Apply(order, records, index)
	return records, order, n
}

func TestApply_SideBothPromotes(t *testing.T) {
	// Scenario: a client-only mod declares a dependency required on
	// both sides.
	a := record("a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "core", Side: model.SideBoth})
	core := record("core.jar", "core", model.ClassServerOnly)

	_, _, n := run(a, core)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1", n)
	}
	if a.Final != model.ClassUniversal || !a.WasCorrected {
		t.Errorf("a = (%s, corrected=%v), want universal", a.Final, a.WasCorrected)
	}
	if a.CorrectionReason != "dependency 'core' is required on both sides" {
		t.Errorf("reason = %q, should cite 'core'", a.CorrectionReason)
	}
	if a.Initial != model.ClassClientOnly {
		t.Errorf("initial classification must not change, got %s", a.Initial)
	}
}

func TestApply_DependsOnAPILibrary(t *testing.T) {
	// Scenario: a server-only mod depends (side=CLIENT) on an API mod.
	lib := record("lib.jar", "lib", model.ClassAPILibrary)
	b := record("b.jar", "b", model.ClassServerOnly,
		model.Dependency{ModID: "lib", Side: model.SideClient})

	_, _, n := run(lib, b)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1", n)
	}
	if b.Final != model.ClassUniversal {
		t.Errorf("b.Final = %s, want universal", b.Final)
	}
	if b.CorrectionReason != "depends on a universal/API mod 'lib'" {
		t.Errorf("reason = %q, should cite 'lib'", b.CorrectionReason)
	}
}

func TestApply_IgnoredDependencies(t *testing.T) {
	a := record("a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "minecraft", Side: model.SideBoth},
		model.Dependency{ModID: "forge", Side: model.SideBoth})

	_, _, n := run(a)
	if n != 0 {
		t.Fatalf("corrections = %d, want 0 (platform deps ignored)", n)
	}
	if a.WasCorrected || a.Final != model.ClassClientOnly {
		t.Errorf("a = (%s, corrected=%v), want untouched", a.Final, a.WasCorrected)
	}
}

func TestApply_FirstQualifyingDependencyWins(t *testing.T) {
	u := record("u.jar", "u", model.ClassUniversal)
	a := record("a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "u", Side: model.SideClient},
		model.Dependency{ModID: "other", Side: model.SideBoth})

	_, _, n := run(u, a)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1", n)
	}
	// Declaration order decides: the universal dependency comes first.
	if a.CorrectionReason != "depends on a universal/API mod 'u'" {
		t.Errorf("reason = %q, want the first qualifying dependency in declaration order", a.CorrectionReason)
	}
}

func TestApply_UnresolvedDependencySkipped(t *testing.T) {
	a := record("a.jar", "a", model.ClassServerOnly,
		model.Dependency{ModID: "ghost", Side: model.SideClient},
		model.Dependency{ModID: "real", Side: model.SideBoth})

	_, _, n := run(a)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1 (unresolved skipped, next dep applies)", n)
	}
	if a.CorrectionReason != "dependency 'real' is required on both sides" {
		t.Errorf("reason = %q, want the BOTH dependency after skipping the unresolved one", a.CorrectionReason)
	}
}

func TestApply_SingleSideDependencyDoesNotPromote(t *testing.T) {
	c := record("c.jar", "c", model.ClassClientOnly)
	a := record("a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "c", Side: model.SideClient})

	_, _, n := run(c, a)
	if n != 0 {
		t.Errorf("corrections = %d, want 0 (dependency is itself client-only)", n)
	}
}

func TestApply_ErrorRecordsExcluded(t *testing.T) {
	bad := record("bad.jar", "", model.ClassError,
		model.Dependency{ModID: "core", Side: model.SideBoth})
	u := record("u.jar", "u", model.ClassUniversal)
	a := record("a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "u", Side: model.SideClient})

	_, _, n := run(bad, u, a)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1", n)
	}
	if bad.Final != model.ClassError || bad.WasCorrected {
		t.Errorf("error record must never be corrected, got (%s, %v)", bad.Final, bad.WasCorrected)
	}
}

func TestApply_UniversalAndAPINeverDemoted(t *testing.T) {
	u := record("u.jar", "u", model.ClassUniversal,
		model.Dependency{ModID: "x", Side: model.SideClient})
	lib := record("lib.jar", "lib", model.ClassAPILibrary,
		model.Dependency{ModID: "x", Side: model.SideBoth})

	_, _, n := run(u, lib)
	if n != 0 {
		t.Fatalf("corrections = %d, want 0", n)
	}
	if u.Final != model.ClassUniversal || lib.Final != model.ClassAPILibrary {
		t.Error("non-single-side classifications must pass through unchanged")
	}
}

func TestApply_ChainCorrectsWhenDependencyPrecedes(t *testing.T) {
	// b is promoted via u; a is then promoted via b's already-updated
	// final classification, all in one forward sweep.
	u := record("1_u.jar", "u", model.ClassUniversal)
	b := record("2_b.jar", "b", model.ClassServerOnly,
		model.Dependency{ModID: "u", Side: model.SideClient})
	a := record("3_a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "b", Side: model.SideClient})

	_, _, n := run(u, b, a)
	if n != 2 {
		t.Fatalf("corrections = %d, want 2", n)
	}
	if a.Final != model.ClassUniversal {
		t.Errorf("a.Final = %s, want universal via corrected b", a.Final)
	}
}

func TestApply_SinglePassOrderDependence(t *testing.T) {
	// Same chain but a enumerates before b: a sees b still server-only
	// and is not corrected. The sweep is single-pass on purpose.
	a := record("1_a.jar", "a", model.ClassClientOnly,
		model.Dependency{ModID: "b", Side: model.SideClient})
	b := record("2_b.jar", "b", model.ClassServerOnly,
		model.Dependency{ModID: "u", Side: model.SideClient})
	u := record("3_u.jar", "u", model.ClassUniversal)

	_, _, n := run(a, b, u)
	if n != 1 {
		t.Fatalf("corrections = %d, want 1", n)
	}
	if a.WasCorrected {
		t.Error("a must not be corrected: b was still server-only when a was swept")
	}
	if b.Final != model.ClassUniversal {
		t.Errorf("b.Final = %s, want universal", b.Final)
	}
}

func TestApply_SecondRunMakesNoFurtherCorrections(t *testing.T) {
	u := record("1_u.jar", "u", model.ClassUniversal)
	b := record("2_b.jar", "b", model.ClassServerOnly,
		model.Dependency{ModID: "u", Side: model.SideClient})

	records, order, n := run(u, b)
	if n != 1 {
		t.Fatalf("first run corrections = %d, want 1", n)
	}

	index := map[string]string{"u": "1_u.jar", "b": "2_b.jar"}
	if again := Apply(order, records, index); again != 0 {
		t.Errorf("second run corrections = %d, want 0 (stable point)", again)
	}
	if b.Final != model.ClassUniversal {
		t.Errorf("b.Final = %s after second run, want universal", b.Final)
	}
}
