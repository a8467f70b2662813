// Package classify turns manifest text, archive entry names and scan
// findings into an initial classification. The rules form an ordered
// chain: the first matching rule wins and carries a fixed reason
// string so every outcome in the report is auditable.
package classify

import (
	"strings"

	"modsort/internal/manifest"
	"modsort/internal/model"
	"modsort/internal/scan"
)

// Reason templates, one per decision branch.
const (
	ReasonDisplayTest     = "mods.toml explicitly declares displayTest = CLIENT_ONLY"
	ReasonExports         = "mods.toml defines an exports table"
	ReasonDescriptionAPI  = "description mentions 'API' or 'Library'"
	ReasonLogicalSide     = "two-sided code features detected (Level#isClientSide check)"
	ReasonBothFeatures    = "two-sided code features detected (client and server features present)"
	ReasonNoAssetsClient  = "no assets and only client-side code detected"
	ReasonNoAssetsServer  = "no assets and no client-side code signals"
	ReasonAssetsClient    = "assets present and client-side code detected"
	ReasonAssetsAPIFolder = "assets and api folder present without client-side code"
	ReasonAssetsFallback  = "assets present without explicit client-side code (likely a resource mod)"
)

// Initial classifies a single archive. Entries is the full entry-name
// list in archive order. The scanner is invoked lazily: manifest-level
// rules decide without touching compiled code.
func Initial(toml string, entries []string, scanArchive func() scan.Findings) (model.Classification, string) {
	if manifest.DeclaresClientOnlyDisplay(toml) {
		return model.ClassClientOnly, ReasonDisplayTest
	}
	if manifest.DeclaresExports(toml) {
		return model.ClassAPILibrary, ReasonExports
	}
	if desc := strings.ToLower(manifest.Description(toml)); desc != "" {
		if strings.Contains(desc, "api") || strings.Contains(desc, "library") {
			return model.ClassAPILibrary, ReasonDescriptionAPI
		}
	}

	findings := scanArchive()

	hasAssets := false
	hasAPIFolder := false
	for _, name := range entries {
		if !hasAssets && strings.HasPrefix(name, "assets/") {
			hasAssets = true
		}
		if !hasAPIFolder && strings.Contains(strings.ToLower(name), "/api/") {
			hasAPIFolder = true
		}
		if hasAssets && hasAPIFolder {
			break
		}
	}

	hasClientFeatures := findings[scan.SigDistExecutorClient] ||
		findings[scan.SigOnlyInClient] ||
		findings[scan.SigGenericClientRef] ||
		findings[scan.SigFMLEnvironmentDist]
	hasServerFeatures := findings[scan.SigDistExecutorServer] ||
		findings[scan.SigOnlyInServer] ||
		findings[scan.SigServerRef]
	hasLogicalSideCheck := findings[scan.SigLevelIsClientSide]

	if hasLogicalSideCheck || (hasClientFeatures && hasServerFeatures) {
		if hasLogicalSideCheck {
			return model.ClassUniversal, ReasonLogicalSide
		}
		return model.ClassUniversal, ReasonBothFeatures
	}

	if !hasAssets {
		if hasClientFeatures {
			return model.ClassClientOnly, ReasonNoAssetsClient
		}
		return model.ClassServerOnly, ReasonNoAssetsServer
	}

	if hasClientFeatures {
		return model.ClassUniversal, ReasonAssetsClient
	}
	if hasAPIFolder {
		return model.ClassAPILibrary, ReasonAssetsAPIFolder
	}
	return model.ClassUniversal, ReasonAssetsFallback
}
