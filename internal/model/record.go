package model

// Dependency is one declared dependency of a mod, with the side the
// manifest requires it on. Immutable once parsed.
type Dependency struct {
	ModID string `json:"modId"`
	Side  Side   `json:"side"`
}

// ModRecord is the per-archive analysis result. Final starts equal to
// Initial; the corrector may move a single-side Final to universal but
// never demotes universal, api_library or error.
type ModRecord struct {
	Filename         string         `json:"filename"`
	ModID            string         `json:"modId,omitempty"`
	Dependencies     []Dependency   `json:"dependencies,omitempty"`
	Initial          Classification `json:"initialClassification"`
	InitialReason    string         `json:"initialReason"`
	Final            Classification `json:"finalClassification"`
	WasCorrected     bool           `json:"wasCorrected"`
	CorrectionReason string         `json:"correctionReason,omitempty"`
}
