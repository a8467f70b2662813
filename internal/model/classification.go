package model

import (
	"fmt"
	"strings"
)

type Classification string

const (
	ClassUnknown    Classification = "unknown"
	ClassClientOnly Classification = "client_only"
	ClassServerOnly Classification = "server_only"
	ClassUniversal  Classification = "universal"
	ClassAPILibrary Classification = "api_library"
	ClassError      Classification = "error"
)

func (c Classification) String() string {
	return string(c)
}

// Label returns the human-readable form used in reports.
func (c Classification) Label() string {
	switch c {
	case ClassClientOnly:
		return "Client-only"
	case ClassServerOnly:
		return "Server-only"
	case ClassUniversal:
		return "Universal (both sides)"
	case ClassAPILibrary:
		return "API / Library"
	case ClassError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Folder maps a classification to its archival folder name. Unknown
// values land in the error bucket rather than failing the copy phase.
func (c Classification) Folder() string {
	switch c {
	case ClassClientOnly:
		return "1_Client_Side"
	case ClassServerOnly:
		return "2_Server_Side"
	case ClassUniversal:
		return "3_Both_Universal"
	case ClassAPILibrary:
		return "4_API_Library"
	default:
		return "5_Errors"
	}
}

// SingleSide reports whether the classification is eligible for
// dependency correction.
func (c Classification) SingleSide() bool {
	return c == ClassClientOnly || c == ClassServerOnly
}

// ParseClassification parses a classification string case-insensitively.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(s) {
	case "client_only":
		return ClassClientOnly, nil
	case "server_only":
		return ClassServerOnly, nil
	case "universal":
		return ClassUniversal, nil
	case "api_library":
		return ClassAPILibrary, nil
	case "error":
		return ClassError, nil
	default:
		return ClassUnknown, fmt.Errorf("invalid classification: %s", s)
	}
}
