package model

import "strings"

type Side string

const (
	SideClient Side = "CLIENT"
	SideServer Side = "SERVER"
	SideBoth   Side = "BOTH"
)

func (s Side) String() string {
	return string(s)
}

// ParseSide normalizes a manifest side value case-insensitively.
// Anything empty or unrecognized defaults to BOTH, matching how the
// loader treats an undeclared side.
func ParseSide(s string) Side {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CLIENT":
		return SideClient
	case "SERVER":
		return SideServer
	default:
		return SideBoth
	}
}
