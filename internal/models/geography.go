// ABOUTME: Geography kinds used to scope a wage lookup
// ABOUTME: Defines National, State and Metropolitan plus the national sentinel
package models

import (
	"fmt"
	"strings"
)

// GeographyKind is the granularity of geographic aggregation
type GeographyKind string

const (
	// National - the single U.S. aggregate row per occupation
	National GeographyKind = "National"

	// State - rows matched on PRIM_STATE
	State GeographyKind = "State"

	// Metropolitan - rows matched on AREA_TITLE
	Metropolitan GeographyKind = "Metropolitan"
)

// NationalAreaTitle is the AREA_TITLE value of national aggregate rows
const NationalAreaTitle = "U.S."

// NationalGeography is the geography value shown for a National selection
const NationalGeography = "National"

// GeographyKinds lists the supported kinds in display order
func GeographyKinds() []GeographyKind {
	return []GeographyKind{National, State, Metropolitan}
}

// Valid reports whether k is one of the supported kinds
func (k GeographyKind) Valid() bool {
	switch k {
	case National, State, Metropolitan:
		return true
	}
	return false
}

func (k GeographyKind) String() string {
	return string(k)
}

// ParseGeographyKind converts user input such as "state" or "METROPOLITAN"
// into a GeographyKind.
func ParseGeographyKind(s string) (GeographyKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range GeographyKinds() {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	// "metro" is accepted as shorthand on the command line
	if strings.EqualFold(s, "metro") {
		return Metropolitan, nil
	}
	return "", fmt.Errorf("unknown geography kind %q (want National, State or Metropolitan)", s)
}
