package geocode

import (
	"strconv"
	"strings"
)

// Region names as used in the company record
const (
	RegionBrussels = "Bruxelles"
	RegionFlanders = "Flandre"
	RegionWallonia = "Wallonie"
)

// FindRegion returns the Belgian region of a postal code, or "" when the value is
// not a Belgian postal code (outside 1000-9992 or not a number).
func FindRegion(postalCode string) string {
	postal, err := strconv.Atoi(strings.TrimSpace(postalCode))
	if err != nil || postal < 1000 || postal > 9992 {
		return ""
	}
	switch {
	case postal < 1300:
		return RegionBrussels
	case postal >= 1500 && postal < 4000, postal >= 8000:
		return RegionFlanders
	default:
		return RegionWallonia
	}
}
