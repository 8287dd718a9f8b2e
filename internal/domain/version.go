package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a three-part release number. A prerelease sorts just below the
// stable release with the same numbers.
type Version struct {
	Major        uint32 `json:"major" yaml:"major"`
	Minor        uint32 `json:"minor" yaml:"minor"`
	Patch        uint32 `json:"patch" yaml:"patch"`
	IsPrerelease bool   `json:"is_prerelease" yaml:"is_prerelease"`
}

func NewVersion(major, minor, patch uint32, prerelease bool) Version {
	return Version{Major: major, Minor: minor, Patch: patch, IsPrerelease: prerelease}
}

// ParseVersion accepts an optional leading v/V followed by one to three
// dot-separated numbers; missing groups default to zero. The result is never
// a prerelease.
func ParseVersion(s string) (Version, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &ParseError{Field: "version", Msg: "cannot parse empty version"}
	}
	if s[0] == 'v' || s[0] == 'V' {
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, &ParseError{Field: "version", Line: raw, Msg: "invalid version format"}
	}

	var nums [3]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return Version{}, &ParseError{
				Field: "version",
				Line:  raw,
				Msg:   fmt.Sprintf("invalid %s component", componentNames[i]),
				Err:   err,
			}
		}
		nums[i] = uint32(n)
	}

	return NewVersion(nums[0], nums[1], nums[2], false), nil
}

var componentNames = [3]string{"major", "minor", "patch"}

// Compare returns -1, 0 or 1. Numbers compare lexicographically; at equal
// numbers a stable release is greater than a prerelease.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpUint(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpUint(v.Minor, o.Minor)
	case v.Patch != o.Patch:
		return cmpUint(v.Patch, o.Patch)
	case v.IsPrerelease == o.IsPrerelease:
		return 0
	case v.IsPrerelease:
		return -1
	default:
		return 1
	}
}

func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

func (v Version) IsNewerThan(o Version) bool { return v.Compare(o) > 0 }

func (v Version) String() string {
	if v.IsPrerelease {
		return fmt.Sprintf("%d.%d.%d-pre", v.Major, v.Minor, v.Patch)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// SameVersion treats two absent versions as equal.
func SameVersion(a, b *Version) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func cmpUint(a, b uint32) int {
	if a < b {
		return -1
	}
	return 1
}
