package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// Version is a "major.minor" deliverable version number compared numerically
// component by component, so "1.10" exceeds "1.9".
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses a "major.minor" string.
func ParseVersion(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("version %q must match major.minor (e.g. 1.0)", s)
	}
	parts := strings.SplitN(s, ".", 2)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("parsing major component of %q: %w", s, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("parsing minor component of %q: %w", s, err)
	}
	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0, or 1 under (major, minor) numeric ordering.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// DeliverableVersion is an immutable snapshot of a sprint deliverable's
// content at the moment a version was cut. Rows are append-only: nothing in
// the system updates or deletes one, which is the audit guarantee clients
// rely on when disputing delivered work.
type DeliverableVersion struct {
	ID                  string
	SprintDeliverableID string
	Version             Version
	Content             string
	Notes               string
	TypeData            string
	Author              string
	CreatedAt           time.Time
}
