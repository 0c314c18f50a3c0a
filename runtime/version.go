package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the integer discriminant identifying a released scene schema.
// Tags are strictly increasing across releases and are never reused, so a
// build that knows version K can decode and migrate any persisted stream
// whose tag is at most K.
type Version uint32

// VersionFromString parses a version in the formats:
// - "3" (bare tag)
// - "v3" (prefixed tag)
func VersionFromString(s string) (Version, error) {
	trimmed := strings.TrimPrefix(s, "v")
	if trimmed == "" {
		return 0, fmt.Errorf("invalid version %q, missing tag", s)
	}
	tag, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version(tag), nil
}

// String returns the formatted version string, e.g. "v2".
func (v Version) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Versioned is any scene value defined by a released schema version.
type Versioned interface {
	// GetVersion returns the schema version the value conforms to.
	GetVersion() Version
	DeepCopyVersioned() Versioned
}
