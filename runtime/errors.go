package runtime

import (
	"fmt"
	"strings"
)

// UnknownVersionError reports a version tag outside the range known to this
// build. It is distinct from a validation failure on a known tag: a stream
// carrying an unknown tag is never guessed at or partially decoded.
type UnknownVersionError struct {
	// Version is the offending tag.
	Version Version
	// Highest is the highest tag registered with the scheme that rejected
	// the value, zero if the scheme was empty.
	Highest Version
}

func (e *UnknownVersionError) Error() string {
	if e.Highest == 0 {
		return fmt.Sprintf("unknown scene version %s", e.Version)
	}
	return fmt.Sprintf("unknown scene version %s, highest known version is %s", e.Version, e.Highest)
}

// SchemaViolationError reports a structurally invalid value for a known
// version: grid/dimension mismatches, dangling palette references, duplicate
// layer ids. Violating values are rejected outright, never auto-repaired,
// since repair would mask producer bugs.
type SchemaViolationError struct {
	Version    Version
	Violations []string
}

// NewSchemaViolation builds a SchemaViolationError for the given version.
func NewSchemaViolation(version Version, violations ...string) *SchemaViolationError {
	return &SchemaViolationError{Version: version, Violations: violations}
}

func (e *SchemaViolationError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("schema violation for scene version %s", e.Version)
	}
	return fmt.Sprintf("schema violation for scene version %s:\n- %s",
		e.Version, strings.Join(e.Violations, "\n- "))
}
