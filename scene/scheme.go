package scene

import (
	"fmt"

	"github.com/almindor/texel-types/runtime"
	v1 "github.com/almindor/texel-types/scene/v1"
	v2 "github.com/almindor/texel-types/scene/v2"
	v3 "github.com/almindor/texel-types/scene/v3"
)

// CanonicalVersion is the highest version known to this build, the
// application's working representation.
const CanonicalVersion = v3.Version

// Scheme knows every released scene version.
var Scheme = runtime.NewScheme()

func init() {
	MustAddToScheme(Scheme)
}

func MustAddToScheme(scheme *runtime.Scheme) {
	v1.MustAddToScheme(scheme)
	v2.MustAddToScheme(scheme)
	v3.MustAddToScheme(scheme)
}

// As unwraps a versioned scene as the concrete schema type T. A value of any
// other version yields a *runtime.SchemaViolationError; no conversion is
// attempted, use Migrate for that.
func As[T runtime.Versioned](value runtime.Versioned) (T, error) {
	if concrete, ok := value.(T); ok {
		return concrete, nil
	}
	var zero T
	return zero, runtime.NewSchemaViolation(value.GetVersion(),
		fmt.Sprintf("scene is version %s, not the requested %s", value.GetVersion(), zero.GetVersion()))
}

// Validate checks the structural invariants of a scene of any released
// version. A *runtime.Raw yields an *runtime.UnknownVersionError, distinct
// from a validation failure on a known version.
func Validate(value runtime.Versioned) error {
	switch s := value.(type) {
	case *v1.Scene:
		return v1.Validate(s)
	case *v2.Scene:
		return v2.Validate(s)
	case *v3.Scene:
		return v3.Validate(s)
	default:
		return &runtime.UnknownVersionError{Version: value.GetVersion(), Highest: CanonicalVersion}
	}
}
