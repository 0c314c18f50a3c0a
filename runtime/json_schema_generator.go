package runtime

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// GenerateJSONSchemaForVersioned takes a versioned scene type and uses
// reflection to generate a JSON Schema representation for it. The version tag
// is represented as it appears on the wire, a non-negative integer.
func GenerateJSONSchemaForVersioned(obj Versioned) ([]byte, error) {
	if obj == nil {
		return nil, fmt.Errorf("cannot generate JSON schema for nil object")
	}

	if _, ok := obj.(*Raw); ok {
		return nil, fmt.Errorf("raw object type is unsupported")
	}

	r := &jsonschema.Reflector{
		Mapper: func(i reflect.Type) *jsonschema.Schema {
			if i == reflect.TypeOf(Version(0)) {
				return &jsonschema.Schema{
					Type:    "integer",
					Minimum: "0",
				}
			}
			return nil
		},
	}

	schema, err := r.ReflectFromType(reflect.TypeOf(obj)).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to create json schema for object: %w", err)
	}

	return schema, nil
}
