package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"sigs.k8s.io/yaml"

	"github.com/almindor/texel-types/runtime"
)

// JSONSchema contains the embedded JSON schema for version 1 scenes.
//
//go:embed resources/scene-v1.schema.json
var JSONSchema []byte

// GetJSONSchema is a singleton that compiles the JSON schema once and caches it for reuse.
var GetJSONSchema = sync.OnceValues[*jsonschema.Schema, error](func() (*jsonschema.Schema, error) {
	return compile(JSONSchema)
})

func compile(data []byte) (*jsonschema.Schema, error) {
	const schemaFile = "resources/scene-v1.schema.json"
	c := jsonschema.NewCompiler()
	unmarshaler, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	if err := c.AddResource(schemaFile, unmarshaler); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}
	sch, err := c.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

// Validate checks all structural invariants of a version 1 scene: positive
// canvas dimensions, exact grid sizes and unique layer ids. It returns nil
// for a schema-valid scene and a *runtime.SchemaViolationError otherwise.
// A value that validates is guaranteed to upgrade without failure.
func Validate(s *Scene) error {
	var violations []string

	if s.Canvas.Columns == 0 || s.Canvas.Rows == 0 {
		violations = append(violations,
			fmt.Sprintf("canvas dimensions must be positive, got %dx%d", s.Canvas.Columns, s.Canvas.Rows))
	}

	seen := make(map[uint32]int, len(s.Layers))
	for i, layer := range s.Layers {
		if previous, duplicate := seen[layer.ID]; duplicate {
			violations = append(violations,
				fmt.Sprintf("layer id %d appears at indices %d and %d", layer.ID, previous, i))
		} else {
			seen[layer.ID] = i
		}

		violations = append(violations, validateGrid(i, layer.Width, layer.Height, len(layer.Cells))...)
	}

	if len(violations) > 0 {
		return runtime.NewSchemaViolation(Version, violations...)
	}
	return nil
}

// validateGrid checks the fixed width*height contract of a layer grid.
// Shared shape across all released versions, so the message format is stable.
func validateGrid(index int, width, height uint16, cells int) []string {
	var violations []string
	if width == 0 || height == 0 {
		violations = append(violations,
			fmt.Sprintf("layer %d dimensions must be positive, got %dx%d", index, width, height))
	}
	if expected := int(width) * int(height); cells != expected {
		violations = append(violations,
			fmt.Sprintf("layer %d grid has %d cells, expected %d (%dx%d)", index, cells, expected, width, height))
	}
	return violations
}

// ValidateRawJSON validates raw JSON data against the version 1 schema.
func ValidateRawJSON(raw []byte) error {
	mm := map[string]any{}
	if err := json.Unmarshal(raw, &mm); err != nil {
		return fmt.Errorf("failed to unmarshal scene: %w", err)
	}

	schema, err := GetJSONSchema()
	if err != nil {
		return fmt.Errorf("failed to get schema: %w", err)
	}

	return schema.Validate(mm)
}

// ValidateRawYAML validates raw YAML data against the version 1 schema.
func ValidateRawYAML(raw []byte) error {
	data, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return fmt.Errorf("failed to convert yaml to json: %w", err)
	}
	return ValidateRawJSON(data)
}
