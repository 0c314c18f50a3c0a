package v2

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

// JSONSchema contains the embedded JSON schema for version 2 scenes.
//
//go:embed resources/scene-v2.schema.json
var JSONSchema []byte

// GetJSONSchema is a singleton that compiles the JSON schema once and caches it for reuse.
var GetJSONSchema = sync.OnceValues[*jsonschema.Schema, error](func() (*jsonschema.Schema, error) {
	return compile(JSONSchema)
})

func compile(data []byte) (*jsonschema.Schema, error) {
	const schemaFile = "resources/scene-v2.schema.json"
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

// Validate checks all structural invariants of a version 2 scene: positive
// canvas dimensions, exact grid sizes, unique layer ids, a non-empty palette
// and palette references that resolve. It returns nil for a schema-valid
// scene and a *runtime.SchemaViolationError otherwise.
func Validate(s *Scene) error {
	var violations []string

	if s.Canvas.Columns == 0 || s.Canvas.Rows == 0 {
		violations = append(violations,
			fmt.Sprintf("canvas dimensions must be positive, got %dx%d", s.Canvas.Columns, s.Canvas.Rows))
	}

	if len(s.Palette) == 0 {
		violations = append(violations, "palette must contain the default color at index 0")
	}

	seen := make(map[uint32]int, len(s.Layers))
	for i, layer := range s.Layers {
		if previous, duplicate := seen[layer.ID]; duplicate {
			violations = append(violations,
				fmt.Sprintf("layer id %d appears at indices %d and %d", layer.ID, previous, i))
		} else {
			seen[layer.ID] = i
		}

		if layer.Width == 0 || layer.Height == 0 {
			violations = append(violations,
				fmt.Sprintf("layer %d dimensions must be positive, got %dx%d", i, layer.Width, layer.Height))
		}
		if expected := int(layer.Width) * int(layer.Height); len(layer.Cells) != expected {
			violations = append(violations,
				fmt.Sprintf("layer %d grid has %d cells, expected %d (%dx%d)",
					i, len(layer.Cells), expected, layer.Width, layer.Height))
		}

		violations = append(violations, validateReferences(i, layer.Cells, len(s.Palette))...)
	}

	if len(violations) > 0 {
		return runtime.NewSchemaViolation(Version, violations...)
	}
	return nil
}

// validateReferences checks that every cell's color reference resolves to a
// palette entry. A dangling reference is rejected, never silently coerced.
func validateReferences(index int, cells []Cell, paletteLen int) []string {
	var violations []string
	for c, cell := range cells {
		if int(cell.Foreground) >= paletteLen {
			violations = append(violations,
				fmt.Sprintf("layer %d cell %d foreground references palette entry %d of %d",
					index, c, cell.Foreground, paletteLen))
		}
		if int(cell.Background) >= paletteLen {
			violations = append(violations,
				fmt.Sprintf("layer %d cell %d background references palette entry %d of %d",
					index, c, cell.Background, paletteLen))
		}
	}
	return violations
}

// ValidateRawJSON validates raw JSON data against the version 2 schema.
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

// ValidateRawYAML validates raw YAML data against the version 2 schema.
func ValidateRawYAML(raw []byte) error {
	data, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return fmt.Errorf("failed to convert yaml to json: %w", err)
	}
	return ValidateRawJSON(data)
}
