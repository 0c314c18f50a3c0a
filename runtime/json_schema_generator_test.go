package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJSONSchemaForVersioned(t *testing.T) {
	schema, err := GenerateJSONSchemaForVersioned(&testScene{})
	require.NoError(t, err)
	assert.Contains(t, string(schema), `"value"`)
}

func TestGenerateJSONSchemaForVersioned_Rejects(t *testing.T) {
	_, err := GenerateJSONSchemaForVersioned(nil)
	assert.Error(t, err)

	_, err = GenerateJSONSchemaForVersioned(&Raw{})
	assert.Error(t, err)
}
