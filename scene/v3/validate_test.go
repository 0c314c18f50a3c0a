package v3_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	v3 "github.com/almindor/texel-types/scene/v3"
)

func TestValidateRawJSON(t *testing.T) {
	r := require.New(t)

	s := v3.New(4, 2)
	r.NoError(s.AppendLayer(v3.NewLayer(1, 4, 2)))
	s.SetBookmark(0, v3.Offset{X: 1, Y: 1})
	r.NoError(s.AddAnimation("blink"))
	r.NoError(s.AppendFrame("blink", 1, 100))

	raw, err := json.Marshal(s)
	r.NoError(err)
	r.NoError(v3.ValidateRawJSON(raw))

	r.Error(v3.ValidateRawJSON([]byte(`{"version": 3, "layers": [], "palette": []}`)))
}

func TestValidateRawYAML(t *testing.T) {
	require.NoError(t, v3.ValidateRawYAML([]byte(`
version: 3
canvas:
  columns: 2
  rows: 1
layers: []
palette: [248]
`)))
}
