package runtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRaw_UnmarshalJSON(t *testing.T) {
	r := require.New(t)

	raw := &Raw{}
	r.NoError(json.Unmarshal([]byte(`{"value": "foo", "version": 2}`), raw))
	r.Equal(Version(2), raw.GetVersion())
	// payload is canonicalized, so key order is stable
	r.JSONEq(`{"value":"foo","version":2}`, string(raw.Data))

	data, err := json.Marshal(raw)
	r.NoError(err)
	r.Equal(string(raw.Data), string(data))
}

func TestRaw_UnmarshalJSON_MissingVersion(t *testing.T) {
	raw := &Raw{}
	err := json.Unmarshal([]byte(`{"value": "foo"}`), raw)
	require.ErrorContains(t, err, "missing version tag")
}

func TestRaw_DeepCopy(t *testing.T) {
	r := require.New(t)

	raw := &Raw{Version: 3, Data: []byte(`{"version":3}`)}
	clone := raw.DeepCopyVersioned().(*Raw)
	r.Equal(raw.Version, clone.Version)
	r.Equal(raw.Data, clone.Data)

	clone.Data[0] = 'x'
	r.NotEqual(raw.Data, clone.Data)
}
