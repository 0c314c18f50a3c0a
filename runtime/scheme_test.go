package runtime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type testScene struct {
	Value string `json:"value"`
}

func (t *testScene) GetVersion() Version {
	return 1
}

func (t *testScene) DeepCopyVersioned() Versioned {
	return &testScene{Value: t.Value}
}

func TestScheme_Register(t *testing.T) {
	r := require.New(t)
	scheme := NewScheme()

	r.NoError(scheme.Register(&testScene{}))
	r.True(scheme.IsRegistered(1))
	r.False(scheme.IsRegistered(2))

	err := scheme.Register(&testScene{})
	r.ErrorContains(err, "already registered")

	r.Equal([]Version{1}, scheme.KnownVersions())
	highest, ok := scheme.Highest()
	r.True(ok)
	r.Equal(Version(1), highest)
}

func TestScheme_Highest_Empty(t *testing.T) {
	_, ok := NewScheme().Highest()
	require.False(t, ok)
}

func TestScheme_NewObject(t *testing.T) {
	r := require.New(t)
	scheme := NewScheme()
	scheme.MustRegister(&testScene{})

	obj, err := scheme.NewObject(1)
	r.NoError(err)
	r.IsType(&testScene{}, obj)

	_, err = scheme.NewObject(2)
	var unknown *UnknownVersionError
	r.ErrorAs(err, &unknown)
	r.Equal(Version(2), unknown.Version)
	r.Equal(Version(1), unknown.Highest)
}

func TestScheme_NewObject_AllowUnknown(t *testing.T) {
	r := require.New(t)
	scheme := NewScheme(WithAllowUnknown())

	obj, err := scheme.NewObject(9)
	r.NoError(err)
	r.IsType(&Raw{}, obj)
	r.Equal(Version(9), obj.GetVersion())
}

func TestScheme_Convert_From_Raw(t *testing.T) {
	r := require.New(t)
	scheme := NewScheme()
	scheme.MustRegister(&testScene{})

	raw := &Raw{Version: 1, Data: []byte(`{"version":1,"value":"foo"}`)}

	parsed := &testScene{}
	r.NoError(scheme.Convert(raw, parsed))
	r.Equal("foo", parsed.Value)

	r.NoError(scheme.Convert(&testScene{Value: "bar"}, parsed))
	r.Equal("bar", parsed.Value)

	parsed2, err := scheme.Clone().NewObject(1)
	r.NoError(err)
	r.NoError(scheme.Decode(bytes.NewReader(raw.Data), parsed2))
	r.Equal("foo", parsed2.(*testScene).Value)
}

func TestScheme_Convert_Unknown_Raw_Version(t *testing.T) {
	r := require.New(t)
	scheme := NewScheme()
	scheme.MustRegister(&testScene{})

	raw := &Raw{Version: 5, Data: []byte(`{"version":5}`)}
	err := scheme.Convert(raw, &testScene{})

	var unknown *UnknownVersionError
	r.ErrorAs(err, &unknown)
	r.Equal(Version(5), unknown.Version)
}
