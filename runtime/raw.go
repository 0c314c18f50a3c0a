package runtime

import (
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Raw is the serialized form of a versioned scene: the version tag plus the
// canonicalized payload it was tagged on. It lets callers carry values of
// versions they cannot interpret without losing a single byte of them.
type Raw struct {
	Version Version `json:"version"`
	Data    []byte  `json:"-"`
}

func (u *Raw) String() string {
	return string(u.Data)
}

var _ interface {
	json.Marshaler
	json.Unmarshaler
	Versioned
} = &Raw{}

func (u *Raw) GetVersion() Version {
	return u.Version
}

func (u *Raw) DeepCopyVersioned() Versioned {
	data := make([]byte, len(u.Data))
	copy(data, u.Data)
	return &Raw{Version: u.Version, Data: data}
}

func (u *Raw) MarshalJSON() ([]byte, error) {
	return u.Data, nil
}

func (u *Raw) UnmarshalJSON(data []byte) error {
	t := &struct {
		Version *Version `json:"version"`
	}{}
	if err := json.Unmarshal(data, t); err != nil {
		return fmt.Errorf("could not unmarshal data into raw: %w", err)
	}
	if t.Version == nil {
		return fmt.Errorf("could not unmarshal data into raw: missing version tag")
	}
	u.Version = *t.Version
	u.Data = data

	var err error
	u.Data, err = jsoncanonicalizer.Transform(u.Data)
	if err != nil {
		return fmt.Errorf("could not canonicalize data: %w", err)
	}

	return nil
}
