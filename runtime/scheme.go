package runtime

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"sync"

	"sigs.k8s.io/yaml"
)

// Scheme is a registry of released schema versions and their prototypes.
type Scheme struct {
	mu sync.RWMutex
	// allowUnknown allows objects of unknown versions to be created.
	// If no prototype matches a requested version, NewObject hands out a
	// Raw instead of failing.
	allowUnknown bool
	prototypes   map[Version]Versioned
}

// NewScheme creates a new registry.
func NewScheme(opts ...SchemeOption) *Scheme {
	scheme := &Scheme{
		prototypes: make(map[Version]Versioned),
	}
	for _, opt := range opts {
		opt(scheme)
	}
	return scheme
}

type SchemeOption func(*Scheme)

// WithAllowUnknown allows objects of unknown versions to be created.
func WithAllowUnknown() SchemeOption {
	return func(scheme *Scheme) {
		scheme.allowUnknown = true
	}
}

func (r *Scheme) Clone() *Scheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewScheme()
	clone.allowUnknown = r.allowUnknown
	maps.Copy(clone.prototypes, r.prototypes)
	return clone
}

// Register adds a prototype under the version it reports. A version tag is
// frozen forever once released, so re-registering an already known tag is an
// error.
func (r *Scheme) Register(prototype Versioned) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	version := prototype.GetVersion()
	if _, exists := r.prototypes[version]; exists {
		return fmt.Errorf("scene version %s is already registered", version)
	}
	r.prototypes[version] = prototype
	return nil
}

func (r *Scheme) MustRegister(prototype Versioned) {
	if err := r.Register(prototype); err != nil {
		panic(err)
	}
}

func (r *Scheme) IsRegistered(version Version) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.prototypes[version]
	return exists
}

// KnownVersions returns all registered version tags in ascending order.
func (r *Scheme) KnownVersions() []Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := make([]Version, 0, len(r.prototypes))
	for version := range r.prototypes {
		versions = append(versions, version)
	}
	slices.Sort(versions)
	return versions
}

// Highest returns the highest registered version tag, the canonical version
// of this build. The second return value is false for an empty scheme.
func (r *Scheme) Highest() (Version, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var highest Version
	for version := range r.prototypes {
		if version > highest {
			highest = version
		}
	}
	return highest, highest != 0
}

// NewObject creates a new zero instance of the scene type released under the
// given version. Unknown versions yield an *UnknownVersionError unless the
// scheme allows unknowns, in which case a Raw carrying the tag is returned.
func (r *Scheme) NewObject(version Version) (Versioned, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if proto, exists := r.prototypes[version]; exists {
		t := reflect.TypeOf(proto)
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		return reflect.New(t).Interface().(Versioned), nil
	}

	if r.allowUnknown {
		return &Raw{Version: version}, nil
	}

	var highest Version
	for known := range r.prototypes {
		if known > highest {
			highest = known
		}
	}
	return nil, &UnknownVersionError{Version: version, Highest: highest}
}

// Decode reads a serialized scene payload into the given object. The object
// must be of a registered version unless the scheme allows unknowns.
func (r *Scheme) Decode(data io.Reader, into Versioned) error {
	if !r.IsRegistered(into.GetVersion()) && !r.allowUnknown {
		return fmt.Errorf("%T is not of a registered scene version and cannot be decoded", into)
	}
	bytes, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("could not read data: %w", err)
	}
	if err := yaml.Unmarshal(bytes, into); err != nil {
		return fmt.Errorf("failed to unmarshal into %T: %w", into, err)
	}
	return nil
}

// Convert populates into from the given value. A *Raw source is unmarshalled
// from its payload after its version tag is checked against the registry;
// any other source must be of the exact same type as into and is copied.
func (r *Scheme) Convert(from any, into Versioned) error {
	if raw, ok := from.(*Raw); ok {
		if !r.IsRegistered(into.GetVersion()) && !r.allowUnknown {
			return fmt.Errorf("%T is not of a registered scene version and cannot be decoded", into)
		}
		if !r.IsRegistered(raw.Version) {
			var highest Version
			if h, ok := r.Highest(); ok {
				highest = h
			}
			return &UnknownVersionError{Version: raw.Version, Highest: highest}
		}
		if err := yaml.Unmarshal(raw.Data, into); err != nil {
			return fmt.Errorf("failed to unmarshal raw: %w", err)
		}
		return nil
	}

	intoValue := reflect.ValueOf(into)
	if intoValue.Kind() != reflect.Ptr || intoValue.IsNil() {
		return fmt.Errorf("into must be a non-nil pointer")
	}

	fromValue := reflect.ValueOf(from)
	if fromValue.Kind() == reflect.Ptr {
		fromValue = fromValue.Elem()
	}

	if !fromValue.IsValid() {
		return fmt.Errorf("from must be a non-nil pointer")
	}

	if fromValue.Type() != intoValue.Elem().Type() {
		return fmt.Errorf("from and into must be the same type, cannot convert from %s into %s",
			fromValue.Type(), intoValue.Elem().Type())
	}

	intoValue.Elem().Set(fromValue)
	return nil
}
