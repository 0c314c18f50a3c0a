// Package attach associates scene values with identifiers of an external
// entity framework. The association is keyed by the value's Go type, so each
// top-level versioned type attaches to an entity at most once at a time and
// is retrieved by type. Attachment is a pure association: the registry owns
// neither the entity lifecycle nor the value.
package attach

import (
	"fmt"
	"reflect"
	"sync"
)

type key[E comparable] struct {
	typ    reflect.Type
	entity E
}

// Registry maps (value type, entity identifier) pairs to values. The entity
// identifier type is supplied by the external framework, any comparable type
// works. The zero Registry is not usable, construct with NewRegistry.
type Registry[E comparable] struct {
	mu     sync.RWMutex
	values map[key[E]]any
}

func NewRegistry[E comparable]() *Registry[E] {
	return &Registry[E]{
		values: make(map[key[E]]any),
	}
}

// Attach associates value with the entity under the value's type. Attaching
// a second value of the same type to the same entity is an error; use
// Replace for overwrite semantics.
func (r *Registry[E]) Attach(entity E, value any) error {
	if value == nil {
		return fmt.Errorf("cannot attach nil value")
	}
	k := key[E]{typ: reflect.TypeOf(value), entity: entity}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[k]; exists {
		return fmt.Errorf("entity %v already has a %s attached", entity, k.typ)
	}
	r.values[k] = value
	return nil
}

// Replace associates value with the entity under the value's type,
// overwriting any previous attachment of that type.
func (r *Registry[E]) Replace(entity E, value any) error {
	if value == nil {
		return fmt.Errorf("cannot attach nil value")
	}
	k := key[E]{typ: reflect.TypeOf(value), entity: entity}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[k] = value
	return nil
}

// Get retrieves the value of type T attached to the entity.
// The second return value is false if the entity has no T attached.
func Get[T any, E comparable](r *Registry[E], entity E) (T, bool) {
	k := key[E]{typ: reflect.TypeOf((*T)(nil)).Elem(), entity: entity}

	r.mu.RLock()
	defer r.mu.RUnlock()
	value, exists := r.values[k]
	if !exists {
		var zero T
		return zero, false
	}
	return value.(T), true
}

// Detach removes the value of type T attached to the entity.
// It reports whether an attachment existed.
func Detach[T any, E comparable](r *Registry[E], entity E) bool {
	k := key[E]{typ: reflect.TypeOf((*T)(nil)).Elem(), entity: entity}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[k]; !exists {
		return false
	}
	delete(r.values, k)
	return true
}

// DetachAll removes every attachment of the entity, typically when the
// external framework destroys it. It returns the number of values detached.
func (r *Registry[E]) DetachAll(entity E) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for k := range r.values {
		if k.entity == entity {
			delete(r.values, k)
			removed++
		}
	}
	return removed
}
