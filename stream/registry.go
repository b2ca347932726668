// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stream

import (
	"fmt"

	"github.com/Fantom-foundation/Courier/go/common"
	"golang.org/x/exp/slices"
)

// ErrNoRegistry is reported when a named writeable is read through an
// input that was not wrapped with a registry. Polymorphic decoding is
// opt-in; see NewInputWithRegistry.
const ErrNoRegistry = common.ConstError("cannot read named writeable without a registry")

// NamedWriteable is implemented by members of polymorphic type families
// participating in generic serialization. Instances are identified on the
// wire by their name and reconstructed on the receiving side through a
// factory registered for their (category, name) pair.
type NamedWriteable interface {
	// Category identifies the family of types this writeable belongs to.
	Category() string

	// Name identifies this concrete type within its category. It is part
	// of the wire format and must be stable across versions.
	Name() string

	// WriteTo encodes the fields of this instance in a fixed order. The
	// factory registered for this type must consume exactly the bytes
	// written here; there is no length prefix guarding the payload.
	WriteTo(out *Output) error
}

// NamedWriteableFactory decodes an instance from an input positioned
// right after the instance's name.
type NamedWriteableFactory func(in *Input) (NamedWriteable, error)

// NamedWriteableRegistry maps (category, name) pairs to decoding
// factories. Registration is explicit and exhaustive; there is no
// reflective discovery of types.
type NamedWriteableRegistry struct {
	factories map[namedWriteableKey]NamedWriteableFactory
}

type namedWriteableKey struct {
	category string
	name     string
}

// NewNamedWriteableRegistry creates an empty registry.
func NewNamedWriteableRegistry() *NamedWriteableRegistry {
	return &NamedWriteableRegistry{
		factories: map[namedWriteableKey]NamedWriteableFactory{},
	}
}

// Register binds a factory to a (category, name) pair. Registering a nil
// factory or the same pair twice is an error.
func (r *NamedWriteableRegistry) Register(category, name string, factory NamedWriteableFactory) error {
	if factory == nil {
		return fmt.Errorf("missing factory for named writeable [%s] in category [%s]", name, category)
	}
	key := namedWriteableKey{category: category, name: name}
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("named writeable [%s] is already registered in category [%s]", name, category)
	}
	r.factories[key] = factory
	return nil
}

// Names lists all names registered in the given category in sorted order.
func (r *NamedWriteableRegistry) Names(category string) []string {
	res := make([]string, 0, len(r.factories))
	for key := range r.factories {
		if key.category == category {
			res = append(res, key.name)
		}
	}
	slices.Sort(res)
	return res
}

// WriteNamedWriteable writes the name of the instance followed by its own
// payload. The receiving side resolves the payload decoder through a
// registry using the category it expects at this stream position.
func (o *Output) WriteNamedWriteable(value NamedWriteable) error {
	if err := o.WriteString(value.Name()); err != nil {
		return err
	}
	return value.WriteTo(o)
}

// WriteNamedWriteableList writes a count-prefixed sequence of named
// writeables, each in the shape produced by WriteNamedWriteable.
func WriteNamedWriteableList[T NamedWriteable](out *Output, values []T) error {
	return WriteArray(out, values, func(out *Output, value T) error {
		return out.WriteNamedWriteable(value)
	})
}

// ReadNamedWriteable reads an instance of the given category written by
// WriteNamedWriteable. The input must have been created with a registry.
//
// A factory yielding nil, or an instance reporting a different name than
// the one it was resolved by, is a registration bug, not a data error,
// and causes a panic.
func (in *Input) ReadNamedWriteable(category string) (NamedWriteable, error) {
	if in.registry == nil {
		return nil, ErrNoRegistry
	}
	name, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	factory, exists := in.registry.factories[namedWriteableKey{category: category, name: name}]
	if !exists {
		return nil, fmt.Errorf("unknown named writeable [%s] in category [%s]", name, category)
	}
	value, err := factory(in)
	if err != nil {
		return nil, err
	}
	if value == nil {
		panic(fmt.Sprintf("factory for named writeable [%s] in category [%s] returned nil which is not allowed", name, category))
	}
	if value.Name() != name {
		panic(fmt.Sprintf("named writeable [%s] claims to have a different name [%s] than it was read from", name, value.Name()))
	}
	return value, nil
}

// ReadNamedWriteableList reads a sequence written by
// WriteNamedWriteableList.
func ReadNamedWriteableList(in *Input, category string) ([]NamedWriteable, error) {
	return ReadArray(in, func(in *Input) (NamedWriteable, error) {
		return in.ReadNamedWriteable(category)
	})
}
