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
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// ErrMapNotSorted is reported when a map that is required to iterate in a
// key-sorted order turns out not to be sorted.
const ErrMapNotSorted = common.ConstError("map is not sorted by its keys, cannot write it with consistent order")

// WriteOptional writes a presence flag byte followed by the value if the
// input is non-nil. An absent value occupies exactly one byte.
func WriteOptional[T any](out *Output, value *T, write func(*Output, T) error) error {
	if value == nil {
		return out.WriteBool(false)
	}
	if err := out.WriteBool(true); err != nil {
		return err
	}
	return write(out, *value)
}

// ReadOptional reads a value written by WriteOptional, returning nil if
// the value was absent.
func ReadOptional[T any](in *Input, read func(*Input) (T, error)) (*T, error) {
	present, err := in.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	value, err := read(in)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// WriteArray writes the element count as a variable-length integer
// followed by the elements in order. An empty or nil slice writes a
// count of zero.
func WriteArray[T any](out *Output, values []T, write func(*Output, T) error) error {
	if err := out.WriteVInt(int32(len(values))); err != nil {
		return err
	}
	for _, value := range values {
		if err := write(out, value); err != nil {
			return err
		}
	}
	return nil
}

// ReadArray reads a sequence written by WriteArray. The declared element
// count is validated against the remaining input before the result slice
// is allocated.
func ReadArray[T any](in *Input, read func(*Input) (T, error)) ([]T, error) {
	size, err := in.readSize()
	if err != nil {
		return nil, err
	}
	res := make([]T, 0, size)
	for i := 0; i < size; i++ {
		value, err := read(in)
		if err != nil {
			return nil, err
		}
		res = append(res, value)
	}
	return res, nil
}

// WriteMap writes the entry count as a variable-length integer followed
// by key/value pairs in the map's iteration order. The resulting byte
// sequence is not deterministic across encodings of equal maps; use
// WriteMapWithConsistentOrder where byte-identical output matters.
func WriteMap[V any](out *Output, m map[string]V, write func(*Output, V) error) error {
	if err := out.WriteVInt(int32(len(m))); err != nil {
		return err
	}
	for key, value := range m {
		if err := out.WriteString(key); err != nil {
			return err
		}
		if err := write(out, value); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap reads a mapping written by WriteMap or
// WriteMapWithConsistentOrder. Entry order is not retained.
func ReadMap[V any](in *Input, read func(*Input) (V, error)) (map[string]V, error) {
	size, err := in.readSize()
	if err != nil {
		return nil, err
	}
	res := make(map[string]V, size)
	for i := 0; i < size; i++ {
		key, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		value, err := read(in)
		if err != nil {
			return nil, err
		}
		res[key] = value
	}
	return res, nil
}

// WriteMapWithConsistentOrder writes a mapping with a deterministic byte
// image: entries are emitted in ascending key order, so two maps holding
// the same pairs encode identically no matter whether their comparator
// sorts ascending or descending. The input must iterate in an order
// sorted by key in one of the two directions; any other iteration order
// fails with ErrMapNotSorted. The encoding is readable by ReadMap.
func WriteMapWithConsistentOrder[V any](out *Output, m common.Map[string, V], write func(*Output, V) error) error {
	var entries []common.MapEntry[string, V]
	if sorted, ok := m.(*common.SortedMap[string, V]); ok {
		// the entries may be reversed below, so the backing list of the
		// source map must not be shared
		entries = slices.Clone(sorted.GetEntries())
	} else {
		entries = make([]common.MapEntry[string, V], 0, m.Size())
		m.ForEach(func(key string, value V) {
			entries = append(entries, common.MapEntry[string, V]{Key: key, Val: value})
		})
	}

	ascending, descending := true, true
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key < entries[i].Key {
			descending = false
		} else if entries[i-1].Key > entries[i].Key {
			ascending = false
		}
	}
	if !ascending && !descending {
		return ErrMapNotSorted
	}
	if !ascending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	if err := out.WriteVInt(int32(len(entries))); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := out.WriteString(entry.Key); err != nil {
			return err
		}
		if err := write(out, entry.Val); err != nil {
			return err
		}
	}
	return nil
}

// WriteEnum writes a member of a closed, ordered value set as its
// variable-length encoded ordinal.
func WriteEnum[E constraints.Integer](out *Output, value E) error {
	return out.WriteVInt(int32(value))
}

// ReadEnum reads a member of a closed value set written by WriteEnum.
// The decoded ordinal must index into the given complete, ordered list of
// members; out-of-range ordinals are a format error naming the set type.
func ReadEnum[E constraints.Integer](in *Input, values []E) (E, error) {
	var zero E
	ordinal, err := in.ReadVInt()
	if err != nil {
		return zero, err
	}
	if ordinal < 0 || int64(ordinal) >= int64(len(values)) {
		return zero, fmt.Errorf("unknown %T ordinal [%d]", zero, ordinal)
	}
	return values[ordinal], nil
}
