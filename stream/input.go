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
	"encoding/binary"
	"fmt"
	"math"
)

// Input is the read-side counterpart of Output. It consumes a finite,
// already-materialized byte range and mirrors every primitive write
// operation. Page boundaries of the producing buffer are invisible; the
// input only sees a flat logical byte sequence.
//
// An Input does not own pooled resources. Close is provided for scoping
// symmetry in code that pairs inputs with registries, but releases
// nothing.
type Input struct {
	view     View
	position int64
	registry *NamedWriteableRegistry
}

// NewInput creates an input consuming the given view. Inputs created this
// way reject named-writeable decoding; use NewInputWithRegistry for that.
func NewInput(view View) *Input {
	return &Input{view: view}
}

// NewInputWithRegistry creates an input that can decode named writeables
// through the factories of the given registry.
func NewInputWithRegistry(view View, registry *NamedWriteableRegistry) *Input {
	return &Input{view: view, registry: registry}
}

// NewInputFromBytes creates an input consuming a flat byte slice. The
// caller must not modify the slice while the input is in use.
func NewInputFromBytes(data []byte) *Input {
	return NewInput(ViewOfBytes(data))
}

// Position returns the offset of the next byte to be read.
func (in *Input) Position() int64 {
	return in.position
}

// Available returns the number of bytes left to be read.
func (in *Input) Available() int64 {
	return in.view.Size() - in.position
}

func (in *Input) Close() error {
	return nil
}

// ReadByte reads a single byte.
func (in *Input) ReadByte() (byte, error) {
	if in.position >= in.view.Size() {
		return 0, fmt.Errorf("tried to read %d bytes but only %d remaining", 1, 0)
	}
	b := in.view.At(in.position)
	in.position++
	return b, nil
}

// readFull fills the full destination slice or fails without consuming
// anything if fewer bytes remain.
func (in *Input) readFull(dst []byte) error {
	if remaining := in.Available(); int64(len(dst)) > remaining {
		return fmt.Errorf("tried to read %d bytes but only %d remaining", len(dst), remaining)
	}
	n := in.view.ReadAt(dst, in.position)
	in.position += int64(n)
	return nil
}

// readSize reads a count prefix of a collection and validates it against
// the remaining input. A negative count can never be satisfied and is
// rejected on its own; a non-negative count is bounded by the remaining
// bytes, at least one byte per declared element, before any result
// container of that size is allocated.
func (in *Input) readSize() (int, error) {
	size, err := in.ReadVInt()
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, fmt.Errorf("array size must be positive but was: %d", size)
	}
	if remaining := in.Available(); int64(size) > remaining {
		return 0, fmt.Errorf("tried to read %d bytes but only %d remaining", size, remaining)
	}
	return int(size), nil
}

// ReadBool reads a boolean written by WriteBool. Any byte other than 0
// or 1 is a format error.
func (in *Input) ReadBool() (bool, error) {
	b, err := in.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("unexpected byte [0x%x] for boolean", b)
	}
}

// ReadInt16 reads a fixed-width big-endian 16-bit integer.
func (in *Input) ReadInt16() (int16, error) {
	var buffer [2]byte
	if err := in.readFull(buffer[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buffer[:])), nil
}

// ReadInt32 reads a fixed-width big-endian 32-bit integer.
func (in *Input) ReadInt32() (int32, error) {
	var buffer [4]byte
	if err := in.readFull(buffer[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buffer[:])), nil
}

// ReadInt64 reads a fixed-width big-endian 64-bit integer.
func (in *Input) ReadInt64() (int64, error) {
	var buffer [8]byte
	if err := in.readFull(buffer[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buffer[:])), nil
}

// ReadFloat32 reads a 32-bit float from its raw IEEE-754 bit pattern.
func (in *Input) ReadFloat32() (float32, error) {
	bits, err := in.ReadInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// ReadFloat64 reads a 64-bit float from its raw IEEE-754 bit pattern.
func (in *Input) ReadFloat64() (float64, error) {
	bits, err := in.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// ReadVInt reads a 32-bit integer written by WriteVInt. The encoding
// spans at most five bytes.
func (in *Input) ReadVInt() (int32, error) {
	var res uint32
	for shift := 0; shift <= 28; shift += 7 {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		res |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			if shift == 28 && b > 0x0F {
				return 0, fmt.Errorf("invalid vint encoding, last byte [0x%x] out of range", b)
			}
			return int32(res), nil
		}
	}
	return 0, fmt.Errorf("invalid vint encoding, more than 5 bytes")
}

// ReadVLong reads a 64-bit integer written by WriteVLong or its internal
// unchecked variant. The encoding spans at most ten bytes. No sign check
// is applied, so values written through the unchecked path decode to
// their original negative form.
func (in *Input) ReadVLong() (int64, error) {
	var res uint64
	for shift := 0; shift <= 63; shift += 7 {
		b, err := in.ReadByte()
		if err != nil {
			return 0, err
		}
		res |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			if shift == 63 && b > 0x01 {
				return 0, fmt.Errorf("invalid vlong encoding, last byte [0x%x] out of range", b)
			}
			return int64(res), nil
		}
	}
	return 0, fmt.Errorf("invalid vlong encoding, more than 10 bytes")
}

// ReadZLong reads a signed 64-bit integer written by WriteZLong.
func (in *Input) ReadZLong() (int64, error) {
	value, err := in.ReadVLong()
	if err != nil {
		return 0, err
	}
	v := uint64(value)
	return int64(v>>1) ^ -int64(v&1), nil
}

// ReadString reads a string written by WriteString.
func (in *Input) ReadString() (string, error) {
	length, err := in.readSize()
	if err != nil {
		return "", err
	}
	buffer := make([]byte, length)
	if err := in.readFull(buffer); err != nil {
		return "", err
	}
	return string(buffer), nil
}

// ReadByteArray reads a byte slice written by WriteByteArray.
func (in *Input) ReadByteArray() ([]byte, error) {
	length, err := in.readSize()
	if err != nil {
		return nil, err
	}
	buffer := make([]byte, length)
	if err := in.readFull(buffer); err != nil {
		return nil, err
	}
	return buffer, nil
}

// ReadOptionalString reads a string written by WriteOptionalString,
// or nil if it was absent.
func (in *Input) ReadOptionalString() (*string, error) {
	return ReadOptional(in, (*Input).ReadString)
}

// ReadOptionalInt64 reads an integer written by WriteOptionalInt64,
// or nil if it was absent.
func (in *Input) ReadOptionalInt64() (*int64, error) {
	return ReadOptional(in, (*Input).ReadInt64)
}
