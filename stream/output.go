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

	"github.com/Fantom-foundation/Courier/go/backend/pagepool"
	"github.com/Fantom-foundation/Courier/go/common"
)

// ErrSizeLimitExceeded is reported by operations that would grow a buffer
// beyond the maximum logical size an encoded length can address.
const ErrSizeLimitExceeded = common.ConstError("paged output buffer cannot hold more than 2GB of data")

// maxBufferSize is the hard ceiling on the logical length of a buffer;
// lengths are encoded as signed 32-bit counts on the wire.
const maxBufferSize = math.MaxInt32

// Output is a paged output buffer. It writes into a growing sequence of
// fixed-capacity pages obtained on demand from a pool, tracks a movable
// write position, and records the high-water mark of all positions ever
// reached as its logical size. Offsets that were backed but never written
// read as zero, since pages are zeroed on acquisition.
//
// An Output is intended for exclusive use by a single producer; it is not
// safe for concurrent use. Close releases all pages back to the pool and
// must be the last call on an instance.
type Output struct {
	pool     pagepool.Pool
	pages    []*pagepool.Page
	pageSize int64
	position int64
	size     int64
}

// NewOutput creates an empty buffer drawing pages from the given pool.
// No page is acquired before the first operation needs one.
func NewOutput(pool pagepool.Pool) *Output {
	return &Output{
		pool:     pool,
		pageSize: int64(pool.PageSize()),
	}
}

// Position returns the offset the next written byte will be placed at.
func (o *Output) Position() int64 {
	return o.position
}

// Size returns the logical length of the buffer content, the maximum
// position ever reached by a write, seek, or skip.
func (o *Output) Size() int64 {
	return o.size
}

// WriteByte writes a single byte at the current position.
func (o *Output) WriteByte(b byte) error {
	if err := o.ensureCapacityTo(o.position + 1); err != nil {
		return err
	}
	o.pages[o.position/o.pageSize].Data()[o.position%o.pageSize] = b
	o.position++
	if o.position > o.size {
		o.size = o.position
	}
	return nil
}

// Write copies the full input slice to the current position, splitting
// the copy at page boundaries as needed.
func (o *Output) Write(src []byte) (int, error) {
	if err := o.ensureCapacityTo(o.position + int64(len(src))); err != nil {
		return 0, err
	}
	written := len(src)
	for len(src) > 0 {
		data := o.pages[o.position/o.pageSize].Data()
		n := copy(data[o.position%o.pageSize:], src)
		src = src[n:]
		o.position += int64(n)
	}
	if o.position > o.size {
		o.size = o.position
	}
	return written, nil
}

// Seek moves the write position to an arbitrary absolute offset. All
// pages needed to back offsets below the new position are allocated, and
// the logical size is raised to at least the new position. Bytes in the
// skipped-over range read as zero unless written later.
func (o *Output) Seek(position int64) error {
	if position < 0 {
		return fmt.Errorf("cannot seek to negative position %d", position)
	}
	if err := o.ensureCapacityTo(position); err != nil {
		return err
	}
	o.position = position
	if position > o.size {
		o.size = position
	}
	return nil
}

// Skip moves the write position the given number of bytes forward,
// equivalent to seeking to Position() + length.
func (o *Output) Skip(length int64) error {
	if length < 0 {
		return fmt.Errorf("cannot skip negative length %d", length)
	}
	// guards the position arithmetic below against overflow
	if length > maxBufferSize-o.position {
		return ErrSizeLimitExceeded
	}
	return o.Seek(o.position + length)
}

// Bytes provides a read-only view of the content written so far, from
// offset zero to Size(). The view shares the buffer's pages without
// copying; it must not be used after the buffer is closed. Calling Bytes
// repeatedly is allowed and does not modify the buffer.
func (o *Output) Bytes() View {
	segments := make([][]byte, 0, len(o.pages))
	remaining := o.size
	for _, page := range o.pages {
		if remaining <= 0 {
			break
		}
		data := page.Data()
		if remaining < int64(len(data)) {
			data = data[:remaining]
		}
		segments = append(segments, data)
		remaining -= int64(len(data))
	}
	return View{segments: segments, segmentSize: o.pageSize, size: o.size}
}

// Close releases every page held by this buffer back to the pool. The
// buffer must not be used afterwards.
func (o *Output) Close() error {
	for _, page := range o.pages {
		o.pool.Release(page)
	}
	o.pages = nil
	return nil
}

// ensureCapacityTo allocates pages so that all offsets below the given
// position are backed by a page. The combined capacity of the backing
// pages must stay addressable by a signed 32-bit length, so the highest
// reachable position is the largest page-size multiple not exceeding
// the limit.
func (o *Output) ensureCapacityTo(position int64) error {
	if position > maxBufferSize-maxBufferSize%o.pageSize {
		return ErrSizeLimitExceeded
	}
	for int64(len(o.pages))*o.pageSize < position {
		o.pages = append(o.pages, o.pool.Acquire())
	}
	return nil
}

// ---------------------------------------------------------------------------
//                             Primitive Codec
// ---------------------------------------------------------------------------

// WriteBool writes a boolean as a single byte, 1 for true and 0 for false.
func (o *Output) WriteBool(value bool) error {
	if value {
		return o.WriteByte(1)
	}
	return o.WriteByte(0)
}

// WriteInt16 writes a fixed-width big-endian 16-bit integer.
func (o *Output) WriteInt16(value int16) error {
	var buffer [2]byte
	binary.BigEndian.PutUint16(buffer[:], uint16(value))
	_, err := o.Write(buffer[:])
	return err
}

// WriteInt32 writes a fixed-width big-endian 32-bit integer.
func (o *Output) WriteInt32(value int32) error {
	var buffer [4]byte
	binary.BigEndian.PutUint32(buffer[:], uint32(value))
	_, err := o.Write(buffer[:])
	return err
}

// WriteInt64 writes a fixed-width big-endian 64-bit integer.
func (o *Output) WriteInt64(value int64) error {
	var buffer [8]byte
	binary.BigEndian.PutUint64(buffer[:], uint64(value))
	_, err := o.Write(buffer[:])
	return err
}

// WriteFloat32 writes the raw IEEE-754 bit pattern of a 32-bit float.
func (o *Output) WriteFloat32(value float32) error {
	return o.WriteInt32(int32(math.Float32bits(value)))
}

// WriteFloat64 writes the raw IEEE-754 bit pattern of a 64-bit float.
func (o *Output) WriteFloat64(value float64) error {
	return o.WriteInt64(int64(math.Float64bits(value)))
}

// WriteVInt writes a 32-bit integer in the base-128 variable-length
// encoding, least-significant group first, continuation bit set on all
// but the last byte. Negative values are encoded through their unsigned
// bit pattern and always occupy five bytes.
func (o *Output) WriteVInt(value int32) error {
	v := uint32(value)
	for v >= 0x80 {
		if err := o.WriteByte(byte(v) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}
	return o.WriteByte(byte(v))
}

// WriteVLong writes a non-negative 64-bit integer in the base-128
// variable-length encoding. Negative values are rejected; they would
// always occupy the maximum ten bytes, so callers holding genuinely
// signed values should use WriteInt64 or WriteZLong instead.
func (o *Output) WriteVLong(value int64) error {
	if value < 0 {
		return fmt.Errorf("negative longs unsupported, use WriteInt64 or WriteZLong for negative numbers [%d]", value)
	}
	return o.writeVLongNoCheck(value)
}

// writeVLongNoCheck encodes the unsigned bit pattern of the input without
// the sign check of WriteVLong. The zigzag encoding builds on this path.
func (o *Output) writeVLongNoCheck(value int64) error {
	v := uint64(value)
	for v >= 0x80 {
		if err := o.WriteByte(byte(v) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}
	return o.WriteByte(byte(v))
}

// WriteZLong writes a signed 64-bit integer using the zigzag mapping over
// the variable-length encoding, keeping small magnitudes of either sign
// short on the wire.
func (o *Output) WriteZLong(value int64) error {
	return o.writeVLongNoCheck(int64(uint64(value<<1) ^ uint64(value>>63)))
}

// WriteString writes the UTF-8 bytes of the input prefixed by their count
// as a variable-length integer.
func (o *Output) WriteString(value string) error {
	if err := o.WriteVInt(int32(len(value))); err != nil {
		return err
	}
	_, err := o.Write([]byte(value))
	return err
}

// WriteByteArray writes the input bytes prefixed by their count as a
// variable-length integer.
func (o *Output) WriteByteArray(value []byte) error {
	if err := o.WriteVInt(int32(len(value))); err != nil {
		return err
	}
	_, err := o.Write(value)
	return err
}

// WriteOptionalString writes a presence flag followed by the string if
// the input is non-nil.
func (o *Output) WriteOptionalString(value *string) error {
	return WriteOptional(o, value, (*Output).WriteString)
}

// WriteOptionalInt64 writes a presence flag followed by a fixed-width
// 64-bit integer if the input is non-nil.
func (o *Output) WriteOptionalInt64(value *int64) error {
	return WriteOptional(o, value, (*Output).WriteInt64)
}
