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
	"github.com/Fantom-foundation/Courier/go/common/immutable"
)

// View is a read-only, possibly multi-segment view on the content written
// to an Output buffer. It references the buffer's pages without copying
// them; it remains valid until the originating buffer is closed.
//
// All segments but the last have the same length, so random access
// resolves to plain index arithmetic.
type View struct {
	segments    [][]byte
	segmentSize int64 // length of every segment except possibly the last
	size        int64
}

// ViewOfBytes wraps the given slice into a single-segment view. The
// caller must not modify the slice afterwards.
func ViewOfBytes(data []byte) View {
	return View{
		segments:    [][]byte{data},
		segmentSize: int64(len(data)),
		size:        int64(len(data)),
	}
}

// Size returns the number of bytes covered by this view.
func (v View) Size() int64 {
	return v.size
}

// At returns the byte at the given position, which must be in [0, Size).
func (v View) At(position int64) byte {
	return v.segments[position/v.segmentSize][position%v.segmentSize]
}

// ReadAt copies bytes starting at the given position into dst. It returns
// the number of bytes copied, which is only less than len(dst) when the
// end of the view is reached.
func (v View) ReadAt(dst []byte, position int64) int {
	read := 0
	for len(dst) > 0 && position < v.size {
		segment := v.segments[position/v.segmentSize]
		n := copy(dst, segment[position%v.segmentSize:])
		dst = dst[n:]
		position += int64(n)
		read += n
	}
	return read
}

// ToBytes copies the full content of this view into a flat immutable form.
func (v View) ToBytes() immutable.Bytes {
	flat := make([]byte, 0, v.size)
	for _, segment := range v.segments {
		flat = append(flat, segment...)
	}
	return immutable.NewBytes(flat)
}
