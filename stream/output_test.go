package stream

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Fantom-foundation/Courier/go/backend/pagepool"
	"go.uber.org/mock/gomock"
)

const testPageSize = 16

func TestOutput_IsEmptyInitiallyAndAllocatesNoPages(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	if got, want := out.Position(), int64(0); got != want {
		t.Errorf("wrong position: got %d, want %d", got, want)
	}
	if got, want := out.Size(), int64(0); got != want {
		t.Errorf("wrong size: got %d, want %d", got, want)
	}
	if got, want := pool.PagesInUse(), 0; got != want {
		t.Errorf("pages allocated by an empty buffer: %d", got)
	}
	if got, want := out.Bytes().Size(), int64(0); got != want {
		t.Errorf("wrong view size: got %d, want %d", got, want)
	}
}

func TestOutput_PagesAreAllocatedOnDemand(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	for i := 0; i < 3*testPageSize; i++ {
		if err := out.WriteByte(byte(i)); err != nil {
			t.Fatalf("failed to write byte %d: %v", i, err)
		}
		if got, want := pool.PagesInUse(), i/testPageSize+1; got != want {
			t.Errorf("wrong number of pages after %d bytes: got %d, want %d", i+1, got, want)
		}
	}
}

func TestOutput_WriteSpansPageBoundaries(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	data := make([]byte, 5*testPageSize+3)
	for i := range data {
		data[i] = byte(i)
	}
	if _, err := out.Write(data); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}

	if got, want := out.Size(), int64(len(data)); got != want {
		t.Errorf("wrong size: got %d, want %d", got, want)
	}
	if got := out.Bytes().ToBytes().ToBytes(); !bytes.Equal(got, data) {
		t.Errorf("wrong content: got %x, want %x", got, data)
	}
}

func TestOutput_Int64CanStraddlePageBoundary(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	// place the value so it covers the last bytes of the first page
	// and the first bytes of the second
	if err := out.Skip(testPageSize - 3); err != nil {
		t.Fatalf("failed to skip: %v", err)
	}
	if err := out.WriteInt64(-1234567890123456789); err != nil {
		t.Fatalf("failed to write value: %v", err)
	}

	in := NewInput(out.Bytes())
	for i := 0; i < testPageSize-3; i++ {
		if b, err := in.ReadByte(); err != nil || b != 0 {
			t.Fatalf("gap byte %d not zero: %d, err %v", i, b, err)
		}
	}
	if got, err := in.ReadInt64(); err != nil || got != -1234567890123456789 {
		t.Errorf("wrong value read across page boundary: %d, err %v", got, err)
	}
}

func TestOutput_SeekBackAndOverwrite(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	if _, err := out.Write([]byte("hello world")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := out.Seek(6); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}
	if got, want := out.Position(), int64(6); got != want {
		t.Errorf("wrong position after seek: got %d, want %d", got, want)
	}
	if _, err := out.Write([]byte("W")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	// the high-water mark is not reduced by seeking backwards
	if got, want := out.Size(), int64(len("hello world")); got != want {
		t.Errorf("wrong size: got %d, want %d", got, want)
	}
	if got, want := out.Bytes().ToBytes().ToBytes(), []byte("hello World"); !bytes.Equal(got, want) {
		t.Errorf("wrong content: got %s, want %s", got, want)
	}
}

func TestOutput_SeekForwardLeavesZeroedGaps(t *testing.T) {
	pool := pagepool.NewRecyclingPool(4)
	out := NewOutput(pool)
	defer out.Close()

	if err := out.Seek(10); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}
	if err := out.WriteByte(1); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	want := make([]byte, 11)
	want[10] = 1
	if got := out.Bytes().ToBytes().ToBytes(); !bytes.Equal(got, want) {
		t.Errorf("gap not zero-filled: got %x, want %x", got, want)
	}
}

func TestOutput_SeekToNegativePositionIsRejected(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	if err := out.Seek(-1); err == nil {
		t.Errorf("seek to negative position should fail")
	}
	if err := out.Skip(-1); err == nil {
		t.Errorf("skip of negative length should fail")
	}
}

func TestOutput_SeekBeyondSizeLimitIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := pagepool.NewMockPool(ctrl)
	pool.EXPECT().PageSize().Return(testPageSize)

	out := NewOutput(pool)
	if got, want := out.Seek(math.MaxInt32+1), ErrSizeLimitExceeded; !errors.Is(got, want) {
		t.Errorf("wrong error: got %v, want %v", got, want)
	}

	// the ceiling is the largest page-size multiple below 2^31-1, so for
	// this page size the maximum itself is already out of range
	if got, want := out.Seek(math.MaxInt32), ErrSizeLimitExceeded; !errors.Is(got, want) {
		t.Errorf("wrong error: got %v, want %v", got, want)
	}

	// the failed seeks must not have moved the cursor or acquired pages
	if got, want := out.Position(), int64(0); got != want {
		t.Errorf("position changed by failed seek: %d", got)
	}
}

func TestOutput_SkipBeyondSizeLimitIsRejected(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	if err := out.Seek(100); err != nil {
		t.Fatalf("failed to seek: %v", err)
	}
	// the limit is computed against the current position, not from zero
	if got, want := out.Skip(math.MaxInt32-50), ErrSizeLimitExceeded; !errors.Is(got, want) {
		t.Errorf("wrong error: got %v, want %v", got, want)
	}

	// lengths overflowing the position arithmetic still report the
	// ceiling, not a negative position
	if got, want := out.Skip(math.MaxInt64), ErrSizeLimitExceeded; !errors.Is(got, want) {
		t.Errorf("wrong error: got %v, want %v", got, want)
	}
}

func TestOutput_SeekToSizeLimitAllocatesExpectedPages(t *testing.T) {
	const pageSize = 1 << 20
	const limit = math.MaxInt32 - math.MaxInt32%pageSize
	const wantPages = limit / pageSize

	ctrl := gomock.NewController(t)
	pool := pagepool.NewMockPool(ctrl)
	pool.EXPECT().PageSize().Return(pageSize)
	// the buffer is only sought over, never written, so all page slots
	// may share one physical page
	shared := pagepool.NewPage(pageSize)
	pool.EXPECT().Acquire().Times(wantPages).Return(shared)

	out := NewOutput(pool)
	if err := out.Seek(limit); err != nil {
		t.Fatalf("seek to the size limit should succeed: %v", err)
	}
	if got, want := out.Position(), int64(limit); got != want {
		t.Errorf("wrong position: got %d, want %d", got, want)
	}
	if got, want := out.Size(), int64(limit); got != want {
		t.Errorf("wrong size: got %d, want %d", got, want)
	}

	// one byte further would need a page capacity beyond 2^31-1
	if got, want := out.Seek(limit+1), ErrSizeLimitExceeded; !errors.Is(got, want) {
		t.Errorf("wrong error: got %v, want %v", got, want)
	}
	if got, want := out.Position(), int64(limit); got != want {
		t.Errorf("position changed by failed seek: %d", got)
	}
}

func TestOutput_CloseReturnsAllPagesToThePool(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)

	data := make([]byte, 10*testPageSize)
	if _, err := out.Write(data); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if got, want := pool.PagesInUse(), 10; got != want {
		t.Errorf("wrong number of pages in use: got %d, want %d", got, want)
	}

	if err := out.Close(); err != nil {
		t.Fatalf("failed to close buffer: %v", err)
	}
	if got, want := pool.PagesInUse(), 0; got != want {
		t.Errorf("pages not returned on close: %d still in use", got)
	}
}

func TestOutput_CloseReleasesEachPageExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	pool := pagepool.NewMockPool(ctrl)
	pool.EXPECT().PageSize().Return(testPageSize)

	pageA := pagepool.NewPage(testPageSize)
	pageB := pagepool.NewPage(testPageSize)
	gomock.InOrder(
		pool.EXPECT().Acquire().Return(pageA),
		pool.EXPECT().Acquire().Return(pageB),
	)
	pool.EXPECT().Release(pageA)
	pool.EXPECT().Release(pageB)

	out := NewOutput(pool)
	if _, err := out.Write(make([]byte, testPageSize+1)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("failed to close buffer: %v", err)
	}
}

func TestOutput_BytesCanBeObtainedRepeatedly(t *testing.T) {
	pool := pagepool.NewRecyclingPool(testPageSize)
	out := NewOutput(pool)
	defer out.Close()

	if _, err := out.Write([]byte("some content")); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	first := out.Bytes().ToBytes()
	second := out.Bytes().ToBytes()
	if first != second {
		t.Errorf("repeated views differ: %v != %v", first, second)
	}
	if got, want := out.Size(), int64(len("some content")); got != want {
		t.Errorf("size changed by materialization: %d", got)
	}
}

func TestOutput_RandomSeeksAndWritesMatchFlatReference(t *testing.T) {
	const maxLength = 1 << 12
	r := rand.New(rand.NewSource(42))

	for run := 0; run < 10; run++ {
		pool := pagepool.NewRecyclingPool(1 << (2 + run%6))
		out := NewOutput(pool)
		reference := make([]byte, maxLength)
		size := int64(0)

		for op := 0; op < 200; op++ {
			if r.Intn(3) == 0 {
				position := int64(r.Intn(maxLength / 2))
				if err := out.Seek(position); err != nil {
					t.Fatalf("failed to seek: %v", err)
				}
				if position > size {
					size = position
				}
			} else {
				data := make([]byte, r.Intn(maxLength/8))
				for i := range data {
					data[i] = byte(r.Int())
				}
				position := out.Position()
				if position+int64(len(data)) > maxLength {
					continue
				}
				if _, err := out.Write(data); err != nil {
					t.Fatalf("failed to write: %v", err)
				}
				copy(reference[position:], data)
				if end := position + int64(len(data)); end > size {
					size = end
				}
			}
		}

		if got, want := out.Size(), size; got != want {
			t.Fatalf("wrong size: got %d, want %d", got, want)
		}
		if got, want := out.Bytes().ToBytes().ToBytes(), reference[:size]; !bytes.Equal(got, want) {
			t.Errorf("buffer content diverged from reference")
		}
		if err := out.Close(); err != nil {
			t.Fatalf("failed to close buffer: %v", err)
		}
		if got := pool.PagesInUse(); got != 0 {
			t.Errorf("pages not returned on close: %d still in use", got)
		}
	}
}
