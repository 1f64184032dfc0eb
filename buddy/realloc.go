package buddy

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Reallocate resizes an allocation. A nil pointer behaves as Allocate; a
// size of 0 behaves as Free and returns nil. When the request still fits
// the block's current class, the same pointer is returned unchanged — no
// in-place shrink is performed, trading a little fragmentation for
// avoiding an unnecessary split/coalesce pair. Otherwise a new block is
// allocated, the caller's original payload is copied over, and the old
// block is freed; on allocation failure the old block is left intact.
func (p *Pool) Reallocate(ptr unsafe.Pointer, size uint) (unsafe.Pointer, error) {
	if p == nil || p.base == 0 {
		return nil, errors.Wrap(ErrOutOfMemory, "buddy: reallocate on uninitialized pool")
	}
	if ptr == nil {
		return p.Allocate(size)
	}
	if size == 0 {
		p.Free(ptr)
		return nil, nil
	}

	old := headerFromPayload(ptr)
	oldK := uint(old.kval)
	newK := classify(uintptr(size) + headerSize)

	if newK <= oldK {
		old.reqSize = uint64(size)
		return ptr, nil
	}

	newPtr, err := p.Allocate(size)
	if err != nil {
		return nil, err
	}

	// Copy only what the caller originally asked for, never more — see
	// the header's reqSize field, which exists precisely to bound this
	// copy instead of reading up to the old block's full rounded-up
	// capacity.
	copyLen := uintptr(old.reqSize)
	if capacity := (uintptr(1) << oldK) - headerSize; copyLen > capacity {
		copyLen = capacity
	}
	src := unsafe.Slice((*byte)(ptr), copyLen)
	dst := unsafe.Slice((*byte)(newPtr), copyLen)
	copy(dst, src)

	p.Free(ptr)
	return newPtr, nil
}
