package buddy

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Allocate reserves a block able to hold size bytes and returns a pointer
// to its payload. It fails with a wrapped ErrOutOfMemory if the pool is
// uninitialized, size is 0, or no free block of sufficient class exists.
func (p *Pool) Allocate(size uint) (unsafe.Pointer, error) {
	if p == nil || p.base == 0 || size == 0 {
		return nil, errors.Wrap(ErrOutOfMemory, "buddy: allocate on uninitialized pool or zero size")
	}

	k := classify(uintptr(size) + headerSize)
	if k < SmallestK {
		k = SmallestK
	}

	idx := k
	for idx <= p.kvalM && p.avail[idx].next == &p.avail[idx] {
		idx++
	}
	if idx > p.kvalM {
		p.logf("allocate: no block of class >= %d available (kvalM=%d)", k, p.kvalM)
		return nil, errors.Wrapf(ErrOutOfMemory, "no class >= %d available", k)
	}

	block := removeFirst(&p.avail[idx])

	for idx > k {
		idx--
		buddyAddr := addrOf(block) + (uintptr(1) << idx)
		buddy := p.headerAt(buddyAddr)
		buddy.kval = uint16(idx)
		buddy.tag = tagAvail
		buddy.reqSize = 0
		insertBlock(&p.avail[idx], buddy)
		block.kval = uint16(idx)
	}

	block.tag = tagReserved
	block.reqSize = uint64(size)

	p.logf("allocate: size=%d class=%d addr=%#x", size, k, addrOf(block))
	return payloadOf(block), nil
}
