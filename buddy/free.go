package buddy

import "unsafe"

// buddyCalc locates the buddy of block: the block at the XOR-flipped
// offset of the same class, relative to the arena base. Returns nil if
// the computed address falls outside the arena.
func (p *Pool) buddyCalc(block *header) *header {
	offset := addrOf(block) - p.base
	buddyOffset := offset ^ (uintptr(1) << block.kval)
	if buddyOffset >= p.numBytes {
		return nil
	}
	return p.headerAt(p.base + buddyOffset)
}

// Free releases a block back to the pool, coalescing eagerly with its
// buddy while the buddy is free and of the same class. Both a nil pool
// and a nil pointer are no-ops.
func (p *Pool) Free(ptr unsafe.Pointer) {
	if p == nil || p.base == 0 || ptr == nil {
		return
	}

	block := headerFromPayload(ptr)
	block.tag = tagAvail
	block.reqSize = 0
	p.coalesce(block)
}

// coalesce merges block with its buddy while the buddy is free and of
// the same class, then splices the (possibly merged) result onto the
// free list for its final class.
func (p *Pool) coalesce(block *header) {
	for block.kval < uint16(p.kvalM) {
		buddy := p.buddyCalc(block)
		if buddy == nil || buddy.tag != tagAvail || buddy.kval != block.kval {
			break
		}

		detach(buddy)

		lower := block
		if addrOf(buddy) < addrOf(block) {
			lower = buddy
		}
		lower.kval++
		block = lower
	}

	insertBlock(&p.avail[block.kval], block)
	p.logf("free: class=%d addr=%#x", block.kval, addrOf(block))
}
