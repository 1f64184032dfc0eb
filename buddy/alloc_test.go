package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocateWholeArena covers spec scenario 1: a single allocation that
// consumes the entire arena, followed by a second allocation that must
// fail with out-of-memory, followed by a free that restores the initial
// state.
func TestAllocateWholeArena(t *testing.T) {
	var p Pool
	size := uintptr(1) << MinK
	require.NoError(t, p.Init(size))

	ask := size - headerSize
	mem, err := p.Allocate(uint(ask))
	require.NoError(t, err)
	require.NotNil(t, mem)

	hdr := headerFromPayload(mem)
	assert.Equal(t, uint16(MinK), hdr.kval)
	assert.Equal(t, tagReserved, hdr.tag)
	checkPoolEmpty(t, &p)

	fail, err := p.Allocate(5)
	assert.Nil(t, fail)
	assert.Error(t, err)

	p.Free(mem)
	checkPoolFull(t, &p)
	require.NoError(t, p.Destroy())
}

// TestAllocateSplitCascade covers spec scenario 2: a tiny allocation
// forces a cascade of splits, leaving exactly one free block on every
// intermediate class and an empty top sentinel.
func TestAllocateSplitCascade(t *testing.T) {
	var p Pool
	size := uintptr(1) << MinK
	require.NoError(t, p.Init(size))

	mem, err := p.Allocate(1)
	require.NoError(t, err)
	require.NotNil(t, mem)

	hdr := headerFromPayload(mem)
	wantK := classify(1 + headerSize)
	assert.Equal(t, uint16(wantK), hdr.kval)

	for k := uint(wantK); k < MinK; k++ {
		head := &p.avail[k]
		count := 0
		for cur := head.next; cur != head; cur = cur.next {
			count++
		}
		assert.Equal(t, 1, count, "class %d should hold exactly one split-off buddy", k)
	}
	top := &p.avail[MinK]
	assert.Equal(t, top, top.next, "top sentinel should be empty after a small allocation")

	p.Free(mem)
	checkPoolFull(t, &p)
	require.NoError(t, p.Destroy())
}

// TestBuddyXOR covers spec scenario 3: a block and its buddy differ in
// address by exactly 2^kval.
func TestBuddyXOR(t *testing.T) {
	var p Pool
	require.NoError(t, p.Init(uintptr(1)<<MinK))

	mem, err := p.Allocate(1)
	require.NoError(t, err)

	block := headerFromPayload(mem)
	buddy := p.buddyCalc(block)
	require.NotNil(t, buddy)

	diff := addrOf(block) ^ addrOf(buddy)
	assert.Equal(t, uintptr(1)<<block.kval, diff)

	p.Free(mem)
	require.NoError(t, p.Destroy())
}

func TestAllocateZeroSizeFails(t *testing.T) {
	var p Pool
	require.NoError(t, p.Init(uintptr(1)<<MinK))
	ptr, err := p.Allocate(0)
	assert.Nil(t, ptr)
	assert.Error(t, err)
	require.NoError(t, p.Destroy())
}

func TestAllocateNilPoolFails(t *testing.T) {
	var p *Pool
	ptr, err := p.Allocate(8)
	assert.Nil(t, ptr)
	assert.Error(t, err)
}
