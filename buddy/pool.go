// Package buddy implements a binary buddy memory allocator: a
// fixed-capacity arena sub-allocated in O(log arena size) per operation,
// with internal fragmentation bounded by a factor of two.
//
// A Pool manages one contiguous, power-of-two-sized region obtained from
// the OS via an anonymous mmap. Headers are embedded in-band at the base
// of every block, free or reserved, and double as the nodes of one
// doubly-linked, sentinel-headed free list per size class.
//
// Pool is not safe for concurrent use; see Locked for an external-mutex
// wrapper.
package buddy

import (
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Size-class bounds. A block of class k occupies exactly 2^k bytes,
// header included.
const (
	DefaultK  uint = 30 // arena size used when Init receives 0 (1 GiB)
	MinK      uint = 20 // smallest arena Init will create (1 MiB)
	MaxK      uint = 48 // upper bound on representable class; classify saturates here
	SmallestK uint = 6  // smallest block class, large enough to hold a header
)

type tag uint16

const (
	tagReserved tag = iota // handed to a caller
	tagAvail                // sitting on a free list
	tagUnused   tag = 3     // sentinel-only, permanent
)

// header sits at the base of every block, free or reserved. The payload
// returned to callers begins immediately after it.
type header struct {
	tag     tag
	kval    uint16
	reqSize uint64 // caller's original requested byte count; 0 on sentinels
	next    *header
	prev    *header
}

const headerSize = unsafe.Sizeof(header{})

// ErrOutOfMemory is the sentinel returned (wrapped with call-site context)
// whenever Init can't obtain a mapping or Allocate/Reallocate can't find a
// suitably large free block.
var ErrOutOfMemory = errors.New("buddy: out of memory")

// Pool owns one arena: its base address, byte count, and one free list
// per size class up to kvalM. The zero value is a valid, uninitialized
// Pool; call Init before using it.
type Pool struct {
	kvalM    uint
	numBytes uintptr
	base     uintptr
	avail    [MaxK]header
	log      *zap.SugaredLogger
}

// Option configures a Pool at Init time.
type Option func(*Pool)

// WithLogger attaches structured logging to split/coalesce/OOM events. A
// Pool with no logger (the default) logs nothing.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(p *Pool) { p.log = l }
}

func (p *Pool) logf(template string, args ...interface{}) {
	if p.log != nil {
		p.log.Debugf(template, args...)
	}
}

// Init brings an arena into existence. sizeBytes of 0 selects DefaultK;
// otherwise the arena is sized to the smallest power of two able to hold
// sizeBytes, clamped to [MinK, MaxK-1]. On failure to obtain the backing
// mapping, Init returns a wrapped ErrOutOfMemory and leaves the pool
// zero-valued and safely destructible.
func (p *Pool) Init(sizeBytes uintptr, opts ...Option) error {
	for _, opt := range opts {
		opt(p)
	}

	kval := DefaultK
	if sizeBytes != 0 {
		kval = classify(sizeBytes)
	}
	if kval < MinK {
		kval = MinK
	}
	if kval >= MaxK {
		kval = MaxK - 1
	}

	requestedBytes := uintptr(1) << kval
	data, err := unix.Mmap(-1, 0, int(requestedBytes), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return errors.Wrapf(ErrOutOfMemory, "mmap %d bytes: %v", requestedBytes, err)
	}
	p.kvalM = kval
	p.numBytes = requestedBytes
	p.base = uintptr(unsafe.Pointer(&data[0]))

	for i := range p.avail {
		p.avail[i].next = &p.avail[i]
		p.avail[i].prev = &p.avail[i]
		p.avail[i].kval = uint16(i)
		p.avail[i].tag = tagUnused
	}

	first := p.headerAt(p.base)
	first.tag = tagAvail
	first.kval = uint16(kval)
	insertBlock(&p.avail[kval], first)

	p.logf("init: kval=%d bytes=%d base=%#x", kval, p.numBytes, p.base)
	return nil
}

// Destroy releases the backing mapping and zeroes the pool, keeping only
// its logger. Safe to call
// on an uninitialized pool or one whose Init failed.
func (p *Pool) Destroy() error {
	if p == nil || p.base == 0 {
		return nil
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(p.base)), p.numBytes)
	if err := unix.Munmap(data); err != nil {
		return errors.Wrap(err, "buddy: munmap")
	}

	log := p.log
	*p = Pool{}
	p.log = log
	return nil
}

// headerAt reinterprets an arena-relative address as a header.
func (p *Pool) headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr))
}

func addrOf(h *header) uintptr {
	return uintptr(unsafe.Pointer(h))
}

func payloadOf(h *header) unsafe.Pointer {
	return unsafe.Pointer(addrOf(h) + headerSize)
}

func headerFromPayload(ptr unsafe.Pointer) *header {
	return (*header)(unsafe.Pointer(uintptr(ptr) - headerSize))
}
