package buddy

import (
	"sync"
	"unsafe"
)

// Locked wraps a Pool with the external mutex the core itself
// deliberately omits (spec §5: locking is a caller concern, not a core
// one). It exists for callers who want the teacher's original
// lock-every-operation behavior without baking a lock into the
// allocation-path hot loop.
type Locked struct {
	mu   sync.Mutex
	pool Pool
}

// Init initializes the wrapped pool under lock.
func (l *Locked) Init(sizeBytes uintptr, opts ...Option) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.Init(sizeBytes, opts...)
}

// Destroy releases the wrapped pool under lock.
func (l *Locked) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.Destroy()
}

// Allocate reserves a block under lock.
func (l *Locked) Allocate(size uint) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.Allocate(size)
}

// Free releases a block under lock.
func (l *Locked) Free(ptr unsafe.Pointer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pool.Free(ptr)
}

// Reallocate resizes a block under lock.
func (l *Locked) Reallocate(ptr unsafe.Pointer, size uint) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.Reallocate(ptr, size)
}

// Stats snapshots the wrapped pool under lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.Stats()
}
