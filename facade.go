package trimalloc

import "unsafe"

import "github.com/bnclabs/trimalloc/malloc"

var defaultAllocator = malloc.NewAllocator(malloc.Defaultsettings())

// MaxBytes largest request served out of the tiered caches; requests
// above this size are mapped directly from the OS.
const MaxBytes = malloc.MaxBytes

// Alignment every pointer returned by Allocate is a multiple of this.
const Alignment = malloc.Alignment

// Allocate returns a pointer to size bytes of memory, or nil if the
// request could not be satisfied.
func Allocate(size uintptr) unsafe.Pointer {
	ptr, err := defaultAllocator.Allocate(int64(size))
	if err != nil {
		return nil
	}
	return ptr
}

// Deallocate returns ptr, previously obtained from Allocate, to the
// allocator. A nil ptr is a no-op.
func Deallocate(ptr unsafe.Pointer) {
	defaultAllocator.Deallocate(ptr)
}

// LogComponents enables logging for the allocator's internals; by
// default the allocator does not log.
func LogComponents(components ...string) {
	malloc.LogComponents(components...)
}

// Stats returns a snapshot of the default allocator's counters.
func Stats() malloc.Stats {
	return defaultAllocator.Stats()
}
