package malloc

import "runtime"
import "sync"
import "sync/atomic"
import "unsafe"

import "github.com/bnclabs/trimalloc/lib"

// Allocator wires PageHeap, CentralCache and a pool of leased
// ThreadCache instances into the public Allocate/Deallocate surface.
// It is the analogue of Arena in the pool allocator this package was
// modelled on, but backed by real OS page mappings instead of a fixed
// cgo pool.
type Allocator struct {
	source  PageSource
	heap    *pageHeap
	central *centralCache
	large   *largeTable
	pool    sync.Pool

	allocs   int64
	frees    int64
	bypasses int64
}

// NewAllocator builds an Allocator from cfg, falling back to
// DefaultMinRequestPages and DefaultReleaseThresholdPages for any key
// not present in cfg.
func NewAllocator(cfg lib.Settings) *Allocator {
	source := NewOSPageSource()
	minRequest := DefaultMinRequestPages
	releaseThreshold := DefaultReleaseThresholdPages
	if _, ok := cfg["minrequestpages"]; ok {
		minRequest = cfg.Int64("minrequestpages")
	}
	if _, ok := cfg["releasethresholdpages"]; ok {
		releaseThreshold = cfg.Int64("releasethresholdpages")
	}

	heap := newPageHeap(source, minRequest, releaseThreshold)
	central := newCentralCache(heap)

	a := &Allocator{
		source:  source,
		heap:    heap,
		central: central,
		large:   newLargeTable(),
	}
	a.pool.New = func() interface{} {
		tc := newThreadCache(a.central)
		runtime.SetFinalizer(tc, func(tc *threadCache) { tc.drainAll() })
		return tc
	}
	return a
}

// Allocate returns a pointer to size bytes of memory, or
// (nil, ErrOutOfMemory) if the request could not be satisfied.
// Requests larger than MaxBytes bypass the tiered caches and are
// mapped directly from the OS.
func (a *Allocator) Allocate(size int64) (unsafe.Pointer, error) {
	if size <= 0 {
		size = Alignment
	}

	if size > MaxBytes {
		return a.allocateLarge(size)
	}

	index := indexForSize(size)
	tc := a.pool.Get().(*threadCache)
	ptr, err := tc.allocate(index)
	a.pool.Put(tc)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&a.allocs, 1)
	return ptr, nil
}

// Deallocate returns ptr, previously obtained from Allocate, to the
// allocator. A nil ptr is a no-op.
func (a *Allocator) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	header := readHeader(ptr)
	if header == LargeAllocIndex {
		a.deallocateLarge(ptr)
		return
	}
	tc := a.pool.Get().(*threadCache)
	tc.deallocate(ptr, int64(header))
	a.pool.Put(tc)
	atomic.AddInt64(&a.frees, 1)
}

// allocateLarge maps pages directly from the OS via the PageSource,
// bypassing ThreadCache, CentralCache and PageHeap entirely — a bypass
// allocation never touches, and is never eligible to be carved up by,
// the tiered caches.
func (a *Allocator) allocateLarge(size int64) (unsafe.Pointer, error) {
	pages := (size + HeaderSize + PageSize - 1) / PageSize
	addr, err := a.source.MapPages(pages)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	writeHeader(unsafe.Pointer(addr), LargeAllocIndex)
	userPtr := userFromBase(unsafe.Pointer(addr))
	a.large.record(userPtr, pages)
	atomic.AddInt64(&a.bypasses, 1)
	debugf("malloc: bypass allocation of %v bytes using %v pages", size, pages)
	return userPtr, nil
}

// deallocateLarge returns a bypass allocation's pages straight back to
// the OS via the PageSource, without touching PageHeap's free maps.
func (a *Allocator) deallocateLarge(userPtr unsafe.Pointer) {
	pages, ok := a.large.take(userPtr)
	debugAssert(ok, "deallocate of untracked bypass pointer %x", userPtr)
	if !ok {
		return
	}
	base := baseFromUser(userPtr)
	if err := a.source.UnmapPages(uintptr(base), pages); err != nil {
		warnf("malloc: UnmapPages(%x, %v) failed: %v", base, pages, err)
		return
	}
	atomic.AddInt64(&a.frees, 1)
}
