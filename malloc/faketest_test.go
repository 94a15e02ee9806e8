package malloc

import "sync"
import "unsafe"

// fakePageSource backs pages with plain Go heap memory instead of real
// OS mappings, so PageHeap/CentralCache/ThreadCache tests can run
// without touching mmap/VirtualAlloc.
type fakePageSource struct {
	mu      sync.Mutex
	regions map[uintptr][]byte
	mapped  int
	unmapped int
}

func newFakePageSource() *fakePageSource {
	return &fakePageSource{regions: make(map[uintptr][]byte)}
}

func (f *fakePageSource) MapPages(n int64) (uintptr, error) {
	buf := make([]byte, n*PageSize)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	f.mu.Lock()
	f.regions[addr] = buf
	f.mapped++
	f.mu.Unlock()
	return addr, nil
}

func (f *fakePageSource) UnmapPages(addr uintptr, n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regions[addr]; !ok {
		panic("unmap of untracked address")
	}
	delete(f.regions, addr)
	f.unmapped++
	return nil
}
