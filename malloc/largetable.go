package malloc

import "sync"
import "unsafe"

// largeTable remembers how many pages back a bypass allocation's block,
// keyed by the user pointer handed to the application. The block header
// for a bypass allocation stores only LargeAllocIndex, so this table is
// the only place the page count needed to unmap it on Deallocate is
// kept — the same auxiliary-structure idiom PageHeap itself uses to
// track which free spans came straight from the OS.
type largeTable struct {
	mu    sync.Mutex
	pages map[unsafe.Pointer]int64
}

func newLargeTable() *largeTable {
	return &largeTable{pages: make(map[unsafe.Pointer]int64)}
}

func (lt *largeTable) record(userPtr unsafe.Pointer, pages int64) {
	lt.mu.Lock()
	lt.pages[userPtr] = pages
	lt.mu.Unlock()
}

func (lt *largeTable) take(userPtr unsafe.Pointer) (int64, bool) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	pages, ok := lt.pages[userPtr]
	if ok {
		delete(lt.pages, userPtr)
	}
	return pages, ok
}
