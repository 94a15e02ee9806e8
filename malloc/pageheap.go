package malloc

import "sort"
import "sync"

// pageHeap is the L3 tier: a single free-space arbiter for the whole
// process. It tracks every free span two ways — by page count, to find
// a smallest-fit span for an allocation, and by start address, to find
// and merge address-adjacent neighbours on free — and remembers which
// addresses were handed back by the OS as a whole allocation, so that
// only whole allocations are ever released again.
//
// Go has no standard ordered map, so both indexes are sorted slices of
// keys searched with sort.Search; bucket contents for by_size are kept
// as singly linked span chains off a map keyed by page count.
type pageHeap struct {
	mu     sync.Mutex
	source PageSource

	sizeKeys  []int64
	sizeHeads map[int64]*span

	addrKeys  []uintptr
	addrIndex map[uintptr]*span

	bases map[uintptr]int64

	totalFreePages        int64
	minRequestPages       int64
	releaseThresholdPages int64
}

func newPageHeap(source PageSource, minRequestPages, releaseThresholdPages int64) *pageHeap {
	return &pageHeap{
		source:                source,
		sizeHeads:             make(map[int64]*span),
		addrIndex:             make(map[uintptr]*span),
		bases:                 make(map[uintptr]int64),
		minRequestPages:       minRequestPages,
		releaseThresholdPages: releaseThresholdPages,
	}
}

// allocateSpan returns the base address of a run of at least n pages,
// mapping fresh pages from the OS if no free span is large enough.
func (h *pageHeap) allocateSpan(n int64) (uintptr, bool) {
	if n <= 0 {
		n = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if s := h.findFit(n); s != nil {
		h.removeFree(s)
		h.totalFreePages -= s.pages
		return h.carve(s, n), true
	}

	reqPages := maxI64(n, h.minRequestPages)
	addr, err := h.source.MapPages(reqPages)
	if err != nil {
		warnf("malloc: MapPages(%v) failed: %v", reqPages, err)
		return 0, false
	}
	debugf("malloc: mapped %v pages at %x", reqPages, addr)
	h.bases[addr] = reqPages
	whole := &span{base: addr, pages: reqPages}
	return h.carve(whole, n), true
}

// carve returns the leading n pages of s for the caller, reinserting
// the remainder as a free span when it is at least MinSpanPages, or
// handing the whole span over when the remainder would be smaller than
// that (preferring internal fragmentation over an unusably small span).
func (h *pageHeap) carve(s *span, n int64) uintptr {
	if s.pages == n {
		return s.base
	}
	tail := s.pages - n
	if tail < MinSpanPages {
		return s.base
	}
	front := s.base
	remainder := &span{base: s.base + uintptr(n*PageSize), pages: tail}
	h.insertFree(remainder)
	h.totalFreePages += tail
	return front
}

// freeSpan returns a span of n pages starting at addr to the heap,
// merging it with any address-adjacent free neighbours before
// reconsidering whether excess free space should be released to the OS.
func (h *pageHeap) freeSpan(addr uintptr, n int64) {
	if addr == 0 || n <= 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	debugAssert(!h.isTracked(addr), "double free of span at %x", addr)

	s := &span{base: addr, pages: n}

	if pos := sort.Search(len(h.addrKeys), func(i int) bool { return h.addrKeys[i] >= s.base }); pos > 0 {
		pred := h.addrIndex[h.addrKeys[pos-1]]
		if pred.end() == s.base {
			h.removeFree(pred)
			s.base = pred.base
			s.pages += pred.pages
		}
	}
	if next, ok := h.addrIndex[s.end()]; ok {
		h.removeFree(next)
		s.pages += next.pages
	}

	h.insertFree(s)
	h.totalFreePages += n
	h.releaseIfExcess()
}

// isTracked reports whether addr is currently the start of a free span,
// used only for the debug double-free assertion.
func (h *pageHeap) isTracked(addr uintptr) bool {
	_, ok := h.addrIndex[addr]
	return ok
}

// findFit returns the smallest free span with at least n pages, or nil.
func (h *pageHeap) findFit(n int64) *span {
	idx := sort.Search(len(h.sizeKeys), func(i int) bool { return h.sizeKeys[i] >= n })
	if idx == len(h.sizeKeys) {
		return nil
	}
	return h.sizeHeads[h.sizeKeys[idx]]
}

// insertFree records s as free in both indexes.
func (h *pageHeap) insertFree(s *span) {
	if head, ok := h.sizeHeads[s.pages]; ok {
		s.sizeNext = head
	} else {
		s.sizeNext = nil
		pos := sort.Search(len(h.sizeKeys), func(i int) bool { return h.sizeKeys[i] >= s.pages })
		h.sizeKeys = append(h.sizeKeys, 0)
		copy(h.sizeKeys[pos+1:], h.sizeKeys[pos:])
		h.sizeKeys[pos] = s.pages
	}
	h.sizeHeads[s.pages] = s

	h.addrIndex[s.base] = s
	pos := sort.Search(len(h.addrKeys), func(i int) bool { return h.addrKeys[i] >= s.base })
	h.addrKeys = append(h.addrKeys, 0)
	copy(h.addrKeys[pos+1:], h.addrKeys[pos:])
	h.addrKeys[pos] = s.base
}

// removeFree unlinks s from both indexes. s must currently be free.
func (h *pageHeap) removeFree(s *span) {
	head := h.sizeHeads[s.pages]
	if head == s {
		if s.sizeNext == nil {
			delete(h.sizeHeads, s.pages)
			pos := sort.Search(len(h.sizeKeys), func(i int) bool { return h.sizeKeys[i] >= s.pages })
			if pos < len(h.sizeKeys) && h.sizeKeys[pos] == s.pages {
				h.sizeKeys = append(h.sizeKeys[:pos], h.sizeKeys[pos+1:]...)
			}
		} else {
			h.sizeHeads[s.pages] = s.sizeNext
		}
	} else {
		prev := head
		for prev != nil && prev.sizeNext != s {
			prev = prev.sizeNext
		}
		if prev != nil {
			prev.sizeNext = s.sizeNext
		}
	}
	s.sizeNext = nil

	delete(h.addrIndex, s.base)
	pos := sort.Search(len(h.addrKeys), func(i int) bool { return h.addrKeys[i] >= s.base })
	if pos < len(h.addrKeys) && h.addrKeys[pos] == s.base {
		h.addrKeys = append(h.addrKeys[:pos], h.addrKeys[pos+1:]...)
	}
}

// releaseIfExcess gives whole OS allocations back while total free
// space exceeds releaseThresholdPages, always picking the largest free
// span first. Must be called with h.mu held.
func (h *pageHeap) releaseIfExcess() {
	for h.totalFreePages > h.releaseThresholdPages && len(h.sizeKeys) > 0 {
		key := h.sizeKeys[len(h.sizeKeys)-1]
		s := h.sizeHeads[key]

		pages, ok := h.bases[s.base]
		if !ok || pages != s.pages {
			break
		}

		h.removeFree(s)
		delete(h.bases, s.base)
		if err := h.source.UnmapPages(s.base, s.pages); err != nil {
			warnf("malloc: UnmapPages(%x, %v) failed: %v", s.base, s.pages, err)
			h.bases[s.base] = s.pages
			h.insertFree(s)
			break
		}
		debugf("malloc: released %v pages at %x", s.pages, s.base)
		h.totalFreePages -= s.pages
	}
}

// stats reports a point-in-time snapshot of free page bookkeeping.
func (h *pageHeap) stats() (totalFreePages int64, spanCount int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalFreePages, len(h.addrIndex)
}
