package malloc

import "testing"

import "github.com/stretchr/testify/assert"

func TestPageHeapAllocateExactFit(t *testing.T) {
	source := newFakePageSource()
	h := newPageHeap(source, MinSpanPages, DefaultReleaseThresholdPages)

	addr, ok := h.allocateSpan(MinSpanPages)
	assert.True(t, ok)
	assert.NotZero(t, addr)
	assert.Equal(t, 1, source.mapped)
}

func TestPageHeapSplitKeepsRemainderFree(t *testing.T) {
	source := newFakePageSource()
	h := newPageHeap(source, 32, DefaultReleaseThresholdPages)

	addr, ok := h.allocateSpan(8)
	assert.True(t, ok)
	assert.NotZero(t, addr)

	total, spans := h.stats()
	assert.Equal(t, int64(24), total)
	assert.Equal(t, 1, spans)
}

func TestPageHeapFreeMergesNeighbours(t *testing.T) {
	// Coalescing is pure address-space bookkeeping, so this test frees
	// two synthetic, numerically-adjacent spans directly rather than
	// relying on two independent MapPages calls landing next to each
	// other in memory (which fakePageSource gives no guarantee of).
	source := newFakePageSource()
	h := newPageHeap(source, MinSpanPages, DefaultReleaseThresholdPages)

	base := uintptr(0x100000)
	h.freeSpan(base, MinSpanPages)
	h.freeSpan(base+uintptr(MinSpanPages*PageSize), MinSpanPages)

	total, spans := h.stats()
	assert.Equal(t, int64(2*MinSpanPages), total)
	assert.Equal(t, 1, spans, "adjacent free spans must coalesce into one")
}

func TestPageHeapReusesFreedSpan(t *testing.T) {
	source := newFakePageSource()
	h := newPageHeap(source, MinSpanPages, DefaultReleaseThresholdPages)

	addr, _ := h.allocateSpan(MinSpanPages)
	h.freeSpan(addr, MinSpanPages)

	addr2, ok := h.allocateSpan(MinSpanPages)
	assert.True(t, ok)
	assert.Equal(t, addr, addr2, "should reuse the freed span rather than mapping a new one")
	assert.Equal(t, 1, source.mapped)
}

func TestPageHeapReleasesWholeAllocationsOnly(t *testing.T) {
	source := newFakePageSource()
	h := newPageHeap(source, MinSpanPages, 0)

	addr, _ := h.allocateSpan(MinSpanPages)
	h.freeSpan(addr, MinSpanPages)

	total, _ := h.stats()
	assert.Equal(t, int64(0), total)
	assert.Equal(t, 1, source.unmapped)
}

func TestPageHeapNeverReleasesPartialSpan(t *testing.T) {
	source := newFakePageSource()
	h := newPageHeap(source, 2*MinSpanPages, 0)

	// allocateSpan is forced to map 2*MinSpanPages but only carve
	// MinSpanPages off the front, leaving a free tail that is not a
	// whole system allocation by itself.
	_, ok := h.allocateSpan(MinSpanPages)
	assert.True(t, ok)

	total, _ := h.stats()
	assert.Equal(t, int64(MinSpanPages), total)
	assert.Equal(t, 0, source.unmapped, "a carved tail must never be released on its own")
}
