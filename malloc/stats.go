package malloc

import "sync/atomic"

import "github.com/dustin/go-humanize"

// Stats is a point-in-time snapshot of an Allocator's activity. It
// tracks aggregate counters only — no per-request telemetry, which is
// out of scope for this allocator.
type Stats struct {
	Allocs         int64
	Frees          int64
	BypassAllocs   int64
	FreePages      int64
	FreeSpans      int
	FreeBytesHuman string
}

// Stats returns a snapshot of allocation counters and PageHeap free
// space, formatted for human consumption where useful for logging.
func (a *Allocator) Stats() Stats {
	freePages, spanCount := a.heap.stats()
	freeBytes := uint64(freePages * PageSize)

	return Stats{
		Allocs:         atomic.LoadInt64(&a.allocs),
		Frees:          atomic.LoadInt64(&a.frees),
		BypassAllocs:   atomic.LoadInt64(&a.bypasses),
		FreePages:      freePages,
		FreeSpans:      spanCount,
		FreeBytesHuman: humanize.Bytes(freeBytes),
	}
}
