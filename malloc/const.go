package malloc

// Alignment every block handed to the application starts on this
// boundary; size classes are multiples of it.
const Alignment = int64(8)

// PageSize granularity at which memory is requested from, and returned
// to, the operating system.
const PageSize = int64(4096)

// MaxBytes largest request served out of the tiered caches. Requests
// above this size bypass ThreadCache/CentralCache/PageHeap entirely and
// are mapped directly from the OS.
const MaxBytes = int64(256 * 1024)

// FreeListSize number of size classes, one per Alignment-sized step up
// to MaxBytes.
const FreeListSize = int(MaxBytes / Alignment)

// HeaderSize size, in bytes, of the block header stored immediately
// before every pointer handed to the application.
const HeaderSize = int64(8)

// MinSpanPages smallest run of pages PageHeap will keep as its own free
// span; a split that would leave a smaller remainder is not performed.
const MinSpanPages = int64(8)

// DefaultMinRequestPages smallest number of pages PageHeap asks the OS
// for in one mapping, even when the caller needs fewer.
const DefaultMinRequestPages = 2 * MinSpanPages

// DefaultReleaseThresholdPages total free-page count above which
// PageHeap starts giving whole OS allocations back.
const DefaultReleaseThresholdPages = int64(16384)

// ReturnWatermarkFactor a ThreadCache free list is drained back to
// CentralCache once it holds more than ReturnWatermarkFactor times that
// class's batch size.
const ReturnWatermarkFactor = int64(16)

// LargeAllocIndex sentinel stored in a block header to mark it as a
// large, bypass allocation rather than a size-classed one.
const LargeAllocIndex = uint64(0xFFFFFFFF)
