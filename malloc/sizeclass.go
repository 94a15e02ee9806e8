package malloc

// indexForSize maps a requested user size to its size-class index, the
// inverse of sizeForIndex. Sizes are quantized linearly to Alignment.
func indexForSize(size int64) int64 {
	if size <= 0 {
		size = 1
	}
	return (size+Alignment-1)/Alignment - 1
}

// sizeForIndex returns the user-visible block size served by a size
// class, the inverse of indexForSize.
func sizeForIndex(index int64) int64 {
	return (index + 1) * Alignment
}

// spanPagesFor maps a size-class index to the number of pages
// CentralCache should request from PageHeap on a refill. Breakpoints are
// carried over from the reference allocator this package's tiers were
// modelled on; the smallest bucket is raised from 4 to MinSpanPages (8)
// since PageHeap never keeps a span smaller than that. The result is
// also raised, if necessary, so the span holds at least one block of
// this class — the reference allocator's own breakpoints top out at 32
// pages and silently under-serve its largest classes otherwise.
func spanPagesFor(index int64) int64 {
	pages := int64(32)
	switch {
	case index <= 4:
		pages = MinSpanPages
	case index <= 16:
		pages = MinSpanPages
	case index <= 64:
		pages = 16
	}

	blockSize := sizeForIndex(index) + HeaderSize
	if needed := (blockSize + PageSize - 1) / PageSize; needed > pages {
		pages = needed
	}
	return pages
}

// batchCountFor returns how many blocks of a size class ThreadCache
// fetches from CentralCache in one refill. It combines a coarse
// size-bucket table with a "total bytes moved per fetch" cap so that
// very small classes are not handed unreasonably large batches; the
// result is monotone non-increasing in userSize.
func batchCountFor(userSize int64) int64 {
	n := batchTableFor(userSize)
	if cap := int64(4096) / userSize; cap < n {
		n = cap
	}
	if n < 1 {
		n = 1
	}
	return n
}

func batchTableFor(userSize int64) int64 {
	switch {
	case userSize <= 128:
		return 512
	case userSize <= 1024:
		return 128
	case userSize <= 8192:
		return 32
	case userSize <= 65536:
		return 8
	default:
		return 4
	}
}
