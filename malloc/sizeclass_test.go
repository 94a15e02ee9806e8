package malloc

import "testing"

import "github.com/stretchr/testify/assert"

func TestIndexForSizeRoundtrip(t *testing.T) {
	for size := int64(1); size <= MaxBytes; size += 7 {
		index := indexForSize(size)
		class := sizeForIndex(index)
		assert.True(t, class >= size, "class %v smaller than requested %v", class, size)
		assert.True(t, class-size < Alignment, "wasted more than one alignment step: %v vs %v", class, size)
	}
}

func TestIndexForSizeExact(t *testing.T) {
	assert.Equal(t, int64(0), indexForSize(8))
	assert.Equal(t, int64(8), sizeForIndex(0))
	assert.Equal(t, int64(1), indexForSize(9))
	assert.Equal(t, int64(16), sizeForIndex(1))
}

func TestBatchCountMonotone(t *testing.T) {
	sizes := []int64{8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536, 131072, 262144}
	prev := batchCountFor(sizes[0])
	for _, size := range sizes[1:] {
		n := batchCountFor(size)
		assert.True(t, n >= 1, "batch count must be at least one")
		assert.True(t, n <= prev, "batch count for %v (%v) exceeds smaller size's %v", size, n, prev)
		assert.True(t, n*size <= 4096 || n == 1, "batch for %v moves more than 4KiB: %v*%v", size, n, size)
		prev = n
	}
}

func TestSpanPagesForRespectsMinimum(t *testing.T) {
	for index := int64(0); index < 200; index++ {
		assert.True(t, spanPagesFor(index) >= MinSpanPages)
	}
}

func TestSpanPagesForAlwaysFitsOneBlock(t *testing.T) {
	for size := int64(8); size <= MaxBytes; size += 8 {
		index := indexForSize(size)
		blockSize := sizeForIndex(index) + HeaderSize
		spanBytes := spanPagesFor(index) * PageSize
		assert.True(t, spanBytes/blockSize >= 1,
			"span for size %v (blockSize %v) holds no blocks: spanBytes=%v", size, blockSize, spanBytes)
	}
}
