package malloc

import "unsafe"

// classSlot holds every currently-free block for one size class, behind
// its own spinlock so that unrelated classes never contend.
type classSlot struct {
	lock  spinlock
	head  unsafe.Pointer
	count int64
}

// centralCache is the L2 tier: one free list per size class, shared by
// every leased ThreadCache, refilled from pageHeap in whole spans that
// are carved into blocks on demand.
type centralCache struct {
	heap  *pageHeap
	slots [FreeListSize]classSlot
}

func newCentralCache(heap *pageHeap) *centralCache {
	return &centralCache{heap: heap}
}

// fetchBatch detaches up to n blocks of the given size class from the
// shared free list, refilling from pageHeap first if necessary. It
// returns the chain head and how many blocks are actually chained,
// which may be less than n (including zero, on out-of-memory).
func (cc *centralCache) fetchBatch(index, n int64) (unsafe.Pointer, int64) {
	slot := &cc.slots[index]
	slot.lock.Lock()
	defer slot.lock.Unlock()

	if slot.count < n {
		cc.refillLocked(index)
	}
	if slot.head == nil {
		return nil, 0
	}

	got := minI64(n, slot.count)
	head := slot.head
	node := head
	for i := int64(1); i < got; i++ {
		node = nextFree(node)
	}
	rest := nextFree(node)
	setNextFree(node, nil)

	slot.head = rest
	slot.count -= got
	return head, got
}

// returnBatch splices a chain of count blocks, built by a draining
// ThreadCache, back onto the shared free list for index.
func (cc *centralCache) returnBatch(index int64, head unsafe.Pointer, count int64) {
	if head == nil || count == 0 {
		return
	}
	tail := chainTail(head)

	slot := &cc.slots[index]
	slot.lock.Lock()
	setNextFree(tail, slot.head)
	slot.head = head
	slot.count += count
	slot.lock.Unlock()
}

// refillLocked asks pageHeap for a fresh span and carves it into blocks
// of the given size class, threading them onto the slot's free list.
// Called with slot.lock already held.
func (cc *centralCache) refillLocked(index int64) {
	userSize := sizeForIndex(index)
	blockSize := userSize + HeaderSize
	spanPages := spanPagesFor(index)

	addr, ok := cc.heap.allocateSpan(spanPages)
	if !ok {
		warnf("malloc: refill of class %v failed, pageheap out of memory", index)
		return
	}
	tracef("malloc: refilling class %v (blocksize %v) from a %v page span", index, userSize, spanPages)

	spanBytes := spanPages * PageSize
	total := spanBytes / blockSize
	if total <= 0 {
		cc.heap.freeSpan(addr, spanPages)
		return
	}

	var head, tail unsafe.Pointer
	for i := int64(0); i < total; i++ {
		blockBase := unsafe.Pointer(addr + uintptr(i*blockSize))
		writeHeader(blockBase, uint64(index))
		userPtr := userFromBase(blockBase)
		setNextFree(userPtr, nil)
		if head == nil {
			head, tail = userPtr, userPtr
		} else {
			setNextFree(tail, userPtr)
			tail = userPtr
		}
	}

	slot := &cc.slots[index]
	setNextFree(tail, slot.head)
	slot.head = head
	slot.count += total
}

// stats reports a point-in-time free-block count for one size class.
func (cc *centralCache) stats(index int64) int64 {
	slot := &cc.slots[index]
	slot.lock.Lock()
	defer slot.lock.Unlock()
	return slot.count
}
