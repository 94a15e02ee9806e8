package malloc

import "unsafe"

// A block is laid out as [8-byte header][user region]. The header
// stores exactly one field: either a size-class index or
// LargeAllocIndex. While a block is free, the first machine word of its
// user region holds an intrusive next-pointer threading it onto a
// free list; that word is never read or written once the block has
// been handed to the application.

// writeHeader stamps classIndex into the header of the block whose
// first byte is base.
func writeHeader(base unsafe.Pointer, classIndex uint64) {
	*(*uint64)(base) = classIndex
}

// readHeader reads the class index stored ahead of a user pointer.
func readHeader(userPtr unsafe.Pointer) uint64 {
	return *(*uint64)(unsafe.Pointer(uintptr(userPtr) - uintptr(HeaderSize)))
}

// userFromBase converts a block base pointer to the pointer handed to
// the application.
func userFromBase(base unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(base) + uintptr(HeaderSize))
}

// baseFromUser converts an application pointer back to its block base.
func baseFromUser(userPtr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(userPtr) - uintptr(HeaderSize))
}

// nextFree reads the intrusive free-list pointer stored in a free
// block's user region.
func nextFree(userPtr unsafe.Pointer) unsafe.Pointer {
	return *(*unsafe.Pointer)(userPtr)
}

// setNextFree overwrites the intrusive free-list pointer stored in a
// free block's user region.
func setNextFree(userPtr, next unsafe.Pointer) {
	*(*unsafe.Pointer)(userPtr) = next
}

// chainLen walks a free-list chain and counts its nodes; used by tests.
func chainLen(head unsafe.Pointer) int64 {
	var n int64
	for p := head; p != nil; p = nextFree(p) {
		n++
	}
	return n
}

// chainTail walks a free-list chain to its last node. Returns nil if
// head is nil.
func chainTail(head unsafe.Pointer) unsafe.Pointer {
	if head == nil {
		return nil
	}
	p := head
	for nextFree(p) != nil {
		p = nextFree(p)
	}
	return p
}
