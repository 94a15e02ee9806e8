//go:build debug

// +build debug

package malloc

import "fmt"
import "unsafe"

// poisonBlock fills a freed block's user region with a recognisable
// pattern, skipping the leading word that carries the free-list
// next-pointer, so that a use-after-free shows up as garbage instead of
// silently working.
func poisonBlock(userPtr unsafe.Pointer, size int64) {
	if size <= 8 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(userPtr)+8)), int(size-8))
	for i := range dst {
		dst[i] = poisonFill[i%len(poisonFill)]
	}
}

func debugAssert(cond bool, fmsg string, args ...interface{}) {
	if !cond {
		panic(fmt.Errorf(fmsg, args...))
	}
}
