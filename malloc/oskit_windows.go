//go:build windows

package malloc

import "golang.org/x/sys/windows"

// MapPages commits n pages of anonymous, read-write memory.
func (osPages) MapPages(n int64) (uintptr, error) {
	length := uintptr(n * PageSize)
	addr, err := windows.VirtualAlloc(0, length, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// UnmapPages releases an entire reservation previously obtained from
// MapPages. VirtualFree with MEM_RELEASE only ever frees a whole
// reservation, never a sub-range of one, which is why PageHeap only
// ever releases spans that match a recorded system allocation exactly.
func (osPages) UnmapPages(addr uintptr, n int64) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
