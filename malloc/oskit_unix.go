//go:build unix

package malloc

import "unsafe"

import "golang.org/x/sys/unix"

// MapPages maps n anonymous, read-write pages private to this process.
func (osPages) MapPages(n int64) (uintptr, error) {
	length := int(n * PageSize)
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, err
	}
	return uintptr(unsafe.Pointer(&data[0])), nil
}

// UnmapPages releases n pages previously obtained from MapPages.
func (osPages) UnmapPages(addr uintptr, n int64) error {
	length := int(n * PageSize)
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), length)
	return unix.Munmap(data)
}
