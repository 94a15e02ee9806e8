package malloc

// PageSource is the OS page-mapping primitive PageHeap is built on.
// It is an interface, rather than a pair of bare functions, so tests
// can substitute an in-process fake source instead of exercising real
// OS mappings.
type PageSource interface {
	// MapPages requests n contiguous pages from the OS and returns the
	// base address of the mapping.
	MapPages(n int64) (uintptr, error)

	// UnmapPages returns n contiguous pages, previously obtained from
	// MapPages starting at addr, back to the OS.
	UnmapPages(addr uintptr, n int64) error
}

// osPages is the default PageSource, backed by the host OS's anonymous
// memory mapping facility. Its methods are implemented per-GOOS in
// oskit_unix.go and oskit_windows.go.
type osPages struct{}

// NewOSPageSource returns the default, OS-backed PageSource.
func NewOSPageSource() PageSource {
	return osPages{}
}
