// Package trimalloc is a drop-in general purpose allocator for small
// and medium sized objects, layered on a ThreadCache leased from a
// sync.Pool for each call, a shared CentralCache and a single PageHeap. See package malloc for the
// tiered implementation; this package is a thin forwarding façade over
// a package-level Allocator.
package trimalloc
