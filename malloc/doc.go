// Package malloc supplies a three-tier, latency-sensitive allocator for
// small and medium sized objects, with a limited scope:
//
//   - Types and functions exported by this package are safe for
//     concurrent use from many goroutines.
//   - Optimised for objects up to MaxBytes; anything larger bypasses
//     the tiered caches and is mapped/unmapped directly from the OS.
//   - Memory is requested from the OS in whole pages (PageSize) and is
//     handed out of those pages down through a ThreadCache (L1),
//     CentralCache (L2) and PageHeap (L3), in that order.
//   - Freed pages are coalesced with their address neighbours and may
//     be returned to the OS once free space exceeds a configurable
//     threshold; only whole original OS allocations are ever given
//     back, never a carved fragment of one.
//   - There is no pointer re-write: a copying garbage collector, if
//     ever needed, would have to be layered on top of this package.
//
// Allocator is the entry point: it wires a PageHeap on top of a
// PageSource, a CentralCache on top of that, and leases per-call
// ThreadCache instances out of a sync.Pool.
package malloc
