package malloc

import "errors"

// ErrOutOfMemory returned when the OS refuses to hand over more pages.
var ErrOutOfMemory = errors.New("malloc.outofmemory")
