package malloc

import "runtime"
import "sync/atomic"

// spinlock is a CAS based mutual exclusion lock for CentralCache's
// per-size-class critical sections, which are expected to be held only
// for the duration of a short list-splice or refill. runtime.Gosched
// stands in for the hardware pause hint a native implementation would
// use while spinning.
type spinlock struct {
	state int32
}

func (s *spinlock) Lock() {
	for !atomic.CompareAndSwapInt32(&s.state, 0, 1) {
		runtime.Gosched()
	}
}

func (s *spinlock) Unlock() {
	atomic.StoreInt32(&s.state, 0)
}
