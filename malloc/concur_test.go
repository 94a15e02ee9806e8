package malloc

import "sync"
import "sync/atomic"
import "testing"
import "unsafe"
import "math/rand"

type concurRequest struct {
	n    byte
	size int64
	ptr  unsafe.Pointer
}

var concurAllocated, concurFreed int64

func TestConcur(t *testing.T) {
	var awg, fwg sync.WaitGroup

	nroutines, repeat := 20, 20000

	chans := make([]chan concurRequest, 0, nroutines)
	for n := 0; n < nroutines; n++ {
		chans = append(chans, make(chan concurRequest, 1000))
	}

	a := NewAllocator(Defaultsettings())

	awg.Add(nroutines)
	fwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go concurAllocator(a, byte(n), repeat, chans, &awg)
		go concurFreer(a, chans[n], &fwg)
	}

	awg.Wait()
	t.Logf("allocations are done\n")

	for _, ch := range chans {
		close(ch)
	}

	fwg.Wait()

	t.Logf("concurAllocated:%v concurFreed:%v\n", concurAllocated, concurFreed)
	t.Log(a.Stats())
}

func concurAllocator(a *Allocator, n byte, repeat int, chans []chan concurRequest, wg *sync.WaitGroup) {
	defer wg.Done()

	sizes := []int64{16, 64, 256, 1024, 4096}
	for i := 0; i < repeat; i++ {
		size := sizes[rand.Intn(len(sizes))]
		ptr, err := a.Allocate(size)
		if err != nil {
			continue
		}

		buf := unsafe.Slice((*byte)(ptr), int(size))
		for j := range buf {
			buf[j] = n
		}

		msg := concurRequest{n: n, size: size, ptr: ptr}
		chans[rand.Intn(len(chans))] <- msg
		atomic.AddInt64(&concurAllocated, size)
	}
}

func concurFreer(a *Allocator, ch chan concurRequest, wg *sync.WaitGroup) {
	defer wg.Done()

	for msg := range ch {
		buf := unsafe.Slice((*byte)(msg.ptr), int(msg.size))
		for _, b := range buf {
			if b != msg.n {
				panic("corrupted block detected across tiers")
			}
		}
		a.Deallocate(msg.ptr)
		atomic.AddInt64(&concurFreed, msg.size)
	}
}
