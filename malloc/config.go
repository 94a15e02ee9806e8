package malloc

import "github.com/cloudfoundry/gosigar"

import "github.com/bnclabs/trimalloc/lib"

// Defaultsettings returns the configurable parameters for an Allocator
// with their default values.
//
// "minrequestpages" (int64, default: DefaultMinRequestPages)
//		Minimum number of pages PageHeap asks the OS for in a single
//		mapping, even when the caller needs fewer.
//
// "releasethresholdpages" (int64, default: DefaultReleaseThresholdPages,
// or free system pages / 4096 when that is larger)
//		Total free-page count above which PageHeap starts giving whole
//		OS allocations back to the operating system.
func Defaultsettings() lib.Settings {
	_, _, free := getsysmem()

	minrequest := DefaultMinRequestPages
	releasethreshold := DefaultReleaseThresholdPages
	if freePages := int64(free) / PageSize; freePages > 0 {
		if scaled := freePages / 4096; scaled > releasethreshold {
			releasethreshold = scaled
		}
	}

	return lib.Settings{
		"minrequestpages":       minrequest,
		"releasethresholdpages": releasethreshold,
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
