package assets

import (
	"sync/atomic"
)

// Holder publishes the active resource set
type Holder struct {
	current atomic.Pointer[ResourceSet]
	version atomic.Uint64
}

// Current returns the active set, nil before the first Swap
func (h *Holder) Current() *ResourceSet {
	return h.current.Load()
}

// Swap publishes set and returns the previous one
func (h *Holder) Swap(set *ResourceSet) *ResourceSet {
	return h.current.Swap(set)
}

// NextVersion allocates the version number of the next set to load
func (h *Holder) NextVersion() uint64 {
	return h.version.Add(1)
}
