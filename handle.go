package fudge

import "sync/atomic"

// Handle identifies the storage behind a Message. Handles are allocated from
// a process-wide counter and never reused; 0 is reserved.
type Handle uint64

var lastHandle atomic.Uint64

func newHandle() Handle {
	return Handle(lastHandle.Add(1))
}

// Valid reports whether h was allocated.
func (h Handle) Valid() bool {
	return h != 0
}
