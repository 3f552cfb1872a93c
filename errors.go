package sparsehash

import "errors"

// Sentinel errors for the failure taxonomy described by the package design:
// allocation failure, out-of-bounds indexing, an oversized element, and a
// probe sequence that ran past the number of live buckets.
var (
	// ErrAllocationFailure is returned when a storage allocation cannot be
	// satisfied. Go's runtime panics rather than returning an error on
	// actual OOM, so in practice this sentinel only documents the failure
	// mode for parity with the wider error taxonomy; it is never returned
	// by this package's own bounds-checked call sites.
	ErrAllocationFailure = errors.New("sparsehash: allocation failure")

	// ErrIndexOutOfRange is returned when an index is at or beyond a
	// container's capacity.
	ErrIndexOutOfRange = errors.New("sparsehash: index out of range")

	// ErrOversizedElement is returned when a value's length exceeds the
	// element size a SparseArray was configured to hold.
	ErrOversizedElement = errors.New("sparsehash: element exceeds group capacity")

	// ErrTableExhausted is returned when a probe sequence runs past the
	// dictionary's live bucket count without finding a match or an empty
	// slot. Under the load-factor invariant maintained by SparseDict this
	// should be unreachable; it exists as a defensive backstop.
	ErrTableExhausted = errors.New("sparsehash: probe sequence exhausted bucket count")
)
