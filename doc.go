// Package sparsehash implements a memory-efficient associative container
// built from two composable layers: a group-partitioned sparse array that
// stores values at integer indices using memory proportional only to the
// number of occupied slots, and an open-addressed sparse dictionary that
// maps byte-string keys to byte-string values on top of it.
//
// Neither type is safe for concurrent use. There is no deletion operation
// and no iteration order is promised.
package sparsehash
