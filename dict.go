package sparsehash

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// startingCapacity is the initial bucketMax a new SparseDict is created
// with. It must be a power of two.
const startingCapacity = 32

// resizeThreshold is the load factor (bucketCount/bucketMax) at or above
// which a completed insert triggers a rehash-and-grow.
const resizeThreshold = 0.80

// bucketRecordSize is the fixed on-the-wire size of a bucketRecord as
// stored in the dict's underlying SparseArray: an 8-byte fingerprint, two
// 4-byte length fields, and a 4-byte reference into the dict's own
// key/value registry.
const bucketRecordSize = 8 + 4 + 4 + 4

// bucketPayload holds a dictionary entry's owned key and value bytes. It is
// kept in a plain Go slice (not serialized into the SparseArray's packed
// buffer) so the garbage collector can see and trace the pointers inside
// it; only a small fixed-size bucketRecord describing it lives in the
// SparseArray.
type bucketPayload struct {
	key []byte
	val []byte
}

// SparseDict is an open-addressed hash table mapping byte-string keys to
// byte-string values. Its bucket store is itself a SparseArray of
// fixed-size bucket records; hashing uses 64-bit FNV-1a and collisions are
// resolved with quadratic probing over a power-of-two capacity.
type SparseDict struct {
	bucketMax   uint32
	bucketCount uint32
	buckets     *SparseArray

	// refs holds one bucketPayload per distinct live key, indexed by the
	// ref field encoded into each bucketRecord. It only grows on a true
	// insert (never on an update), so len(refs) == bucketCount always.
	refs []*bucketPayload
}

// NewSparseDict creates an empty SparseDict with the fixed starting
// capacity of 32 buckets.
func NewSparseDict() *SparseDict {
	return &SparseDict{
		bucketMax: startingCapacity,
		buckets:   NewSparseArray(bucketRecordSize, startingCapacity),
	}
}

// Len returns the number of distinct keys stored in the dictionary.
func (d *SparseDict) Len() int {
	return int(d.bucketCount)
}

func encodeBucketRecord(hash uint64, keyLen, valLen, ref uint32) []byte {
	rec := make([]byte, bucketRecordSize)
	binary.LittleEndian.PutUint64(rec[0:8], hash)
	binary.LittleEndian.PutUint32(rec[8:12], keyLen)
	binary.LittleEndian.PutUint32(rec[12:16], valLen)
	binary.LittleEndian.PutUint32(rec[16:20], ref)
	return rec
}

func decodeBucketRecord(rec []byte) (hash uint64, keyLen, valLen, ref uint32) {
	hash = binary.LittleEndian.Uint64(rec[0:8])
	keyLen = binary.LittleEndian.Uint32(rec[8:12])
	valLen = binary.LittleEndian.Uint32(rec[12:16])
	ref = binary.LittleEndian.Uint32(rec[16:20])
	return
}

const (
	fnvOffsetBasis64 uint64 = 14695981039346656037
	fnvPrime64       uint64 = 1099511628211
)

// fnv1a64 computes the 64-bit FNV-1a hash of key, per the package's
// normatively-fixed hashing scheme.
func fnv1a64(key []byte) uint64 {
	h := fnvOffsetBasis64
	for _, b := range key {
		h ^= uint64(b)
		h *= fnvPrime64
	}
	return h
}

// probe computes the i-th quadratic probe index for hash over a table of
// the given power-of-two size.
func probe(hash uint64, i uint32, bucketMax uint32) uint32 {
	return uint32((hash + uint64(i)*uint64(i)) & uint64(bucketMax-1))
}

// sameKey reports whether a stored bucket with the given hash and owned key
// bytes matches the query key. The fingerprint comparison alone is
// effectively conclusive for FNV-1a at this scale; the byte comparison
// guards against the rare collision.
func sameKey(existingHash uint64, existingKey []byte, hash uint64, key []byte) bool {
	return existingHash == hash && bytes.Equal(existingKey, key)
}

// Set stores value under key, replacing any previous value for the same
// key. It returns ErrTableExhausted if the probe sequence runs past the
// live bucket count (unreachable under a correctly maintained load factor)
// or an error from the underlying SparseArray if a slot write fails, in
// which case the dictionary is left unchanged.
func (d *SparseDict) Set(key, value []byte) error {
	hash := fnv1a64(key)

	var numProbes uint32
	for {
		slot := probe(hash, numProbes, d.bucketMax)
		rec, ok := d.buckets.Get(slot)
		if !ok {
			ref := uint32(len(d.refs))
			d.refs = append(d.refs, &bucketPayload{
				key: append([]byte(nil), key...),
				val: append([]byte(nil), value...),
			})
			encoded := encodeBucketRecord(hash, uint32(len(key)), uint32(len(value)), ref)
			if err := d.buckets.Set(slot, encoded); err != nil {
				d.refs = d.refs[:ref]
				return err
			}
			break
		}

		existingHash, _, _, ref := decodeBucketRecord(rec)
		if sameKey(existingHash, d.refs[ref].key, hash, key) {
			// Update in place: replace the payload and re-encode the
			// record, but do not touch bucketCount or consider a rehash.
			d.refs[ref] = &bucketPayload{
				key: append([]byte(nil), key...),
				val: append([]byte(nil), value...),
			}
			encoded := encodeBucketRecord(hash, uint32(len(key)), uint32(len(value)), ref)
			return d.buckets.Set(slot, encoded)
		}

		numProbes++
		if numProbes > d.bucketCount {
			return ErrTableExhausted
		}
	}

	d.bucketCount++
	if float64(d.bucketCount)/float64(d.bucketMax) >= resizeThreshold {
		return d.rehashAndGrow()
	}
	return nil
}

// Get returns the value stored under key, or (nil, false) if no such key is
// present.
//
// The returned slice aliases the dictionary's internal storage and is
// valid only until the next mutating call (Set) on this SparseDict.
func (d *SparseDict) Get(key []byte) ([]byte, bool) {
	hash := fnv1a64(key)

	var numProbes uint32
	for {
		slot := probe(hash, numProbes, d.bucketMax)
		rec, ok := d.buckets.Get(slot)
		if !ok {
			return nil, false
		}

		existingHash, _, _, ref := decodeBucketRecord(rec)
		if sameKey(existingHash, d.refs[ref].key, hash, key) {
			return d.refs[ref].val, true
		}

		numProbes++
		if numProbes > d.bucketCount {
			return nil, false
		}
	}
}

// rehashAndGrow doubles the dictionary's bucket capacity and reinstalls
// every live bucket at the probe position its fingerprint dictates in the
// new, larger table. Key and value bytes are not recopied: only the small
// fixed-size bucketRecord referencing them moves.
func (d *SparseDict) rehashAndGrow() error {
	newMax := d.bucketMax * 2
	newBuckets := NewSparseArray(bucketRecordSize, newMax)

	var rehashed uint32
	for j := uint32(0); j < d.bucketMax; j++ {
		rec, ok := d.buckets.Get(j)
		if !ok {
			continue
		}
		hash, keyLen, valLen, ref := decodeBucketRecord(rec)

		var numProbes uint32
		for {
			slot := probe(hash, numProbes, newMax)
			if _, occupied := newBuckets.Get(slot); !occupied {
				encoded := encodeBucketRecord(hash, keyLen, valLen, ref)
				if err := newBuckets.Set(slot, encoded); err != nil {
					return fmt.Errorf("sparsehash: rehash: %w", err)
				}
				break
			}
			numProbes++
			if numProbes > d.bucketCount {
				return ErrTableExhausted
			}
		}
		rehashed++
		if rehashed == d.bucketCount {
			break
		}
	}

	d.buckets = newBuckets
	d.bucketMax = newMax
	return nil
}
