package sparsehash

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func decodeUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func TestSparseArray_EmptyArray(t *testing.T) {
	a := NewSparseArray(8, 32)
	if _, ok := a.Get(0); ok {
		t.Errorf("Get(0) on empty array ok = true, want false")
	}
}

func TestSparseArray_ReverseFill(t *testing.T) {
	const n = 120
	a := NewSparseArray(8, n)

	for i := int(n) - 1; i >= 0; i-- {
		if err := a.Set(uint32(i), encodeUint64(uint64(i))); err != nil {
			t.Fatalf("Set(%d) err = %v", i, err)
		}
	}
	for i := uint32(0); i < n; i++ {
		got, ok := a.Get(i)
		if !ok {
			t.Fatalf("Get(%d) ok = false, want true", i)
		}
		if decodeUint64(got) != uint64(i) {
			t.Fatalf("Get(%d) = %d, want %d", i, decodeUint64(got), i)
		}
	}
}

func TestSparseArray_ForwardFillBeyondOneGroup(t *testing.T) {
	const n = 130 // ceil(130/48) == 3 groups
	a := NewSparseArray(8, n)

	for i := uint32(0); i < n; i++ {
		if err := a.Set(i, encodeUint64(uint64(i))); err != nil {
			t.Fatalf("Set(%d) err = %v", i, err)
		}
	}
	for i := uint32(0); i < n; i++ {
		got, ok := a.Get(i)
		if !ok {
			t.Fatalf("Get(%d) ok = false, want true", i)
		}
		if decodeUint64(got) != uint64(i) {
			t.Fatalf("Get(%d) = %d, want %d", i, decodeUint64(got), i)
		}
	}
}

func TestSparseArray_OversizeRejection(t *testing.T) {
	a := NewSparseArray(1, 100)
	err := a.Set(0, encodeUint64(8))
	if err == nil {
		t.Fatalf("Set() err = nil, want ErrOversizedElement")
	}
	if _, ok := a.Get(0); ok {
		t.Errorf("Get(0) after failed Set ok = true, want false")
	}
}

func TestSparseArray_BoundaryIndices(t *testing.T) {
	a := NewSparseArray(4, 32)
	if err := a.Set(31, []byte("ok")); err != nil {
		t.Fatalf("Set(maximum-1) err = %v, want nil", err)
	}
	if err := a.Set(32, []byte("no")); err == nil {
		t.Fatalf("Set(maximum) err = nil, want ErrIndexOutOfRange")
	}
	if _, ok := a.Get(32); ok {
		t.Errorf("Get(maximum) ok = true, want false")
	}
}

func TestSparseArray_Overwrite(t *testing.T) {
	a := NewSparseArray(32, 10)
	if err := a.Set(4, []byte("v1")); err != nil {
		t.Fatalf("Set() err = %v", err)
	}
	if err := a.Set(4, []byte("v2, a bigger value")); err != nil {
		t.Fatalf("Set() err = %v", err)
	}
	got, ok := a.Get(4)
	if !ok {
		t.Fatalf("Get() ok = false, want true")
	}
	if diff := cmp.Diff([]byte("v2, a bigger value"), got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}
