// Package arrayext splits and joins fixed-size arrays.
//
// Array lengths are carried by the array types themselves:
//
//	head, rest := arrayext.SplitAt[[3]int, [2]int]([5]int{1, 2, 3, 4, 5})
//	all := arrayext.Append[[5]int](head, rest)
//
// Go cannot express N-M or N+M in a type, so every entry point checks the
// shapes at run time and panics when they do not add up. Each call pays for
// a few reflect.TypeFor lookups and a read-locked map lookup.
package arrayext

import (
	"reflect"
	"unsafe"

	"github.com/rawbytedev/fixedmem/internal/common"
)

// SplitAt splits src ([N]T) into its first M elements (Head, [M]T) and the
// remaining N-M elements (Rest, [N-M]T).
//
// The source memory is reinterpreted as the two outputs; elements are moved
// as raw bytes, one bulk copy per output. src is passed by value, so the
// outputs never alias the caller's array.
func SplitAt[Head, Rest, Src any](src Src) (head Head, rest Rest) {
	common.CheckSplit(reflect.TypeFor[Src](), reflect.TypeFor[Head](), reflect.TypeFor[Rest]())
	p := unsafe.Pointer(&src)
	head = *(*Head)(p)
	// a pointer just past the end of src is not valid, even for a zero-size read
	if unsafe.Sizeof(rest) != 0 {
		rest = *(*Rest)(unsafe.Add(p, unsafe.Sizeof(head)))
	}
	return head, rest
}

// SplitAtPtr is the aliasing form of SplitAt: both results point into *src
// and writes through either one are visible in *src.
func SplitAtPtr[Head, Rest, Src any](src *Src) (*Head, *Rest) {
	common.CheckSplit(reflect.TypeFor[Src](), reflect.TypeFor[Head](), reflect.TypeFor[Rest]())
	p := unsafe.Pointer(src)
	head := (*Head)(p)
	var rest Rest
	if unsafe.Sizeof(rest) == 0 {
		return head, new(Rest)
	}
	return head, (*Rest)(unsafe.Add(p, unsafe.Sizeof(*head)))
}

// Truncate keeps the first M elements of src ([N]T) and drops the rest.
// It is the head half of SplitAt.
func Truncate[Dst, Src any](src Src) Dst {
	common.CheckTruncate(reflect.TypeFor[Src](), reflect.TypeFor[Dst]())
	return *(*Dst)(unsafe.Pointer(&src))
}

// Append joins a ([N]T) and b ([M]T) into a new array Dst ([N+M]T).
//
// Unlike SplitAt this always copies: the result is one contiguous array
// distinct from both inputs.
func Append[Dst, A, B any](a A, b B) (dst Dst) {
	common.CheckAppend(reflect.TypeFor[Dst](), reflect.TypeFor[A](), reflect.TypeFor[B]())
	p := unsafe.Pointer(&dst)
	*(*A)(p) = a
	if unsafe.Sizeof(b) != 0 {
		*(*B)(unsafe.Add(p, unsafe.Sizeof(a))) = b
	}
	return dst
}
