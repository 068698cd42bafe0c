// Package slicen provides Slice, a view over a slice that is known to hold at
// least N elements. The first N elements form the head, the rest the tail.
//
// A Slice never owns or copies its memory. Head, Tail and Full all alias the
// region the view was built from, and Widen and Narrow only move the
// boundary between head and tail.
package slicen

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/rawbytedev/fixedmem/internal/common"
)

// ErrNotEnoughEntries is returned when a view needs more elements than the
// region holds.
var ErrNotEnoughEntries = errors.New("not enough entries")

// Slice is a view over region whose first n elements are the head.
// The zero value is an empty view with an empty head.
type Slice[T any] struct {
	region []T
	n      int
}

// New returns a view over region with a head of n elements, or
// ErrNotEnoughEntries if region is shorter than n.
func New[T any](region []T, n int) (Slice[T], error) {
	if n < 0 {
		panic(fmt.Sprintf("slicen: negative head length %d", n))
	}
	if len(region) < n {
		return Slice[T]{}, ErrNotEnoughEntries
	}
	return Slice[T]{region: region, n: n}, nil
}

// FromUnchecked is New without the length check. The caller must guarantee
// len(region) >= n; otherwise the behavior of the returned view is undefined.
func FromUnchecked[T any](region []T, n int) Slice[T] {
	return Slice[T]{region: region, n: n}
}

// N is the head length.
func (s Slice[T]) N() int { return s.n }

// Len is the length of the whole region, head plus tail.
func (s Slice[T]) Len() int { return len(s.region) }

// Head returns the first N elements. Its capacity is N, so appending to it
// never writes into the tail.
func (s Slice[T]) Head() []T { return s.region[:s.n:s.n] }

// Tail returns the elements after the head; it may be empty.
func (s Slice[T]) Tail() []T {
	l := len(s.region)
	return s.region[s.n:l:l]
}

// Full returns head and tail as one slice, reflecting the current boundary.
func (s Slice[T]) Full() []T {
	l := len(s.region)
	return s.region[:l:l]
}

// Split returns Head and Tail.
func (s Slice[T]) Split() (head, tail []T) {
	return s.Head(), s.Tail()
}

// Widen moves the first m tail elements into the head. It fails with
// ErrNotEnoughEntries if the tail is shorter than m.
func (s Slice[T]) Widen(m int) (Slice[T], error) {
	if m < 0 {
		panic(fmt.Sprintf("slicen: negative widen %d", m))
	}
	if len(s.region)-s.n < m {
		return Slice[T]{}, ErrNotEnoughEntries
	}
	s.n += m
	return s, nil
}

// WidenUnchecked is Widen without the length check. The caller must
// guarantee len(s.Tail()) >= m.
func (s Slice[T]) WidenUnchecked(m int) Slice[T] {
	s.n += m
	return s
}

// Narrow keeps the first m head elements in the head and hands the rest
// back to the front of the tail. m must be in [0, N].
func (s Slice[T]) Narrow(m int) Slice[T] {
	if m < 0 || m > s.n {
		panic(fmt.Sprintf("slicen: narrow to %d out of range [0, %d]", m, s.n))
	}
	s.n = m
	return s
}

// HeadAs returns the first len(A) head elements as a pointer to the array
// type A, which must be [K]T with K <= s.N(). Writes through the pointer
// land in the region. It panics if the region itself is shorter than K,
// which only a view from FromUnchecked can be.
func HeadAs[A, T any](s Slice[T]) *A {
	k := common.CheckPrefix(reflect.TypeFor[A](), reflect.TypeFor[T](), s.n)
	if len(s.region) < k {
		panic(fmt.Sprintf("slicen: %v over a region of %d", reflect.TypeFor[A](), len(s.region)))
	}
	var zero A
	if unsafe.Sizeof(zero) == 0 {
		return new(A)
	}
	return (*A)(unsafe.Pointer(unsafe.SliceData(s.region)))
}

// Format renders the view exactly as fmt renders Full().
func (s Slice[T]) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), s.Full())
}

func (s Slice[T]) String() string {
	return fmt.Sprint(s.Full())
}
