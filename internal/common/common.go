// Package common holds the run-time shape checks that stand in for array
// length arithmetic Go cannot express in its type system.
package common

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrNotArray     = errors.New("not an array type")
	ErrElemMismatch = errors.New("array element types differ")
	ErrLenMismatch  = errors.New("array lengths do not add up")
)

// Shape describes an array type.
type Shape struct {
	Type reflect.Type
	Elem reflect.Type
	Len  int
}

var shapes = struct {
	mu sync.RWMutex
	m  map[reflect.Type]Shape
}{m: make(map[reflect.Type]Shape)}

// ShapeOf returns the cached shape of t, or ErrNotArray.
func ShapeOf(t reflect.Type) (Shape, error) {
	shapes.mu.RLock()
	if s, ok := shapes.m[t]; ok {
		shapes.mu.RUnlock()
		return s, nil
	}
	shapes.mu.RUnlock()

	if t == nil || t.Kind() != reflect.Array {
		return Shape{}, fmt.Errorf("%w: %v", ErrNotArray, t)
	}

	shapes.mu.Lock()
	defer shapes.mu.Unlock()
	// Double-check
	if s, ok := shapes.m[t]; ok {
		return s, nil
	}
	s := Shape{Type: t, Elem: t.Elem(), Len: t.Len()}
	shapes.m[t] = s
	return s, nil
}

func mustShape(t reflect.Type) Shape {
	s, err := ShapeOf(t)
	if err != nil {
		panic(err)
	}
	return s
}

// CheckSplit panics unless src is [N]T, head is [M]T and rest is [N-M]T.
func CheckSplit(src, head, rest reflect.Type) {
	s, h, r := mustShape(src), mustShape(head), mustShape(rest)
	if h.Elem != s.Elem || r.Elem != s.Elem {
		panic(fmt.Errorf("%w: split %v into %v and %v", ErrElemMismatch, src, head, rest))
	}
	if h.Len+r.Len != s.Len {
		panic(fmt.Errorf("%w: split %v into %v and %v", ErrLenMismatch, src, head, rest))
	}
}

// CheckTruncate panics unless src is [N]T and dst is [M]T with M <= N.
func CheckTruncate(src, dst reflect.Type) {
	s, d := mustShape(src), mustShape(dst)
	if d.Elem != s.Elem {
		panic(fmt.Errorf("%w: truncate %v to %v", ErrElemMismatch, src, dst))
	}
	if d.Len > s.Len {
		panic(fmt.Errorf("%w: truncate %v to %v", ErrLenMismatch, src, dst))
	}
}

// CheckAppend panics unless a is [N]T, b is [M]T and dst is [N+M]T.
func CheckAppend(dst, a, b reflect.Type) {
	d, x, y := mustShape(dst), mustShape(a), mustShape(b)
	if x.Elem != d.Elem || y.Elem != d.Elem {
		panic(fmt.Errorf("%w: append %v and %v into %v", ErrElemMismatch, a, b, dst))
	}
	if x.Len+y.Len != d.Len {
		panic(fmt.Errorf("%w: append %v and %v into %v", ErrLenMismatch, a, b, dst))
	}
}

// CheckPrefix panics unless arr is [K]elem with K <= n, and returns K.
func CheckPrefix(arr, elem reflect.Type, n int) int {
	a := mustShape(arr)
	if a.Elem != elem {
		panic(fmt.Errorf("%w: %v over %v elements", ErrElemMismatch, arr, elem))
	}
	if a.Len > n {
		panic(fmt.Errorf("%w: %v over a head of %d", ErrLenMismatch, arr, n))
	}
	return a.Len
}
