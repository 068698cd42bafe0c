package arrayext

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/fixedmem/internal/common"
)

func TestSplitAt(t *testing.T) {
	a, b := SplitAt[[3]int, [2]int]([5]int{1, 2, 3, 4, 5})
	assert.Equal(t, [3]int{1, 2, 3}, a)
	assert.Equal(t, [2]int{4, 5}, b)
}

func TestSplitAtEdges(t *testing.T) {
	src := [4]string{"a", "b", "c", "d"}

	empty, all := SplitAt[[0]string, [4]string](src)
	assert.Equal(t, [0]string{}, empty)
	assert.Equal(t, src, all)

	all, empty = SplitAt[[4]string, [0]string](src)
	assert.Equal(t, src, all)
	assert.Equal(t, [0]string{}, empty)
}

func TestSplitAtDoesNotAliasSource(t *testing.T) {
	src := [3]int{1, 2, 3}
	a, b := SplitAt[[1]int, [2]int](src)
	a[0], b[1] = 10, 30
	assert.Equal(t, [3]int{1, 2, 3}, src)
}

func TestSplitAtPtr(t *testing.T) {
	src := [5]int{1, 2, 3, 4, 5}
	a, b := SplitAtPtr[[2]int, [3]int](&src)
	require.Equal(t, [2]int{1, 2}, *a)
	require.Equal(t, [3]int{3, 4, 5}, *b)

	a[1] = 20
	b[0] = 30
	*b = [3]int{7, 8, 9}
	assert.Equal(t, [5]int{1, 20, 7, 8, 9}, src)

	whole, none := SplitAtPtr[[5]int, [0]int](&src)
	assert.Same(t, &src, whole)
	assert.NotNil(t, none)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, [3]int{1, 2, 3}, Truncate[[3]int]([5]int{1, 2, 3, 4, 5}))
	assert.Equal(t, [0]int{}, Truncate[[0]int]([2]int{1, 2}))

	src := [5]int{1, 2, 3, 4, 5}
	head, _ := SplitAt[[3]int, [2]int](src)
	assert.Equal(t, head, Truncate[[3]int](src))
}

func TestAppend(t *testing.T) {
	got := Append[[5]int]([3]int{1, 2, 3}, [2]int{4, 5})
	assert.Equal(t, [5]int{1, 2, 3, 4, 5}, got)

	assert.Equal(t, [2]int{1, 2}, Append[[2]int]([2]int{1, 2}, [0]int{}))
	assert.Equal(t, [2]int{1, 2}, Append[[2]int]([0]int{}, [2]int{1, 2}))
	assert.Equal(t, [0]int{}, Append[[0]int]([0]int{}, [0]int{}))
}

func TestAppendPointerElements(t *testing.T) {
	x, y := new(int), new(int)
	*x, *y = 1, 2
	got := Append[[2]*int]([1]*int{x}, [1]*int{y})
	assert.Same(t, x, got[0])
	assert.Same(t, y, got[1])
}

func TestZeroSizeElements(t *testing.T) {
	a, b := SplitAt[[1]struct{}, [2]struct{}]([3]struct{}{})
	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
	assert.Len(t, Append[[3]struct{}](a, b), 3)
}

func TestShapeMismatchPanics(t *testing.T) {
	assert.PanicsWithError(t, common.ErrLenMismatch.Error()+": split [5]int into [3]int and [3]int", func() {
		SplitAt[[3]int, [3]int]([5]int{})
	})
	assert.Panics(t, func() { SplitAt[[3]int, [2]int8]([5]int{}) })
	assert.Panics(t, func() { SplitAt[[3]int, [2]int]([]int{1, 2, 3, 4, 5}) })
	assert.Panics(t, func() { Truncate[[6]int]([5]int{}) })
	assert.Panics(t, func() { Append[[4]int]([3]int{}, [2]int{}) })
	assert.Panics(t, func() { SplitAtPtr[[4]int, [2]int](&[5]int{}) })
}

func TestSplitAppendRoundTrip(t *testing.T) {
	condition := func(src [8]int64) bool {
		a, b := SplitAt[[5]int64, [3]int64](src)
		return Append[[8]int64](a, b) == src &&
			[5]int64(src[:5]) == a &&
			[3]int64(src[5:]) == b
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))

	strs := func(src [6]string) bool {
		a, b := SplitAt[[2]string, [4]string](src)
		return Append[[6]string](a, b) == src
	}
	require.NoError(t, quick.Check(strs, &quick.Config{}))
}

func TestAppendConcatenates(t *testing.T) {
	condition := func(a [3]uint16, b [4]uint16) bool {
		got := Append[[7]uint16](a, b)
		return [3]uint16(got[:3]) == a && [4]uint16(got[3:]) == b
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func FuzzSplitAt(f *testing.F) {
	f.Add([]byte("hello, fixed world"))
	f.Fuzz(func(t *testing.T, data []byte) {
		var src [16]byte
		copy(src[:], data)
		a, b := SplitAt[[7]byte, [9]byte](src)
		require.Equal(t, src[:7], a[:])
		require.Equal(t, src[7:], b[:])
		require.Equal(t, src, Append[[16]byte](a, b))
	})
}

func BenchmarkSplitAt(b *testing.B) {
	var src [64]uint64
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = SplitAt[[40]uint64, [24]uint64](src)
	}
}

func BenchmarkAppend(b *testing.B) {
	var x [40]uint64
	var y [24]uint64
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Append[[64]uint64](x, y)
	}
}
