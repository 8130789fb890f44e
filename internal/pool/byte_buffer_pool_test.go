package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_BasicOperations(t *testing.T) {
	t.Run("Bytes", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		bb.MustWrite([]byte("hello"))

		raw := bb.Bytes()
		assert.Equal(t, []byte("hello"), raw)
		assert.True(t, &bb.B[0] == &raw[0], "Bytes() should return the same underlying slice")
	})

	t.Run("Reset", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		bb.MustWrite([]byte("some data"))
		originalCap := cap(bb.B)

		bb.Reset()
		assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
		assert.Equal(t, originalCap, bb.Cap(), "Reset should preserve capacity")
	})

	t.Run("MustWrite", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		bb.MustWrite([]byte("mask"))
		bb.MustWrite([]byte{})
		bb.MustWrite([]byte("|values"))
		assert.Equal(t, []byte("mask|values"), bb.B)
		assert.Equal(t, 11, bb.Len())
	})

	t.Run("Write", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		n, err := bb.Write([]byte("header"))
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, []byte("header"), bb.B)
	})

	t.Run("SetLength", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.SetLength(40)
		assert.Equal(t, 40, bb.Len())
		assert.Panics(t, func() { bb.SetLength(-1) })
		assert.Panics(t, func() { bb.SetLength(cap(bb.B) + 1) })
	})

	t.Run("ExtendOrGrow", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.ExtendOrGrow(4)
		assert.Equal(t, 4, bb.Len())

		// Beyond initial capacity forces growth.
		bb.ExtendOrGrow(1024)
		assert.Equal(t, 1028, bb.Len())
		assert.GreaterOrEqual(t, bb.Cap(), 1028)
	})

	t.Run("Slice", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.MustWrite([]byte{1, 2, 3, 4})

		s := bb.Slice(1, 3)
		assert.Equal(t, []byte{2, 3}, s)

		// Writes through the slice land in the buffer.
		s[0] = 9
		assert.Equal(t, []byte{1, 9, 3, 4}, bb.Bytes())

		// Slicing past the length but within capacity is allowed.
		assert.Len(t, bb.Slice(0, 8), 8)

		assert.Panics(t, func() { bb.Slice(-1, 2) })
		assert.Panics(t, func() { bb.Slice(3, 2) })
		assert.Panics(t, func() { bb.Slice(0, bb.Cap()+1) })
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(BlobBufferDefaultSize)
	bb.MustWrite([]byte("artifact bytes"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, int64(14), n)
	assert.Equal(t, "artifact bytes", out.String())

	n, err = bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, int64(0), n)
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("SufficientCapacity", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		originalCap := cap(bb.B)

		bb.Grow(100)
		assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
	})

	t.Run("SmallBuffer", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		bb.MustWrite(make([]byte, BlobBufferDefaultSize))

		bb.Grow(1024)
		assert.GreaterOrEqual(t, cap(bb.B), BlobBufferDefaultSize+1024)
		assert.Equal(t, BlobBufferDefaultSize, bb.Len(), "length should not change")
	})

	t.Run("LargeBuffer", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		largeSize := 4*BlobBufferDefaultSize + 1024
		bb.B = make([]byte, largeSize)

		bb.Grow(2048)
		assert.GreaterOrEqual(t, cap(bb.B), largeSize+2048)
	})

	t.Run("PreservesData", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		payload := []byte("retained coefficient payload")
		bb.MustWrite(payload)

		bb.Grow(BlobBufferDefaultSize * 2)
		assert.Equal(t, payload, bb.B, "data should be preserved after growth")
	})

	t.Run("ZeroBytes", func(t *testing.T) {
		bb := NewByteBuffer(BlobBufferDefaultSize)
		originalCap := cap(bb.B)

		bb.Grow(0)
		assert.Equal(t, originalCap, cap(bb.B))
	})
}

func TestBlobBufferPool(t *testing.T) {
	t.Run("GetReturnsEmptyBuffer", func(t *testing.T) {
		bb := GetBlobBuffer()
		defer PutBlobBuffer(bb)

		require.NotNil(t, bb)
		assert.Equal(t, 0, bb.Len(), "pooled buffer should be empty")
		assert.GreaterOrEqual(t, bb.Cap(), BlobBufferDefaultSize)
	})

	t.Run("PutNilBuffer", func(t *testing.T) {
		assert.NotPanics(t, func() { PutBlobBuffer(nil) })
	})

	t.Run("PutResetsBuffer", func(t *testing.T) {
		bb := GetBlobBuffer()
		bb.MustWrite([]byte("stale payload"))

		PutBlobBuffer(bb)
		assert.Equal(t, 0, bb.Len(), "PutBlobBuffer should reset the buffer")
	})
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	t.Run("DiscardsOversized", func(t *testing.T) {
		p := NewByteBufferPool(1024, 4096)

		bb := p.Get()
		bb.Grow(10000)
		assert.Greater(t, cap(bb.B), 4096)

		p.Put(bb)

		bb2 := p.Get()
		assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
	})

	t.Run("ZeroMeansNoLimit", func(t *testing.T) {
		p := NewByteBufferPool(1024, 0)

		bb := p.Get()
		bb.Grow(1024 * 1024)
		p.Put(bb)

		require.NotNil(t, p.Get())
	})
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetBlobBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutBlobBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	// One compressed payload per iteration, roughly a small-map artifact.
	data := make([]byte, 1024)

	b.ResetTimer()
	for b.Loop() {
		bb := GetBlobBuffer()
		bb.MustWrite(data)
		PutBlobBuffer(bb)
	}
}

func BenchmarkPool_vs_NewBuffer(b *testing.B) {
	data := make([]byte, 1024)

	b.Run("WithPool", func(b *testing.B) {
		for b.Loop() {
			bb := GetBlobBuffer()
			bb.MustWrite(data)
			PutBlobBuffer(bb)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		for b.Loop() {
			bb := NewByteBuffer(BlobBufferDefaultSize)
			bb.MustWrite(data)
		}
	})
}

// errorWriter is a writer that always returns an error
type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	return 0, ew.err
}
