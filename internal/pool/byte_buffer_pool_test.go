package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWrite([]byte("ab"))
	n, err := bb.Write([]byte("cd"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = bb.WriteString("ef")
	require.NoError(t, err)

	require.Equal(t, []byte("abcdef"), bb.Bytes())
	require.Equal(t, 6, bb.Len())

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), written)
	require.Equal(t, "abcdef", out.String())

	bb.Reset()
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 6)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(10)
	require.GreaterOrEqual(t, bb.Cap(), ColumnBufferDefaultSize)

	big := NewByteBuffer(8 * ColumnBufferDefaultSize)
	big.B = big.B[:cap(big.B)]
	before := big.Cap()
	big.Grow(1)
	require.Equal(t, before+before/4, big.Cap())

	bb.Grow(3 * ColumnBufferDefaultSize)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 3*ColumnBufferDefaultSize)
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte{1})
	region := bb.Extend(3)
	require.Len(t, region, 3)
	copy(region, []byte{2, 3, 4})
	require.Equal(t, []byte{1, 2, 3, 4}, bb.Bytes())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Zero(t, again.Len())

	huge := NewByteBuffer(128)
	require.NotPanics(t, func() { p.Put(huge) })
	require.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools(t *testing.T) {
	col := GetColumnBuffer()
	require.GreaterOrEqual(t, col.Cap(), 0)
	PutColumnBuffer(col)

	payload := GetPayloadBuffer()
	require.Zero(t, payload.Len())
	PutPayloadBuffer(payload)
}

func BenchmarkByteBuffer_Extend(b *testing.B) {
	bb := NewByteBuffer(ColumnBufferDefaultSize)
	for b.Loop() {
		bb.Reset()
		for range 512 {
			bb.Extend(8)
		}
	}
}
