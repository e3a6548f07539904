package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPush(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		width int
		want  []byte
	}{
		{"one byte", 0x7f, 1, []byte{0x7f}},
		{"two bytes", 0x1234, 2, []byte{0x12, 0x34}},
		{"three bytes", 0x010203, 3, []byte{0x01, 0x02, 0x03}},
		{"four bytes", 0xdeadbeef, 4, []byte{0xde, 0xad, 0xbe, 0xef}},
		{"zero padded", 1, 4, []byte{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(0)
			require.NoError(t, b.Push(tt.value, tt.width))
			assert.Equal(t, tt.want, b.Bytes())
			assert.Equal(t, tt.width, b.Len())
		})
	}
}

func TestBufferPushRejectsBadInput(t *testing.T) {
	b := NewBuffer(0)
	assert.ErrorIs(t, b.Push(1, 0), ErrDNSError)
	assert.ErrorIs(t, b.Push(1, 5), ErrDNSError)
	assert.ErrorIs(t, b.Push(256, 1), ErrDNSError)
	assert.ErrorIs(t, b.Push(0x10000, 2), ErrDNSError)
	assert.Equal(t, 0, b.Len(), "failed pushes must not write")
}

func TestBufferAppend(t *testing.T) {
	a := BufferFrom([]byte{1, 2})
	b := BufferFrom([]byte{3})
	a.Append(b)
	a.Append(nil)
	assert.Equal(t, []byte{1, 2, 3}, a.Bytes())
	assert.Equal(t, []byte{3}, b.Bytes())
}

func TestReaderReadBytes(t *testing.T) {
	buf := BufferFrom([]byte{1, 2, 3, 4, 5})
	r := buf.Reader(1)

	got := r.ReadBytes(2)
	assert.Equal(t, []byte{2, 3}, got.Bytes())
	assert.Equal(t, 3, r.Offset())

	// Detached: mutating the copy leaves the source alone.
	got.Bytes()[0] = 0xff
	assert.Equal(t, byte(2), buf.Bytes()[1])

	// Underrun yields an empty buffer and keeps the cursor.
	short := r.ReadBytes(10)
	assert.Equal(t, 0, short.Len())
	assert.Equal(t, 3, r.Offset())
	assert.False(t, r.EOF())
}

func TestReaderReadValue(t *testing.T) {
	r := BufferFrom([]byte{0x12, 0x34, 0x56, 0x78, 0x9a}).Reader(0)

	v, ok := r.ReadValue(2)
	require.True(t, ok)
	assert.Equal(t, uint32(0x1234), v)

	_, ok = r.ReadValue(0)
	assert.False(t, ok, "zero width is absent")

	v, ok = r.ReadValue(3)
	require.True(t, ok)
	assert.Equal(t, uint32(0x56789a), v)
	assert.True(t, r.EOF())

	_, ok = r.ReadValue(1)
	assert.False(t, ok)
}

func TestReaderReadString(t *testing.T) {
	r := BufferFrom([]byte("hello")).Reader(0)
	assert.Equal(t, "hel", r.ReadString(3))
	assert.Equal(t, "", r.ReadString(3))
	assert.Equal(t, "lo", r.ReadString(2))
}

func TestReaderDoesNotShareCursor(t *testing.T) {
	buf := BufferFrom([]byte{1, 2, 3})
	a := buf.Reader(0)
	b := a.Clone()
	a.ReadBytes(2)
	assert.Equal(t, 2, a.Offset())
	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, 3, buf.Len())
}
