package dns

import "fmt"

// Buffer is a growable byte buffer used to assemble DNS wire data.
//
// Len reports the number of bytes written so far, not the capacity.
// Values are always written big-endian (network byte order).
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty buffer with room for sizeHint bytes.
func NewBuffer(sizeHint int) *Buffer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Buffer{data: make([]byte, 0, sizeHint)}
}

// BufferFrom wraps a copy of b.
func BufferFrom(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the written bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Push appends value as a width-byte big-endian unsigned integer.
// Width must be 1..4 and value must fit in width bytes.
func (b *Buffer) Push(value uint32, width int) error {
	if width < 1 || width > 4 {
		return fmt.Errorf("%w: invalid integer width %d", ErrDNSError, width)
	}
	if width < 4 && value >= 1<<(8*uint(width)) {
		return fmt.Errorf("%w: value %d does not fit in %d bytes", ErrDNSError, value, width)
	}
	for i := width - 1; i >= 0; i-- {
		b.data = append(b.data, byte(value>>(8*uint(i))))
	}
	return nil
}

// PushUint16 appends a 2-byte big-endian value.
func (b *Buffer) PushUint16(v uint16) {
	b.data = append(b.data, byte(v>>8), byte(v))
}

// PushUint32 appends a 4-byte big-endian value.
func (b *Buffer) PushUint32(v uint32) {
	b.data = append(b.data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// Append copies the bytes of other into b.
func (b *Buffer) Append(other *Buffer) {
	if other == nil {
		return
	}
	b.data = append(b.data, other.data...)
}

// AppendBytes copies raw bytes into b.
func (b *Buffer) AppendBytes(p []byte) {
	b.data = append(b.data, p...)
}

// Reader returns a reader positioned at startByte.
func (b *Buffer) Reader(startByte int) *Reader {
	if startByte < 0 {
		startByte = 0
	}
	return &Reader{buf: b, off: startByte}
}

// Reader is a read cursor over a Buffer. Reading never mutates the buffer;
// several readers may share one buffer.
type Reader struct {
	buf *Buffer
	off int
}

// NewReader returns a reader over a copy of msg, positioned at offset 0.
func NewReader(msg []byte) *Reader {
	return BufferFrom(msg).Reader(0)
}

// Offset returns the cursor position.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.off >= r.buf.Len() {
		return 0
	}
	return r.buf.Len() - r.off
}

// EOF reports whether the cursor reached the end of the buffer.
func (r *Reader) EOF() bool { return r.off >= r.buf.Len() }

// Clone returns an independent reader at the same position.
func (r *Reader) Clone() *Reader {
	return &Reader{buf: r.buf, off: r.off}
}

// ReadBytes returns a detached buffer holding the next n bytes and advances
// the cursor. If fewer than n bytes remain it returns an empty buffer and
// leaves the cursor in place.
func (r *Reader) ReadBytes(n int) *Buffer {
	if n <= 0 || r.Remaining() < n {
		return NewBuffer(0)
	}
	out := BufferFrom(r.buf.data[r.off : r.off+n])
	r.off += n
	return out
}

// ReadValue decodes an n-byte big-endian unsigned integer. ok is false when
// n is outside 1..4 or not enough bytes remain.
func (r *Reader) ReadValue(n int) (value uint32, ok bool) {
	if n < 1 || n > 4 || r.Remaining() < n {
		return 0, false
	}
	for _, c := range r.buf.data[r.off : r.off+n] {
		value = value<<8 | uint32(c)
	}
	r.off += n
	return value, true
}

// ReadUint16 reads a 2-byte value or fails with a wrapped ErrDNSError.
func (r *Reader) ReadUint16(what string) (uint16, error) {
	v, ok := r.ReadValue(2)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected EOF reading %s", ErrDNSError, what)
	}
	return uint16(v), nil
}

// ReadUint32 reads a 4-byte value or fails with a wrapped ErrDNSError.
func (r *Reader) ReadUint32(what string) (uint32, error) {
	v, ok := r.ReadValue(4)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected EOF reading %s", ErrDNSError, what)
	}
	return v, nil
}

// ReadString decodes the next n bytes as a flat character string.
// It returns "" when fewer than n bytes remain.
func (r *Reader) ReadString(n int) string {
	return string(r.ReadBytes(n).Bytes())
}
