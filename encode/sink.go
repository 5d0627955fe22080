package encode

import (
	"bufio"
	"io"
	"slices"

	"github.com/signadot/ytree/diag"
)

// Sink receives encoded output.
//
// Acquire makes room for at least n more bytes and returns the room
// available from the current position. A sink that cannot provide n bytes
// returns the room it has; if errorOnExcess is set it also returns an error
// wrapping diag.ErrBufferExhausted. Write, WriteByte and WriteRepeat fill
// the acquired room.
type Sink interface {
	Acquire(n int, errorOnExcess bool) (int, error)
	Write(p []byte)
	WriteByte(c byte) error
	WriteRepeat(c byte, n int)
}

// Bounded is implemented by sinks with a fixed capacity. Cap returns the
// room left.
type Bounded interface {
	Cap() int
}

// Flusher is implemented by sinks which buffer output.
type Flusher interface {
	Flush() error
}

// BufferSink collects output in a growable buffer.
type BufferSink struct {
	buf []byte
}

func NewBufferSink(size int) *BufferSink {
	return &BufferSink{buf: make([]byte, 0, size)}
}

func (b *BufferSink) Acquire(n int, _ bool) (int, error) {
	b.buf = slices.Grow(b.buf, n)
	return cap(b.buf) - len(b.buf), nil
}

func (b *BufferSink) Write(p []byte) { b.buf = append(b.buf, p...) }

func (b *BufferSink) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

func (b *BufferSink) WriteRepeat(c byte, n int) {
	for range n {
		b.buf = append(b.buf, c)
	}
}

func (b *BufferSink) Bytes() []byte  { return b.buf }
func (b *BufferSink) String() string { return string(b.buf) }
func (b *BufferSink) Len() int       { return len(b.buf) }
func (b *BufferSink) Reset()         { b.buf = b.buf[:0] }

// FixedSink writes into a caller owned buffer and never grows it.
type FixedSink struct {
	buf []byte
	n   int
}

// NewFixedSink returns a sink writing into buf. The length of buf, not its
// capacity, bounds the output.
func NewFixedSink(buf []byte) *FixedSink {
	return &FixedSink{buf: buf}
}

func (f *FixedSink) Cap() int { return len(f.buf) - f.n }

func (f *FixedSink) Acquire(n int, errorOnExcess bool) (int, error) {
	room := len(f.buf) - f.n
	if room < n && errorOnExcess {
		return room, diag.ErrBufferExhausted
	}
	return room, nil
}

func (f *FixedSink) Write(p []byte) { f.n += copy(f.buf[f.n:], p) }

func (f *FixedSink) WriteByte(c byte) error {
	if f.n == len(f.buf) {
		return diag.ErrBufferExhausted
	}
	f.buf[f.n] = c
	f.n++
	return nil
}

func (f *FixedSink) WriteRepeat(c byte, n int) {
	for ; n > 0 && f.n < len(f.buf); n-- {
		f.buf[f.n] = c
		f.n++
	}
}

// Bytes returns the part of the buffer written so far.
func (f *FixedSink) Bytes() []byte { return f.buf[:f.n] }
func (f *FixedSink) Len() int      { return f.n }
func (f *FixedSink) Reset()        { f.n = 0 }

// WriterSink streams output to an io.Writer. The first write error stops
// the encoding and is returned from Encode.
type WriterSink struct {
	w   *bufio.Writer
	err error
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

func (s *WriterSink) Acquire(n int, _ bool) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return max(n, s.w.Available()), nil
}

func (s *WriterSink) Write(p []byte) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.Write(p)
}

func (s *WriterSink) WriteByte(c byte) error {
	if s.err != nil {
		return s.err
	}
	s.err = s.w.WriteByte(c)
	return s.err
}

func (s *WriterSink) WriteRepeat(c byte, n int) {
	for ; n > 0 && s.err == nil; n-- {
		s.err = s.w.WriteByte(c)
	}
}

func (s *WriterSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}
