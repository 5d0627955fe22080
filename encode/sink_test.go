package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/ytree/diag"
	"github.com/signadot/ytree/tree"
)

func exhausted(t *testing.T, err error) *diag.Error {
	t.Helper()
	var de *diag.Error
	if !errors.As(err, &de) || !errors.Is(err, diag.ErrBufferExhausted) {
		t.Fatalf("got %v, want buffer exhausted", err)
	}
	return de
}

func TestFixedSinkCapacity(t *testing.T) {
	tr := load(t, "a: 1\nb: [2, 3]\nc:\n  d: |\n    text\n")
	for _, f := range []EncodeOption{EncodeYAML(), EncodeJSON()} {
		want := emit(t, tr, f)
		n := len(want)

		buf := bytes.Repeat([]byte{'.'}, n-1)
		sink := NewFixedSink(buf)
		got, err := Encode(tr, sink, f)
		de := exhausted(t, err)
		if de.Attempted < n || got != n {
			t.Errorf("attempted %d returned %d, want %d", de.Attempted, got, n)
		}
		if sink.Len() != 0 || string(buf) != strings.Repeat(".", n-1) {
			t.Errorf("sink written: %q", buf)
		}

		sink = NewFixedSink(make([]byte, n))
		got, err = Encode(tr, sink, f)
		noErr(t, err)
		if got != n {
			t.Errorf("returned %d, want %d", got, n)
		}
		if diff := cmp.Diff(want, string(sink.Bytes())); diff != "" {
			t.Error(diff)
		}

		sink = NewFixedSink(make([]byte, n+10))
		got, err = Encode(tr, sink, f)
		noErr(t, err)
		if got != n || sink.Len() != n {
			t.Errorf("returned %d wrote %d, want %d", got, sink.Len(), n)
		}
	}
}

func TestFixedSinkTruncate(t *testing.T) {
	tr := load(t, "a: 1\nb: [2, 3]\n")
	want := emit(t, tr)
	for _, size := range []int{0, 1, 5, len(want) - 1} {
		sink := NewFixedSink(make([]byte, size))
		n, err := Encode(tr, sink, ErrorOnExcess(false))
		noErr(t, err)
		if n != len(want) {
			t.Errorf("size %d: returned %d, want %d", size, n, len(want))
		}
		if diff := cmp.Diff(want[:size], string(sink.Bytes())); diff != "" {
			t.Errorf("size %d:\n%s", size, diff)
		}
	}
}

func TestFixedSinkAppends(t *testing.T) {
	tr := load(t, "[1]\n")
	sink := NewFixedSink(make([]byte, 8))
	for range 2 {
		_, err := Encode(tr, sink, EncodeJSON())
		noErr(t, err)
	}
	if got := string(sink.Bytes()); got != "[1]\n[1]\n" {
		t.Errorf("got %q", got)
	}
	_, err := Encode(tr, sink, EncodeJSON())
	exhausted(t, err)
	sink.Reset()
	if sink.Cap() != 8 {
		t.Errorf("cap %d after reset", sink.Cap())
	}
}

// limitSink grows up to limit bytes and has no fixed capacity.
type limitSink struct {
	BufferSink
	limit int
}

func (s *limitSink) Acquire(n int, errorOnExcess bool) (int, error) {
	room := s.limit - s.Len()
	if room < n && errorOnExcess {
		return room, diag.ErrBufferExhausted
	}
	s.BufferSink.Acquire(min(n, room), false)
	return room, nil
}

func bigSeq(t *testing.T, n int) *tree.Tree {
	t.Helper()
	tr := tree.New()
	noErr(t, tr.ToSeq(tr.Root()))
	for i := range n {
		ch, err := tr.AppendChild(tr.Root())
		noErr(t, err)
		noErr(t, tr.ToVal(ch, strings.Repeat("x", i%7+1)))
	}
	return tr
}

func TestUnboundedExhausted(t *testing.T) {
	tr := bigSeq(t, 20)
	sink := &limitSink{limit: 10}
	_, err := Encode(tr, sink)
	de := exhausted(t, err)
	if de.Attempted <= 10 {
		t.Errorf("attempted %d", de.Attempted)
	}
	if sink.Len() > 10 {
		t.Errorf("wrote %d bytes", sink.Len())
	}
}

type failWriter struct {
	n int
}

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > 100 {
		return 0, errWrite
	}
	w.n += len(p)
	return len(p), nil
}

func TestWriterSink(t *testing.T) {
	tr := load(t, "a: 1\n")
	var buf bytes.Buffer
	n, err := EncodeTo(tr, &buf, EncodeJSON())
	noErr(t, err)
	if buf.String() != "{\"a\": 1}\n" || n != buf.Len() {
		t.Errorf("got %q (%d)", buf.String(), n)
	}

	// fails on flush
	_, err = EncodeTo(tr, &failWriter{n: 100})
	if !errors.Is(err, errWrite) {
		t.Errorf("flush: got %v", err)
	}

	// fails mid walk
	_, err = EncodeTo(bigSeq(t, 5000), &failWriter{})
	if !errors.Is(err, errWrite) || errors.Is(err, diag.ErrBufferExhausted) {
		t.Errorf("walk: got %v", err)
	}
}
