package diag

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := error(At(Location{Name: "a.yaml", Line: 3}, ErrMalformedInput, "bad %s", "key"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if got, want := err.Error(), "malformed input: a.yaml:3: bad key"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	var de *Error
	if !errors.As(err, &de) || de.Loc.Line != 3 {
		t.Errorf("expected location line 3, got %+v", de)
	}
}

func TestExhaustedMessage(t *testing.T) {
	err := Exhausted(42, "fixed sink")
	if !errors.Is(err, ErrBufferExhausted) {
		t.Fatal("expected ErrBufferExhausted")
	}
	if !strings.Contains(err.Error(), "attempted 42 bytes") {
		t.Errorf("missing attempted count: %q", err.Error())
	}
}

func TestInitIdempotent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Init()
		}()
	}
	wg.Wait()
	Init()
	if !Initialized() {
		t.Fatal("expected initialized")
	}
}

func abortingCall() (err error) {
	defer Recover(&err)
	Abort(Errorf(ErrInvalidIndex, "node %d", 7))
	return nil
}

func TestAbortRecovered(t *testing.T) {
	Init()
	err := abortingCall()
	if !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestFaultNotRecovered(t *testing.T) {
	Init()
	defer func() {
		r := recover()
		if _, ok := r.(*Fault); !ok {
			t.Fatalf("expected *Fault, got %v", r)
		}
	}()
	func() (err error) {
		defer Recover(&err)
		Fatal("broken link %d", 3)
		return nil
	}()
	t.Fatal("fault was swallowed")
}
