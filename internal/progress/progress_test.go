package progress

import (
	"bytes"
	"testing"
)

func TestDisabledIsNil(t *testing.T) {
	b := New(nil, false)
	if b != nil {
		t.Fatalf("disabled bar should be nil")
	}
	b.Inc()
	b.Done()
}

func TestBarCompletes(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, true)
	for i := 0; i < 1500; i++ {
		b.Inc()
	}
	b.Done() // must not hang
}

func TestEmptyRunCompletes(t *testing.T) {
	var out bytes.Buffer
	New(&out, true).Done()
}
