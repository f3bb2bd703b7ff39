//go:build !tinygo

package hal

import (
	"bytes"
	"io"
	"os"
	"testing"
)

func TestManualTickSourceAdvanceDeliversExactlyOneTick(t *testing.T) {
	m := NewManualTickSource(1000)
	ch := m.Next()

	go m.Advance()
	<-ch

	select {
	case <-ch:
		t.Fatal("a single Advance delivered more than one tick")
	default:
	}
}

func TestManualTickSourceSubTickReportsSetValue(t *testing.T) {
	m := NewManualTickSource(1000)
	m.SetSubTick(250)
	if got := m.SubTick(); got != 250 {
		t.Fatalf("SubTick() = %d, want 250", got)
	}
	if got := m.TickCycles(); got != 1000 {
		t.Fatalf("TickCycles() = %d, want 1000", got)
	}
}

func TestLogAbortSignalerWritesBlinkPatternAndExits(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()

	var exitCode int
	l := &logAbortSignaler{out: w, exit: func(code int) { exitCode = code }}

	l.Abort(true, 3)
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading pipe: %v", err)
	}
	if !bytes.Contains(out, []byte("preamble=true")) || !bytes.Contains(out, []byte("blinks=3")) {
		t.Fatalf("Abort output = %q, want it to mention preamble=true and blinks=3", out)
	}
	if exitCode != 1 {
		t.Fatalf("exit code = %d, want 1", exitCode)
	}
}

func TestHostTickSourceReportsConfiguredTickCycles(t *testing.T) {
	h := NewHostTickSource(0, 2000)
	if got := h.TickCycles(); got != 2000 {
		t.Fatalf("TickCycles() = %d, want 2000", got)
	}
	if got := h.SubTick(); got != 0 {
		t.Fatalf("SubTick() before Next() is ever called = %d, want 0", got)
	}
}
