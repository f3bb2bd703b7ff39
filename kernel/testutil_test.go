package kernel

import (
	"rtos/internal/trust"
)

// fakeTickSource is a no-op hal.TickSource for white-box tests that drive
// onTick/dispatch/handleRequest directly rather than through Run's select
// loop; its channel is never fed, so it never fires on its own.
type fakeTickSource struct {
	cycles  uint16
	subTick uint16
	ch      chan struct{}
}

func newFakeTickSource() *fakeTickSource {
	return &fakeTickSource{cycles: 1000, ch: make(chan struct{})}
}

func (f *fakeTickSource) Next() <-chan struct{} { return f.ch }
func (f *fakeTickSource) SubTick() uint16       { return f.subTick }
func (f *fakeTickSource) TickCycles() uint16    { return f.cycles }

// fakeAbortSignaler records the last abort instead of blinking a GPIO and
// exiting, so tests can recover() from the panic kernel.abortNow always
// raises and inspect what would have been signaled.
type fakeAbortSignaler struct {
	called   bool
	preamble bool
	blinks   int
}

func (f *fakeAbortSignaler) Abort(preamble bool, blinks int) {
	f.called = true
	f.preamble = preamble
	f.blinks = blinks
}

// discardSink swallows every log line; tests assert on kernel state and on
// the fakeAbortSignaler, not on log output.
type discardSink struct{}

func (discardSink) Write(trust.MaskLevel, string) {}

// newTestKernel builds a Kernel the way New does, but wired to the fakes
// above instead of a real hal backend, for white-box tests that reach past
// the public Handle surface into Kernel's own methods.
func newTestKernel() (*Kernel, *fakeAbortSignaler) {
	abortSig := &fakeAbortSignaler{}
	k := &Kernel{
		cfg:   DefaultConfig(),
		tasks: newTaskTable(),
		cpu:   newCPUContext(),
		tick:  newFakeTickSource(),
		abort: abortSig,
		log:   trust.New(trust.ErrorMask, discardSink{}),
	}
	newIdleTask(k)
	k.current = k.tasks.idle
	return k, abortSig
}

// expectAbort runs fn and fails the test unless fn reaches kernel.raise,
// which always panics after handing the fault to AbortSignaler.
func expectAbort(t interface{ Fatalf(string, ...interface{}) }, fn func()) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected fn to reach a fault abort, it returned normally")
		}
	}()
	fn()
}
