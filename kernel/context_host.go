//go:build !tinygo

package kernel

// The host build cannot switch a real stack pointer, so it simulates the
// task/kernel stack dichotomy with one goroutine per task and a pair of
// unbuffered handoff channels, the same shape as QubicOS-Spark's
// sparkos/kernel cooperative context switch (kernel.go's Step calling into
// a Task.Step, context.go's channel-backed blocking primitives) rather
// than a from-scratch concurrency idiom. A task's goroutine only ever
// blocks on its own resume channel or is running; there is no forced
// preemption of a running goroutine mid-instruction, which is why
// kernel/ticker.go's overrun detection works by bookkeeping alone (it does
// not need to physically halt the offending goroutine — the fault reaches
// hal.AbortSignaler and the process exits) rather than by suspending it.
type hostFrame struct {
	id      TaskID
	resume  chan struct{}
	parked  chan RequestKind
	started bool
	entry   EntryFunc
	term    EntryFunc
}

func (f *hostFrame) taskID() TaskID { return f.id }

func (f *hostFrame) enterKernel(reason RequestKind) {
	f.parked <- reason
	<-f.resume
}

type hostCPUContext struct{}

func newCPUContext() CPUContext { return &hostCPUContext{} }

func (c *hostCPUContext) Fabricate(id TaskID, entry, terminate EntryFunc) Frame {
	return &hostFrame{
		id:     id,
		resume: make(chan struct{}),
		parked: make(chan RequestKind),
		entry:  entry,
		term:   terminate,
	}
}

func (c *hostCPUContext) Resume(to Frame) RequestKind {
	f := to.(*hostFrame)
	if !f.started {
		f.started = true
		go f.run()
	}
	f.resume <- struct{}{}
	return <-f.parked
}

func (f *hostFrame) run() {
	<-f.resume
	f.entry()
	f.term()
	// term is expected to call the terminate syscall, which never
	// returns (it blocks on f.resume forever inside enterKernel); if a
	// caller-supplied term returns anyway there is nothing further to
	// hand back to, so the goroutine simply exits.
}
