package kernel

// newIdleTask fabricates the idle descriptor's frame, the one non-generic
// construction path Design Note §9 calls for (the NULL-level special case
// os.c's OS_Init hard-codes, made an explicit constructor instead of an
// overloaded sentinel value per SPEC_FULL.md §13). Idle's body simply
// yields forever: on real hardware it would spin with interrupts enabled
// until the timer preempts it, but the host build has no way to interrupt
// a running goroutine from outside, so idle must yield voluntarily to give
// kernel.Kernel.Run a chance to poll for a pending tick between quanta —
// see the commentary on Run in kernel.go.
func newIdleTask(k *Kernel) {
	d := k.tasks.idle
	h := &Handle{k: k, d: d}
	d.frame = k.cpu.Fabricate(0, func() {
		for {
			h.Next()
		}
	}, func() {})
}
