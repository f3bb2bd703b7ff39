package kernel

// TaskFunc is the user-facing entry point signature: a task receives a
// Handle bound to its own descriptor and uses it for every syscall spec.md
// §6 names. It is distinct from the lower-level EntryFunc the CPUContext
// fabricates a frame around; Create wraps a TaskFunc into an EntryFunc
// closure that already has its Handle bound.
type TaskFunc func(h *Handle)

// Handle is the capability a running task holds to call back into the
// kernel. It is handed to a task's TaskFunc at entry and must not be
// retained past Task_Terminate.
type Handle struct {
	k *Kernel
	d *taskDescriptor
}

func (h *Handle) enterKernel(reason RequestKind) {
	h.d.frame.(requestingContext).enterKernel(reason)
}

// Next is Task_Next: a voluntary yield. System and RR tasks go to the tail
// of their queue; Periodic clears ticksRemaining, closing the release.
func (h *Handle) Next() {
	h.enterKernel(TaskNext)
}

// Terminate is Task_Terminate. It never returns: the task's goroutine (or,
// on the tinygo build, its stack) is abandoned once the kernel has
// reclaimed the descriptor.
func (h *Handle) Terminate() {
	h.enterKernel(TaskTerminate)
	// enterKernel only returns once this frame is dispatched again, which
	// can never happen for a Dead descriptor; execution does not reach
	// here in a correct kernel.
	panic("terminate: resumed a terminated task")
}

// GetArg is Task_GetArg: it reads the caller's own descriptor without
// going through the full request-handle/dispatch cycle, matching spec.md
// §6's note that it "reads own descriptor" rather than affecting
// scheduling state.
func (h *Handle) GetArg() uint16 {
	return h.d.arg
}

// createTask is shared by the three exported Create_* syscalls below. It
// runs from whichever task is calling (or from Run's idle bootstrap,
// indirectly never — Create is always task-initiated).
func (h *Handle) createTask(class Class, fn TaskFunc, arg uint16, period, wcet, start uint32) TaskID {
	h.k.pending.create = createArgs{
		class:  class,
		taskFn: fn,
		arg:    arg,
		period: period,
		wcet:   wcet,
		start:  start,
	}
	h.enterKernel(TaskCreate)
	return h.k.pending.create.result
}

// Task_Create_System creates a System-class task.
func (h *Handle) Task_Create_System(fn TaskFunc, arg uint16) TaskID {
	return h.createTask(System, fn, arg, 0, 0, 0)
}

// Task_Create_RR creates a RoundRobin-class task.
func (h *Handle) Task_Create_RR(fn TaskFunc, arg uint16) TaskID {
	return h.createTask(RoundRobin, fn, arg, 0, 0, 0)
}

// Task_Create_Periodic creates a Periodic-class task. The kernel aborts
// with WcetGreaterThanPeriod if wcet > period, per spec.md §6/§7.
func (h *Handle) Task_Create_Periodic(fn TaskFunc, arg uint16, period, wcet, start uint32) TaskID {
	return h.createTask(Periodic, fn, arg, period, wcet, start)
}

// Service_Subscribe blocks the caller until the named service is
// published to. Fatal (PeriodicSubscribed) if called from a Periodic
// task.
func (h *Handle) Service_Subscribe(svc *ServiceHandle, outSlot *uint16) {
	if h.d.class == Periodic {
		h.k.raise(PeriodicSubscribed)
	}
	h.k.subscribe(svc.index, h.d, outSlot)
	h.enterKernel(TaskWait)
}

// Service_Publish wakes every waiter on the named service, delivering
// value to each one's out-slot.
func (h *Handle) Service_Publish(svc *ServiceHandle, value uint16) {
	interrupt := h.k.publish(svc.index, value, h.d.class)
	if interrupt {
		h.enterKernel(TaskInterrupt)
	}
}

// Now reads the tick counter plus the hardware sub-tick reading, per
// spec.md §6 and the Now() reproduction described in SPEC_FULL.md §13.
func (h *Handle) Now() uint64 {
	return h.k.now()
}
