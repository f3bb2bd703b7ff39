package kernel

// EntryFunc is a task's user entry point. It takes no arguments; a task
// retrieves its 16-bit argument from inside itself via Task_GetArg.
type EntryFunc func()

// Frame is the architecture-specific saved-or-fabricated context for one
// task. Kernel scheduling code never looks inside it; only the CPUContext
// implementation linked in for the current build does. This is Design
// Note §9's "architecture-specific module behind a small trait/interface"
// applied literally: build_initial_frame(stack, entry, terminate) becomes
// Fabricate below, and the scheduler stores the result on taskDescriptor.
type Frame interface {
	taskID() TaskID
}

// CPUContext is the kernel-side half of the context-switch fabric of
// spec.md §4.1: Fabricate corresponds to Create's stack-frame fabrication,
// and Resume is "exit kernel" (kernel to task). The other direction,
// "enter kernel", is requestingContext.enterKernel below, called from the
// task's side.
type CPUContext interface {
	// Fabricate builds a frame byte-identical, in spirit, to what a real
	// Enter kernel would have saved had the task just called it from its
	// entry-point's prologue: first dispatch resumes at entry, and when
	// entry returns control lands in terminate.
	Fabricate(id TaskID, entry, terminate EntryFunc) Frame

	// Resume transfers control to to's task and blocks until that task
	// re-enters the kernel (via a system call or, on tick, involuntarily).
	// It returns the reason the task re-entered.
	Resume(to Frame) RequestKind
}

// requestingContext is implemented by the per-task side of a CPUContext
// backend; it is how a task's own syscall stubs (kernel/syscalls.go) hand
// control back to the kernel and block until redispatched. It is not part
// of CPUContext itself because ordinary kernel code never calls it — only
// code running on behalf of a task does.
type requestingContext interface {
	enterKernel(reason RequestKind)
}
