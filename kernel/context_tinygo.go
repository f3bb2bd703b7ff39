//go:build tinygo

package kernel

import "unsafe"

// registerSavedState is the canonical register block spec.md §4.1 saves on
// enter_kernel and restores on exit_kernel: the callee-saved general
// purpose registers, frame pointer, stack pointer and program counter,
// exactly the field set of the teacher's src/joy/family.go
// RegisterSavedState, plus the saved processor status word §4.1 calls out
// separately for the interrupt-enable bit.
type registerSavedState struct {
	X19, X20, X21, X22, X23, X24, X25, X26, X27, X28 uint64
	FP, SP, PC                                        uint64
	PSTATE                                             uint64
}

const interruptEnableBit = uint64(1) << 7 // PSTATE.I, cleared means enabled

// taskStackWords is the fixed stack area every application task frame is
// fabricated on; sized generously since there is no dynamic allocator to
// grow it later (Non-goals: no allocation after init).
const taskStackWords = 2048

// tinygoFrame is a Frame on the real hardware build: a private stack area
// plus the saved register block. entry/term are held here, not baked into
// the fabricated stack bytes, because Go closures have no fixed address a
// raw PC field can hold the way os.c bakes a C function pointer onto the
// stack; cortexA53Trampoline is the PC every fabricated frame actually
// starts at, and it looks the closures up here before jumping into them.
type tinygoFrame struct {
	id    TaskID
	stack [taskStackWords]uint64
	rss   registerSavedState
	entry EntryFunc
	term  EntryFunc
}

func (f *tinygoFrame) taskID() TaskID { return f.id }

type cortexA53Context struct {
	kernelRSS registerSavedState
	running   *tinygoFrame // needed by cortexA53Trampoline to find entry/term
}

// activeContext is the one CPUContext instance that exists on a real board
// (there is exactly one core running this kernel), the same role the
// teacher's schedule.go package-level currentFamily variable plays: a
// tinygoFrame has no other way to reach the kernel's saved register block
// when it enters the kernel, since enterKernel is called from task code
// with no Kernel or cortexA53Context receiver in scope.
var activeContext *cortexA53Context

func newCPUContext() CPUContext {
	c := &cortexA53Context{}
	activeContext = c
	return c
}

// Fabricate lays out the stack exactly as spec.md §4.1 describes in
// spirit: the saved SP points just above a fresh stack area, and the saved
// PC is cortexA53Trampoline's address so that the first Resume of this
// frame lands in the trampoline, which then calls entry and, when entry
// returns, term — mirroring "first dispatch returns into the task's entry
// function; when it returns, it lands in the terminate system call."
func (c *cortexA53Context) Fabricate(id TaskID, entry, terminate EntryFunc) Frame {
	f := &tinygoFrame{id: id, entry: entry, term: terminate}
	top := uintptr(unsafe.Pointer(&f.stack[taskStackWords-1]))
	f.rss = registerSavedState{
		FP:     uint64(top),
		SP:     uint64(top),
		PC:     cortexA53TrampolinePtr,
		PSTATE: 0, // interrupt-enable bit clear: task runs with interrupts on
	}
	return f
}

// cortexA53TrampolinePtr holds cortexA53Trampoline's address as a plain
// value, the same "extern pointer constant" idiom src/joy/family.go uses
// for retFromForkPtr: the .s file beside cmd/board's linker script defines
// this symbol as a single .quad pointing at cortexA53Trampoline, so a
// normal Go read of the variable yields the address without any of the
// reflect/funcPC tricks a portable build would need.
//
//go:extern cortexA53TrampolinePtr
var cortexA53TrampolinePtr uint64

func (c *cortexA53Context) Resume(to Frame) RequestKind {
	f := to.(*tinygoFrame)
	c.running = f
	maskInterrupts()
	// None is unused by a resumed task; the reason parameter only carries
	// information in the other direction, task to kernel (see enterKernel
	// below). This call does not return until the task (or the timer IRQ
	// vector, for TimerExpired) switches back into kernelRSS.
	reason := contextSwitch(&c.kernelRSS, &f.rss, None)
	unmaskInterrupts()
	return reason
}

// enterKernel is the task-side half of the switch: it saves the calling
// task's live registers into its own frame (the asm's "from"), restores
// the kernel's saved registers, and places reason where the ABI return
// register lands once execution resumes at the instruction right after
// Resume's contextSwitch call above — which is exactly how Resume's call
// finally "returns" a RequestKind, the naked-function symmetry spec.md
// §4.1 describes for enter_kernel/exit_kernel. This call itself does not
// return to its caller (the task) until a later Resume of this same frame
// restores f.rss and lands back at the instruction after this one.
func (f *tinygoFrame) enterKernel(reason RequestKind) {
	contextSwitch(&f.rss, &activeContext.kernelRSS, reason)
}

// cortexA53Trampoline is where every freshly-fabricated frame's saved PC
// actually points. contextSwitch jumps here instead of into the closure
// directly because a Frame's PC field is a plain integer, not something
// that can hold a Go closure value; this indirection is the one departure
// from a byte-identical port of os.c's fabricated stack, and it is
// confined to first dispatch only — every subsequent Resume of this frame
// restores a genuine mid-function PC saved by a real enterKernel call.
//
//export cortexA53Trampoline
func cortexA53Trampoline(ctx *cortexA53Context) {
	f := ctx.running
	f.entry()
	f.term()
}

// contextSwitch is the naked assembly half of the fabric: it saves the
// caller's registers into from, restores to's registers, and jumps to the
// restored PC. It is used symmetrically for both directions of the switch:
// Resume calls it kernel-to-task, (*tinygoFrame).enterKernel calls it
// task-to-kernel. A kernel-to-task call "returns" a RequestKind only once
// some later task-to-kernel call restores kernelRSS with reason placed in
// the return register, landing back at the instruction after the original
// call, exactly the naked-function symmetry spec.md §4.1 describes for
// enter_kernel/exit_kernel. Declared //go:external the same way the
// teacher declares cpuSwitchTo in src/joy/schedule.go; the corresponding
// .s file lives beside cmd/board's linker script, not in this package.
//
//go:external
func contextSwitch(from, to *registerSavedState, reason RequestKind) RequestKind
