// Package kernel implements the scheduler core spec.md §1 describes: a
// fixed-capacity, tri-class preemptive scheduler with periodic
// schedulability accounting, a publish/subscribe rendezvous, and the
// context-switch fabric gluing it to a timer tick and to system calls.
// The task table, queues and service array are fixed-size and built by
// New; allocation does not stop there, though: each task create allocates
// the task's frame and entry closures, and Service_Init allocates the
// handle it returns. Nothing here imports a concrete board package;
// hal.TickSource and hal.AbortSignaler are the only way the kernel touches
// hardware.
package kernel

import (
	"rtos/hal"
	"rtos/internal/trust"
)

// MaxServices bounds the bump-allocated service array, os.h's MAXSERVICES.
const MaxServices = 8

// Config carries the rewrite's equivalent of two of os.h's compile-time
// constants (MAXSERVICES, TICK_CYCLES): fixed at construction, never
// reconfigured at runtime, per SPEC_FULL.md §11. MAXPROCESS and MAXSTACK
// are not in Config; they are the package constants MaxTasks and (on the
// tinygo build) taskStackWords.
type Config struct {
	MaxServices int
	TickCycles  uint16
}

func DefaultConfig() Config {
	return Config{MaxServices: MaxServices, TickCycles: 1000}
}

// Kernel owns every piece of the data model in spec.md §3: the task table,
// the two ready queues, the periodic list, the service array, and the
// handful of scalar globals (current task, pending request, tick counter,
// ticks remaining, last fault).
type Kernel struct {
	cfg Config

	tasks    *taskTable
	sysQ     taskQueue
	rrQ      taskQueue
	periodic periodicList

	services    [MaxServices]service
	serviceNext int // bump allocator index; never decremented

	current *taskDescriptor

	cpu   CPUContext
	tick  hal.TickSource
	abort hal.AbortSignaler
	log   *trust.Logger

	pending request

	tickCount      uint64
	ticksRemaining int32

	lastFault *Fault
}

// New builds a Kernel with an idle task ready to run and everything else
// empty, the rewrite's equivalent of the dead-pool and idle-task setup in
// os.c's OS_Init. The caller supplies the board glue; kernel never
// constructs a hal implementation itself. Call Boot next to install the
// application's entry point, then Run.
func New(cfg Config, tick hal.TickSource, abort hal.AbortSignaler, log *trust.Logger) *Kernel {
	k := &Kernel{
		cfg:   cfg,
		tasks: newTaskTable(),
		cpu:   newCPUContext(),
		tick:  tick,
		abort: abort,
		log:   log,
	}
	newIdleTask(k)
	k.current = k.tasks.idle
	return k
}

// Boot creates the application's entry point as the first System-level
// task, the rewrite's equivalent of os.c's OS_Init calling
// kernel_create_task() directly for r_main before kernel_main_loop starts:
// there is no running task yet to route through enterKernel, so Boot calls
// the create handler directly instead of going through a Handle. Every
// other task the application needs is created from inside root, through
// the ordinary Handle.Task_Create_* syscalls, once Run is driving the
// dispatch loop. Boot must be called exactly once, before Run.
func (k *Kernel) Boot(root TaskFunc, arg uint16) TaskID {
	args := createArgs{class: System, taskFn: root, arg: arg}
	k.handleCreate(&args)
	return args.result
}

// Run is the scheduler's main loop, loop { dispatch(); exit_to_task();
// handle_request(); } from spec.md §4.2. On the tinygo build the timer
// IRQ interrupts exit_to_task directly and contextSwitch's return value is
// already TimerExpired when that happens, so hal.TickSource.Next() is
// never read from Go here. The host build has no such asynchronous
// preemption available to it (a goroutine cannot be halted mid-instruction
// from the outside the way a real CPU can), so a pending tick is checked
// for at the top of every iteration instead — a task only actually gets
// preempted at its next voluntary syscall. This is a disclosed host/test
// limitation, not a hardware one; see kernel/context_host.go.
func (k *Kernel) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-k.tick.Next():
			k.pending.kind = TimerExpired
			k.handleRequest()
			continue
		default:
		}
		k.dispatch()
		reason := k.exitToTask()
		k.pending.kind = reason
		k.handleRequest()
	}
}

// exitToTask hands control to k.current and blocks until it re-enters the
// kernel; the idle task's frame is fabricated once, in newIdleTask, to
// spin forever issuing Task_Next so the loop above always has something
// to run.
func (k *Kernel) exitToTask() RequestKind {
	return k.cpu.Resume(k.current.frame)
}

// raise records the fault and reaches the abort path; it never returns.
func (k *Kernel) raise(code FaultCode) {
	f := Fault{Code: code, Tick: k.tickCount}
	if k.current != nil {
		f.Task = k.current.id
	}
	k.lastFault = &f
	k.log.Errorf("fault: %s", f.Error())
	k.abortNow(code)
}
