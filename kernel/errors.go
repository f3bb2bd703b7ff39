package kernel

import "fmt"

// FaultCode enumerates spec.md §7's taxonomy. Every one of them is fatal;
// there is no recoverable kernel error. The grouping into compile-time vs
// run-time below drives the abort blink pattern (kernel/abort.go), mirroring
// the subsystem split in the teacher's JoyError message table.
type FaultCode int

const (
	WcetGreaterThanPeriod FaultCode = iota // compile-time class
	MaxServicesReached

	UserAbort // run-time class
	TooManyTasks
	PeriodicOverran
	RtosInternal
	PeriodicCollision
	PeriodicSubscribed
	PeriodicFoundSubscribed
)

// compileTimeFaults are raised before the system is fully scheduling
// anything; every other code is a run-time fault, raised once tasks are
// already running. abort.go uses this split to choose a blink preamble.
var compileTimeFaults = map[FaultCode]bool{
	WcetGreaterThanPeriod: true,
	MaxServicesReached:    true,
}

// faultMessages is the registered message table, the same shape as the
// teacher's errorMap in src/joy/error.go: a fixed table keyed by code
// rather than ad hoc fmt.Sprintf calls scattered through the kernel.
var faultMessages = map[FaultCode]string{
	WcetGreaterThanPeriod:   "periodic task create: wcet exceeds period",
	MaxServicesReached:      "service_init: no service slots remain",
	UserAbort:               "application called Abort",
	TooManyTasks:            "task create: free list exhausted",
	PeriodicOverran:         "periodic task exceeded its wcet",
	RtosInternal:            "unreachable request kind reached the dispatcher",
	PeriodicCollision:       "two periodic tasks were simultaneously due",
	PeriodicSubscribed:      "periodic task attempted to subscribe",
	PeriodicFoundSubscribed: "publish found a periodic task on a waiter queue",
}

func (c FaultCode) String() string {
	if m, ok := faultMessages[c]; ok {
		return m
	}
	return fmt.Sprintf("FaultCode(%d)", int(c))
}

// classIndex returns this fault's zero-based position within its class
// (compile-time or run-time), or -1 for an unknown code. abort.go adds one
// to it for the blink count, per spec.md §6: "The blink count equals the
// error code's position within its class plus one."
func (c FaultCode) classIndex() int {
	order := runTimeFaultOrder
	if compileTimeFaults[c] {
		order = compileTimeFaultOrder
	}
	for i, fc := range order {
		if fc == c {
			return i
		}
	}
	return -1
}

var compileTimeFaultOrder = []FaultCode{WcetGreaterThanPeriod, MaxServicesReached}

var runTimeFaultOrder = []FaultCode{
	UserAbort, TooManyTasks, PeriodicOverran, RtosInternal,
	PeriodicCollision, PeriodicSubscribed, PeriodicFoundSubscribed,
}

// Fault is what reaches hal.AbortSignaler: the code plus the scheduling
// context at the moment of the fault, useful in logs and in host tests
// even though the tinygo build can't do anything with it but blink.
type Fault struct {
	Code FaultCode
	Tick uint64
	Task TaskID
}

func (f Fault) Error() string {
	return fmt.Sprintf("%s (tick=%d task=%d)", f.Code, f.Tick, f.Task)
}
