//go:build tinygo

package hal

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

// quadA7RegisterMap mirrors src/hardware/arm-cortex-a53/arm_timer.go's
// QuadA7RegisterMap: the per-core local timer this kernel uses to generate
// the tick interrupt spec.md §6 consumes as "one tick elapsed".
type quadA7RegisterMap struct {
	Control                 volatile.Register32 // 0x00
	_unused                 volatile.Register32 // 0x04
	Prescaler               volatile.Register32 // 0x08
	_gpuRouting             volatile.Register32 // 0x0C
	_perfSet                volatile.Register32 // 0x10
	_perfClear              volatile.Register32 // 0x14
	_unused0                uint32               // 0x18
	CoreTimerLower32        volatile.Register32  // 0x1C
	CoreTimerUpper32        volatile.Register32  // 0x20
	LocalInterruptRouting   volatile.Register32  // 0x24
	_unknown0               uint32               // 0x28
	_axiOutCounters         volatile.Register32  // 0x2C
	_axiOutInterrupts       volatile.Register32  // 0x30
	LocalTimerControlStatus volatile.Register32  // 0x34
	LocalTimerWriteFlags    volatile.Register32  // 0x38
}

var quadA7 *quadA7RegisterMap = (*quadA7RegisterMap)(unsafe.Pointer(uintptr(0x40000000)))

const (
	quadA7LocalTimerControlInterruptEnable = 1 << 29
	quadA7LocalTimerControlTimerEnable     = 1 << 28
	quadA7TimerInterruptFlagClear          = 1 << 31
	quadA7TimerReload                      = 1 << 30
)

// cortexA53TickSource programs the QA7 local timer for a fixed period,
// counted in TickCycles counts of the free-running core timer. Unlike the
// host build, the tick's effect on the running task is delivered entirely
// through the register-level context switch (the IRQ vector calls
// contextSwitch, which is what makes kernel.Kernel.exitToTask return
// TimerExpired) rather than through Next()'s channel: Go-level code never
// races the timer against a task the way the host build has to. Next()
// exists only so cortexA53TickSource satisfies hal.TickSource; it returns
// nil, which blocks forever in a select, so kernel.Kernel.Run's
// host-only polling branch is simply never taken on this build.
type cortexA53TickSource struct {
	tickCycles uint16
}

func NewCortexA53TickSource(tickCycles uint16) *cortexA53TickSource {
	t := &cortexA53TickSource{tickCycles: tickCycles}
	t.program()
	return t
}

func (t *cortexA53TickSource) program() {
	quadA7.LocalTimerControlStatus.Set(uint32(t.tickCycles) |
		quadA7LocalTimerControlInterruptEnable |
		quadA7LocalTimerControlTimerEnable)
}

// OnTimerIRQ is called from the exception vector installed by cmd/board,
// after that vector has already saved the interrupted task's context via
// kernel.contextSwitch; it only acknowledges the interrupt and reprograms
// the next deadline by re-arming the reload bit, exactly as os.c's ISR
// adds TICK_CYCLES to the previous compare value.
func (t *cortexA53TickSource) OnTimerIRQ() {
	quadA7.LocalTimerWriteFlags.Set(quadA7TimerInterruptFlagClear | quadA7TimerReload)
}

func (t *cortexA53TickSource) Next() <-chan struct{} { return nil }

func (t *cortexA53TickSource) SubTick() uint16 {
	return uint16(quadA7.CoreTimerLower32.Get() % uint32(t.tickCycles))
}

func (t *cortexA53TickSource) TickCycles() uint16 { return t.tickCycles }

// maskInterrupts and unmaskInterrupts wrap the DAIF mask/unmask sequence
// the teacher's src/hardware/arm-cortex-a53/interrupts.go uses around
// enter_kernel/exit_kernel; kernel/context_tinygo.go calls these directly
// rather than duplicating the asm strings.
func maskInterrupts() {
	arm.AsmFull("msr daifset, #{cst}", map[string]interface{}{"cst": uint64(0xf)})
}

func unmaskInterrupts() {
	arm.AsmFull("msr daifclr, #{cst}", map[string]interface{}{"cst": uint64(0xf)})
}

// UnmaskInterrupts is the exported form cmd/board calls once every vector
// slot is populated; kernel/context_tinygo.go uses the unexported form
// around each context switch instead, since it never needs to leave
// interrupts masked afterward the way boot does.
func UnmaskInterrupts() { unmaskInterrupts() }
