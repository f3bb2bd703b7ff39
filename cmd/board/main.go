//go:build tinygo

// Command board is the bare-metal entry point for a real Cortex-A53 target
// (a Raspberry Pi 3 running in AArch64 mode), the tinygo-build counterpart
// to cmd/simulate. Grounded on the teacher's src/joy/cmd/joy/main.go
// (a thin main that logs, calls into the kernel, and falls back to a
// hardware abort if that call ever returns) and QubicOS-Spark's
// main_tinygo.go for the board bring-up order.
package main

import (
	"machine"

	"rtos/hal"
	"rtos/internal/trust"
	"rtos/kernel"
)

// abortLEDPin is the board pin the abort signaler blinks on a fault; it has
// no timer or console role, so it is safe to pick before any peripheral
// bring-up happens.
const abortLEDPin = machine.LED

func main() {
	uart := machine.UART0
	log := trust.New(trust.ErrorMask|trust.WarnMask|trust.InfoMask, trust.NewUARTSink(uart))
	log.Infof("board: starting")

	hal.SetInterruptLogger(log)
	hal.InitInterrupts()

	tick := hal.NewCortexA53TickSource(1000)
	abort := hal.NewBoardAbortSignaler(abortLEDPin, spinDelay)

	k := kernel.New(kernel.Config{MaxServices: kernel.MaxServices, TickCycles: tick.TickCycles()}, tick, abort, log)

	// The EL1h IRQ vector fires while some task's frame is live, not the
	// kernel's; it must acknowledge and reprogram the timer before
	// returning through the very same contextSwitch call the interrupted
	// task made to get here, exactly the split kernel/context_tinygo.go's
	// doc comments describe: register save/restore happens in the vector's
	// own asm, and this Go-level handler only owns the peripheral side.
	hal.SetExceptionHandlerEl1hInterrupts(func(vecType, esr, addr uint64) {
		tick.OnTimerIRQ()
	})

	k.Boot(rootTask, 0)

	unmaskInterrupts()
	k.Run(nil)

	// Run only returns once its done channel is closed; it is given nil
	// here, which never closes, so reaching here means something is badly
	// wrong with the build itself.
	log.Fatalf("board: Run returned, which should never happen on a real target")
}

// rootTask is the application's entry point, created directly by Boot
// before Run starts driving dispatch. A real application would replace
// this with its own task graph; it is kept here as the minimal proof that
// Boot and Run wire together on real hardware, the same role
// src/joy/main.go's KernelMain call plays for the teacher's own family
// scheduler.
func rootTask(h *kernel.Handle) {
	for {
		h.Next()
	}
}

// unmaskInterrupts is a package-level wrapper so main doesn't need to know
// hal's DAIF helpers are unexported; InitInterrupts leaves interrupts
// masked on purpose so the handler table is fully populated before the
// first tick can possibly fire.
func unmaskInterrupts() {
	hal.UnmaskInterrupts()
}
