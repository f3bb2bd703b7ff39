//go:build tinygo

package hal

import "device/arm"

// exceptionHandler matches the ARM64 exception vector calling convention:
// vector type, ESR_EL1, and faulting address. Grounded field-for-field on
// src/hardware/arm-cortex-a53/interrupts.go's own exceptionHandler.
type exceptionHandler func(vecType, esr, addr uint64)

// excptrs is the Go-level dispatch table the vector assembly indexes into.
// Every slot starts pointing at unexpectedException; cmd/board overwrites
// slot 5 (EL1h IRQ) with the tick handler once the kernel is constructed.
var excptrs [16]exceptionHandler

//go:extern vectors
var vectors uint64

// InitInterrupts loads VBAR_EL1 with the vector table's address and masks
// interrupts until the caller is ready to unmask them, exactly the
// bring-up order src/hardware/arm-cortex-a53/interrupts.go's InitInterrupts
// uses. It also seeds every vector slot with unexpectedException so a stray
// exception before cmd/board installs the tick handler logs instead of
// jumping through a nil function pointer.
func InitInterrupts() {
	for i := range excptrs {
		excptrs[i] = unexpectedException
	}
	arm.AsmFull("adr x0, vectors", nil)
	arm.AsmFull("msr vbar_el1, x0", nil)
	maskInterrupts()
}

// SetExceptionHandlerEl1hInterrupts installs h at the EL1h IRQ slot, the
// one this kernel actually uses: the periodic timer tick. cmd/board wires
// this to a closure that only calls its cortexA53TickSource's OnTimerIRQ;
// the register save of the interrupted task is not done by this Go-level
// handler.
func SetExceptionHandlerEl1hInterrupts(h func(vecType, esr, addr uint64)) {
	excptrs[5] = h
}

//go:export raw_exception_handler
func rawExceptionHandler(vecType, esr, addr uint64) {
	excptrs[vecType](vecType, esr, addr)
}

// interruptLogger is set by cmd/board once a Logger exists; nil until then,
// which is only possible before InitInterrupts is called from anywhere but
// very early boot, so unexpectedException degrades to a no-op rather than
// panicking on a nil logger.
var interruptLogger interface {
	Errorf(format string, params ...interface{})
}

// SetInterruptLogger lets cmd/board route unexpected-exception reports
// through the same trust.Logger the kernel logs faults through, instead of
// a raw UART write the way src/hardware/arm-cortex-a53/interrupts.go's
// unexpectedException does.
func SetInterruptLogger(l interface {
	Errorf(format string, params ...interface{})
}) {
	interruptLogger = l
}

func unexpectedException(vecType, esr, addr uint64) {
	if interruptLogger == nil {
		return
	}
	interruptLogger.Errorf("unexpected exception: vector=%d esr=0x%x addr=0x%x", vecType, esr, addr)
}
