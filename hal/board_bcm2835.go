//go:build tinygo

package hal

import (
	"machine"
	"runtime/volatile"
	"unsafe"
)

// bcm2835MMIOBase is the peripheral base address on a Raspberry Pi 3
// running in low-peripheral mode, matching the teacher's hardware/rpi
// package.
const bcm2835MMIOBase = uintptr(0x3F000000)

// gpioRegisterMap mirrors src/hardware/bcm2835/gpio.go field for field; it
// is the abort LED's only path to hardware, kept separate from the timer
// register map below the way the teacher keeps GPIO and the ARM timer in
// distinct hardware sub-packages.
type gpioRegisterMap struct {
	funcSelect       [6]volatile.Register32
	_reserved00      volatile.Register32
	outputSet0       volatile.Register32
	outputSet1       volatile.Register32
	_reserved01      volatile.Register32
	outputClear0     volatile.Register32
	outputClear1     volatile.Register32
}

var gpio *gpioRegisterMap = (*gpioRegisterMap)(unsafe.Pointer(bcm2835MMIOBase + 0x200000))

type gpioMode uint32

const (
	gpioInput  gpioMode = 0
	gpioOutput gpioMode = 1
)

// abortLEDPin is the single GPIO pin the abort path blinks. It is
// configured through machine.Pin the way QubicOS-Spark's hal/tinygo.go
// brings up its LED pins, rather than poking funcSelect bits directly for
// the one pin this kernel actually drives; the raw register map above
// stays in place for boards that need it (Design Note: kept, not deleted,
// because it documents the real MMIO layout the pin abstraction sits on).
type abortLEDPin struct {
	pin machine.Pin
}

// configureLEDBank wires the given board pin as the abort LED, the same
// pin bring-up convention QubicOS-Spark's hal/tinygo.go uses for its LED
// bank: configure the pin, drive it low so the board boots dark.
func configureLEDBank(pin machine.Pin) *abortLEDPin {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &abortLEDPin{pin: pin}
}

func (l *abortLEDPin) on()  { l.pin.High() }
func (l *abortLEDPin) off() { l.pin.Low() }

// boardAbortSignaler drives abortLEDPin forever once a Fault reaches it;
// it never returns, matching os.c's OS_Abort infinite blink loop.
type boardAbortSignaler struct {
	led   *abortLEDPin
	delay func()
}

func NewBoardAbortSignaler(pin machine.Pin, delay func()) *boardAbortSignaler {
	return &boardAbortSignaler{led: configureLEDBank(pin), delay: delay}
}

func (b *boardAbortSignaler) Abort(preamble bool, blinks int) {
	for {
		if preamble {
			b.led.on()
			b.delay()
			b.led.off()
			b.delay()
			b.delay()
			b.delay()
		}
		for i := 0; i < blinks; i++ {
			b.led.on()
			b.delay()
			b.led.off()
			b.delay()
		}
		b.delay()
		b.delay()
		b.delay()
		b.delay()
	}
}
