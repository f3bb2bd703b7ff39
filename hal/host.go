//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"time"
)

// hostTickSource stands in for the board's output-compare timer when the
// kernel runs on a development machine (cmd/simulate). It is grounded on QubicOS-Spark's hal/host.go software stand-ins
// for board peripherals.
type hostTickSource struct {
	period     time.Duration
	tickCycles uint16
	ticker     *time.Ticker
	ch         chan struct{}
	started    time.Time
}

// NewHostTickSource builds a TickSource driven by a real wall-clock ticker.
// tickCycles is reported through SubTick/TickCycles purely for Now()'s
// sub-tick approximation; it has no effect on the real timing here.
func NewHostTickSource(period time.Duration, tickCycles uint16) *hostTickSource {
	return &hostTickSource{period: period, tickCycles: tickCycles, ch: make(chan struct{}, 1)}
}

func (h *hostTickSource) Next() <-chan struct{} {
	if h.ticker == nil {
		h.started = time.Now()
		h.ticker = time.NewTicker(h.period)
		go func() {
			for range h.ticker.C {
				select {
				case h.ch <- struct{}{}:
				default:
				}
			}
		}()
	}
	return h.ch
}

func (h *hostTickSource) SubTick() uint16 {
	if h.started.IsZero() {
		return 0
	}
	elapsed := time.Since(h.started)
	within := elapsed % h.period
	frac := float64(within) / float64(h.period)
	return uint16(frac * float64(h.tickCycles))
}

func (h *hostTickSource) TickCycles() uint16 { return h.tickCycles }

// manualTickSource is a deterministic TickSource: ticks happen only when
// Advance is called, never from a background goroutine. Only this
// package's tests use it; the kernel tests use their own fake and
// cmd/simulate uses hostTickSource.
type manualTickSource struct {
	tickCycles uint16
	subTick    uint16
	ch         chan struct{}
}

func NewManualTickSource(tickCycles uint16) *manualTickSource {
	return &manualTickSource{tickCycles: tickCycles, ch: make(chan struct{}, 1)}
}

func (m *manualTickSource) Next() <-chan struct{} { return m.ch }
func (m *manualTickSource) SubTick() uint16       { return m.subTick }
func (m *manualTickSource) TickCycles() uint16    { return m.tickCycles }

// Advance fires exactly one tick, as if the hardware's output-compare had
// just matched. SetSubTick lets a test fix the reading Now() will see
// before the next tick.
func (m *manualTickSource) Advance() { m.ch <- struct{}{} }

func (m *manualTickSource) SetSubTick(v uint16) { m.subTick = v }

// logAbortSignaler prints the blink pattern instead of driving a GPIO, and
// terminates the process the way the tinygo build's infinite blink loop
// terminates the board: by never returning. exit is os.Exit by default,
// overridable in tests so Abort's formatting can be checked without killing
// the test binary.
type logAbortSignaler struct {
	out  *os.File
	exit func(int)
}

func NewLogAbortSignaler() *logAbortSignaler {
	return &logAbortSignaler{out: os.Stderr, exit: os.Exit}
}

func (l *logAbortSignaler) Abort(preamble bool, blinks int) {
	fmt.Fprintf(l.out, "ABORT preamble=%v blinks=%d\n", preamble, blinks)
	l.exit(1)
}
