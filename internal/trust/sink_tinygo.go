//go:build tinygo

package trust

import "machine"

// uartSink writes through the board's UART, the tinygo-build analogue of
// the teacher's MiniUART-backed Console.Logf.
type uartSink struct {
	uart *machine.UART
}

func NewUARTSink(uart *machine.UART) Sink { return &uartSink{uart: uart} }

func (s *uartSink) Write(level MaskLevel, line string) {
	s.uart.Write([]byte("[" + level.String() + "] " + line + "\r\n"))
}
