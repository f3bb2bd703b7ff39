// Package trust is a leveled logger adapted from the teacher's
// lib/trust/trust.go: a bitmask level, Errorf/Warnf/Infof/Debugf/Statsf
// convenience wrappers, and a Fatalf that never returns. Unlike the
// teacher's package-level global, this one sits behind a Sink interface so
// both the host build (a fmt-backed sink) and the tinygo build (a
// UART-backed sink) share the level-mask logic; kernel subsystems log
// through a *Logger, never through fmt or the standard log package
// directly, mirroring the teacher's confinement of raw fmt.Printf to leaf
// console code.
package trust

import "fmt"

// MaskLevel mirrors the teacher's bitmask level constants exactly.
type MaskLevel uint32

const (
	Nothing   MaskLevel = 0
	ErrorMask MaskLevel = 1 << 0
	WarnMask  MaskLevel = 1 << 1
	InfoMask  MaskLevel = 1 << 2
	DebugMask MaskLevel = 1 << 3
	StatsMask MaskLevel = 1 << 4
	fatalMask MaskLevel = 1 << 5 // always on; Fatalf never checks the mask
)

func (l MaskLevel) String() string {
	switch l {
	case ErrorMask:
		return "ERROR"
	case WarnMask:
		return "WARN"
	case InfoMask:
		return "INFO"
	case DebugMask:
		return "DEBUG"
	case StatsMask:
		return "STATS"
	case fatalMask:
		return "FATAL"
	default:
		return "?"
	}
}

// Sink is the one method a level-appropriate log line is written through.
type Sink interface {
	Write(level MaskLevel, line string)
}

// Logger carries the current level mask and a Sink. The zero value is not
// usable; construct with New.
type Logger struct {
	level MaskLevel
	sink  Sink
}

func New(level MaskLevel, sink Sink) *Logger {
	return &Logger{level: level, sink: sink}
}

func (l *Logger) SetLevel(level MaskLevel) { l.level = level }
func (l *Logger) Level() MaskLevel         { return l.level }

func (l *Logger) logf(level MaskLevel, format string, params ...interface{}) {
	if l.level&level == 0 {
		return
	}
	l.sink.Write(level, fmt.Sprintf(format, params...))
}

func (l *Logger) Errorf(format string, params ...interface{}) { l.logf(ErrorMask, format, params...) }
func (l *Logger) Warnf(format string, params ...interface{})  { l.logf(WarnMask, format, params...) }
func (l *Logger) Infof(format string, params ...interface{})  { l.logf(InfoMask, format, params...) }
func (l *Logger) Debugf(format string, params ...interface{}) { l.logf(DebugMask, format, params...) }
func (l *Logger) Statsf(format string, params ...interface{}) { l.logf(StatsMask, format, params...) }

// Fatalf always writes, regardless of the level mask, and never returns:
// the caller is expected to be on a path that is about to abort anyway.
func (l *Logger) Fatalf(format string, params ...interface{}) {
	msg := fmt.Sprintf(format, params...)
	l.sink.Write(fatalMask, msg)
	panic(msg)
}
