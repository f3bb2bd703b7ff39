//go:build !tinygo

package trust

import (
	"fmt"
	"os"
)

// hostSink writes through fmt to stderr, the host-build analogue of the
// teacher's Console.Logf.
type hostSink struct{}

func NewHostSink() Sink { return hostSink{} }

func (hostSink) Write(level MaskLevel, line string) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", level, line)
}
