// Command simulate boots the scheduler core against a software tick source
// and drives the publish/subscribe and round-robin scenarios spec.md §8
// describes, so the kernel can be exercised without real hardware. It is
// the host-build counterpart to cmd/board, grounded on QubicOS-Spark's
// main_host.go/app.go pair and the teacher's own src/joy/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"rtos/hal"
	"rtos/internal/trust"
	"rtos/kernel"
)

func main() {
	period := flag.Duration("tick", 5*time.Millisecond, "software tick period")
	ticks := flag.Uint64("ticks", 200, "stop after this many ticks (0 = run until interrupted)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *period, *ticks); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, period time.Duration, maxTicks uint64) error {
	log := trust.New(trust.ErrorMask|trust.WarnMask|trust.InfoMask, trust.NewHostSink())

	tick := hal.NewHostTickSource(period, 1000)
	abort := hal.NewLogAbortSignaler()

	k := kernel.New(kernel.DefaultConfig(), tick, abort, log)
	installDemoTasks(k, log)

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		k.Run(done)
		return nil
	})

	g.Go(func() error {
		defer close(done)
		var n uint64
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(period):
				n++
				if maxTicks != 0 && n >= maxTicks {
					log.Infof("simulate: reached tick limit %d, stopping", maxTicks)
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// installDemoTasks wires up the scenarios from spec.md §8: a handful of
// round-robin tasks, a periodic task, and a publish/subscribe pair, all
// created from inside the booted root task through the public Handle
// surface a real application would use.
func installDemoTasks(k *kernel.Kernel, log *trust.Logger) {
	svc := k.Service_Init()

	k.Boot(func(h *kernel.Handle) {
		h.Task_Create_RR(func(h *kernel.Handle) {
			var v uint16
			h.Service_Subscribe(svc, &v)
			log.Infof("round-robin subscriber woke with value %d", v)
		}, 0)

		h.Task_Create_RR(func(h *kernel.Handle) {
			h.Next()
			h.Service_Publish(svc, 99)
			log.Infof("round-robin publisher done")
		}, 0)

		h.Task_Create_Periodic(func(h *kernel.Handle) {
			for {
				log.Infof("periodic release at tick %d", h.Now())
				h.Next()
			}
		}, 0, 20, 4, 0)

		for i := 0; i < 3; i++ {
			log.Infof("root system task: tick %d", h.Now())
			h.Next()
		}
	}, 0)
}
