package kernel

import "testing"

func TestBootCreatesRootDirectlyAsSystemTask(t *testing.T) {
	k, abortSig := newTestKernel()

	id := k.Boot(func(h *Handle) {}, 7)
	if id == 0 {
		t.Fatal("Boot returned the exhaustion sentinel")
	}
	if k.sysQ.empty() {
		t.Fatal("Boot should place the root task on the system queue")
	}
	if k.sysQ.head.id != id || k.sysQ.head.class != System {
		t.Fatalf("booted task = %+v, want class System with id %v", k.sysQ.head, id)
	}
	if k.sysQ.head.arg != 7 {
		t.Fatalf("booted task arg = %d, want 7", k.sysQ.head.arg)
	}
	if abortSig.called {
		t.Fatal("Boot should not raise a fault for a fresh kernel")
	}
}

func TestRunDispatchesBootedRootFirst(t *testing.T) {
	k, abortSig := newTestKernel()

	ran := make(chan struct{}, 1)
	k.Boot(func(h *Handle) {
		ran <- struct{}{}
	}, 0)

	done := make(chan struct{})
	go k.Run(done)

	<-ran
	close(done)

	if abortSig.called {
		t.Fatal("unexpected abort running the booted root task")
	}
}
