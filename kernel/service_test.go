package kernel

import "testing"

func TestServiceInitBumpAllocates(t *testing.T) {
	k, _ := newTestKernel()

	first := k.Service_Init()
	second := k.Service_Init()
	if first.index == second.index {
		t.Fatalf("two Service_Init calls returned the same slot %d", first.index)
	}
	if !k.services[first.index].used || !k.services[second.index].used {
		t.Fatal("Service_Init did not mark its slot used")
	}
}

func TestServiceInitExhaustionIsFatal(t *testing.T) {
	k, abortSig := newTestKernel()
	k.cfg.MaxServices = 1

	if h := k.Service_Init(); h == nil {
		t.Fatal("first Service_Init under a capacity of 1 should succeed")
	}
	expectAbort(t, func() { k.Service_Init() })
	if !abortSig.called {
		t.Fatal("expected AbortSignaler.Abort on service exhaustion")
	}
}

func TestPublishDeliversToEveryWaiterAndWakesSystemLIFO(t *testing.T) {
	k, _ := newTestKernel()
	svc := k.Service_Init()

	var slotA, slotB uint16
	a := k.tasks.popFree()
	a.class = System
	k.subscribe(svc.index, a, &slotA)

	b := k.tasks.popFree()
	b.class = System
	k.subscribe(svc.index, b, &slotB)

	interrupt := k.publish(svc.index, 42, RoundRobin)
	if !interrupt {
		t.Fatal("publish from a non-System task waking a System waiter should signal an interrupt")
	}
	if slotA != 42 || slotB != 42 {
		t.Fatalf("waiter slots = %d, %d, want 42, 42", slotA, slotB)
	}
	if a.state != Ready || b.state != Ready {
		t.Fatal("published-to waiters should be Ready")
	}
	// LIFO restart: the most recently woken waiter sits at the head.
	if k.sysQ.head != b {
		t.Fatalf("sysQ head = %v, want %v (LIFO restart)", k.sysQ.head.id, b.id)
	}
}

func TestPublishFromSystemNeverSignalsInterrupt(t *testing.T) {
	k, _ := newTestKernel()
	svc := k.Service_Init()

	var slot uint16
	waiter := k.tasks.popFree()
	waiter.class = System
	k.subscribe(svc.index, waiter, &slot)

	if interrupt := k.publish(svc.index, 7, System); interrupt {
		t.Fatal("a System publisher should never be told to preempt itself")
	}
}

func TestPublishFindingPeriodicWaiterIsFatal(t *testing.T) {
	k, abortSig := newTestKernel()
	svc := k.Service_Init()

	var slot uint16
	waiter := k.tasks.popFree()
	waiter.class = Periodic
	k.subscribe(svc.index, waiter, &slot)

	expectAbort(t, func() { k.publish(svc.index, 1, RoundRobin) })
	if !abortSig.called {
		t.Fatal("expected AbortSignaler.Abort when publish finds a periodic waiter")
	}
}
