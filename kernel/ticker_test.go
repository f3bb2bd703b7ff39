package kernel

import "testing"

func TestOnTickDecrementsTicksRemainingForNonSystem(t *testing.T) {
	k, _ := newTestKernel()
	k.current.class = RoundRobin
	k.ticksRemaining = 5

	// A release in flight is what ticksRemaining is tracking; with no
	// periodic registered at all there is nothing to account ticks
	// against, so onTick must leave it alone (see the next test).
	p := k.tasks.popFree()
	p.class = Periodic
	k.periodic.add(p)

	k.onTick()
	if k.ticksRemaining != 4 {
		t.Fatalf("ticksRemaining = %d, want 4", k.ticksRemaining)
	}
	if k.tickCount != 1 {
		t.Fatalf("tickCount = %d, want 1", k.tickCount)
	}
}

func TestOnTickLeavesTicksRemainingWhenNoPeriodicRegistered(t *testing.T) {
	k, _ := newTestKernel()
	k.current.class = RoundRobin
	k.ticksRemaining = 5

	k.onTick()
	if k.ticksRemaining != 5 {
		t.Fatalf("ticksRemaining = %d, want unchanged at 5 with no periodic task registered", k.ticksRemaining)
	}
}

func TestOnTickLeavesTicksRemainingForSystem(t *testing.T) {
	k, _ := newTestKernel()
	k.current.class = System
	k.ticksRemaining = 5

	k.onTick()
	if k.ticksRemaining != 5 {
		t.Fatalf("ticksRemaining = %d, want unchanged at 5 while a System task runs", k.ticksRemaining)
	}
}

func TestOnTickDecrementsEveryPeriodicCountdown(t *testing.T) {
	k, _ := newTestKernel()

	a := k.tasks.popFree()
	a.class = Periodic
	a.countdown = 10
	k.periodic.add(a)

	b := k.tasks.popFree()
	b.class = Periodic
	b.countdown = 3
	k.periodic.add(b)

	k.onTick()
	if a.countdown != 9 {
		t.Fatalf("a.countdown = %d, want 9", a.countdown)
	}
	if b.countdown != 2 {
		t.Fatalf("b.countdown = %d, want 2", b.countdown)
	}
}

func TestOnTickOverrunIsFatalForRunningPeriodic(t *testing.T) {
	k, abortSig := newTestKernel()

	p := k.tasks.popFree()
	p.class = Periodic
	p.state = Running
	p.countdown = 100
	k.periodic.add(p)
	k.current = p
	k.ticksRemaining = 1 // this tick's decrement will hit zero

	expectAbort(t, func() { k.onTick() })
	if !abortSig.called {
		t.Fatal("expected AbortSignaler.Abort to be called on wcet overrun")
	}
	if abortSig.blinks != PeriodicOverran.classIndex()+1 {
		t.Fatalf("blinks = %d, want %d", abortSig.blinks, PeriodicOverran.classIndex()+1)
	}
}

func TestOnTickNoOverrunWhenPeriodicNotRunning(t *testing.T) {
	k, abortSig := newTestKernel()

	p := k.tasks.popFree()
	p.class = Periodic
	p.state = Ready // preempted mid-release, not currently running
	p.countdown = 100
	k.periodic.add(p)
	k.ticksRemaining = 1

	k.current.class = RoundRobin
	k.onTick()
	if abortSig.called {
		t.Fatal("onTick raised an overrun for a periodic task that wasn't running")
	}
}
