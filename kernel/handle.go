package kernel

// handleRequest is the request-handle half of spec.md §4.2's main loop,
// switching on the tagged request Design Note §9 asks for. It always
// clears k.pending.kind to None before returning.
func (k *Kernel) handleRequest() {
	switch k.pending.kind {
	case TimerExpired:
		k.onTick()
		if k.current.class == RoundRobin && k.current.state == Running {
			k.current.state = Ready
			k.rrQ.enqueue(k.current)
		}

	case TaskCreate:
		k.handleCreate(&k.pending.create)

	case TaskTerminate:
		k.handleTerminate()

	case TaskInterrupt:
		k.handleInterrupt()

	case TaskNext:
		k.handleNext()

	case TaskWait:
		// Service_Subscribe has already appended the caller to the
		// service's waiter queue and set its state to Waiting; there is
		// nothing further to do here but let dispatch pick a new current,
		// since Waiting != Running already takes it out of contention.

	case None:
		k.raise(RtosInternal)

	default:
		k.raise(RtosInternal)
	}
	k.pending.kind = None
}

// rewindPeriodicSlot undoes the in-progress accounting for the current
// task when something with higher priority preempts it mid-release,
// spec.md §4.3's last bullet: "the rewind bumps ticks_remaining and
// restores countdown so no tick time is accounted against the periodic
// while it is not running." This is the literal "bump by 1" TODO from the
// source (§9's open question): it does not generalize correctly to a
// preemption lasting more than one tick, and is kept exactly that way —
// not generalized — per spec.md's explicit instruction.
func (k *Kernel) rewindPeriodicSlot() {
	if k.current.class != Periodic {
		return
	}
	k.ticksRemaining++
	k.current.countdown -= int32(k.current.period)
}

// demoteCurrentToReady is the common "something higher-priority showed up,
// current becomes Ready" step shared by TaskCreate and TaskInterrupt
// handling.
func (k *Kernel) demoteCurrentToReady(toFrontOfRR bool) {
	prev := k.current
	if prev.class == classIdle {
		prev.state = Ready
		return
	}
	prev.state = Ready
	switch prev.class {
	case RoundRobin:
		if toFrontOfRR {
			k.rrQ.push(prev)
		} else {
			k.rrQ.enqueue(prev)
		}
	case System:
		k.sysQ.enqueue(prev)
	case Periodic:
		k.rewindPeriodicSlot()
		// stays on the periodic list; not re-enqueued anywhere.
	}
}
