package kernel

// dispatch implements spec.md §4.2's dispatch policy: keep the current
// task if it's still Running and not idle; otherwise choose in strict
// priority order among system queue, the unique due periodic, RR queue,
// and idle.
func (k *Kernel) dispatch() {
	if k.current.state == Running && k.current.class != classIdle {
		return
	}

	if d := k.sysQ.dequeue(); d != nil {
		d.state = Running
		k.current = d
		return
	}

	if d := k.selectDuePeriodic(); d != nil {
		d.state = Running
		d.countdown += int32(d.period)
		if k.ticksRemaining == 0 {
			k.ticksRemaining = int32(d.wcet)
		}
		k.current = d
		return
	}

	if d := k.rrQ.dequeue(); d != nil {
		d.state = Running
		k.current = d
		return
	}

	k.tasks.idle.state = Running
	k.current = k.tasks.idle
}

// selectDuePeriodic finds the unique periodic task with countdown <= 0. If
// two or more are simultaneously due, that's a collision (invariant 4) and
// is fatal.
func (k *Kernel) selectDuePeriodic() *taskDescriptor {
	var due *taskDescriptor
	n := 0
	k.periodic.each(func(d *taskDescriptor) {
		if d.countdown <= 0 {
			due = d
			n++
		}
	})
	if n > 1 {
		k.raise(PeriodicCollision)
	}
	return due
}
