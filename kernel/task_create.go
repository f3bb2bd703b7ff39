package kernel

// handleCreate implements the TaskCreate case of spec.md §4.2: allocate
// from the free list, validate, fabricate the stack, place per class, and
// apply the preemption-demotion rules.
func (k *Kernel) handleCreate(args *createArgs) {
	if args.class == Periodic && args.wcet > args.period {
		k.raise(WcetGreaterThanPeriod)
	}

	d := k.tasks.popFree()
	if d == nil {
		k.raise(TooManyTasks)
		args.result = 0
		return
	}

	d.class = args.class
	d.arg = args.arg
	d.period = args.period
	d.wcet = args.wcet
	d.countdown = int32(args.start)
	d.state = Ready

	fn := args.taskFn
	entry := func() {
		child := &Handle{k: k, d: d}
		fn(child)
	}
	term := func() {
		child := &Handle{k: k, d: d}
		child.Terminate()
	}
	d.frame = k.cpu.Fabricate(d.id, entry, term)

	switch d.class {
	case System:
		k.sysQ.enqueue(d)
	case RoundRobin:
		k.rrQ.enqueue(d)
	case Periodic:
		k.periodic.add(d)
	}

	args.result = d.id

	immediateStart := d.class == Periodic && d.countdown <= 0

	switch {
	case d.class == System && k.current.class != System:
		k.demoteCurrentToReady(false)
	case k.current.class == RoundRobin && immediateStart:
		k.demoteCurrentToReady(false)
	}
}

// handleTerminate implements Task_Terminate: mark Dead, leave the
// periodic list if applicable, return to the free list.
func (k *Kernel) handleTerminate() {
	d := k.current
	if d.class == Periodic {
		k.periodic.remove(d)
	}
	k.tasks.pushFree(d)
	k.current = k.tasks.idle
}

// handleInterrupt implements TaskInterrupt: Service_Publish's preemption
// signal. Preempts current unless it's System, pushing an RR current to
// the front of the RR queue (not the tail) to preserve its place.
func (k *Kernel) handleInterrupt() {
	if k.current.class == System {
		return
	}
	k.demoteCurrentToReady(true)
}

// handleNext implements Task_Next: voluntary yield. System/RR go to the
// tail of their queue; Periodic closes its release by zeroing
// ticksRemaining.
func (k *Kernel) handleNext() {
	d := k.current
	d.state = Ready
	switch d.class {
	case System:
		k.sysQ.enqueue(d)
	case RoundRobin:
		k.rrQ.enqueue(d)
	case Periodic:
		k.ticksRemaining = 0
		// stays on the periodic list only.
	}
}
