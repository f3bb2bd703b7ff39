package kernel

// service is one MAXSERVICES-array slot: a named rendezvous point with a
// FIFO of waiting subscribers, per spec.md §4.4. Slots are handed out by a
// bump allocator (Service_Init) and never freed, per Design Note §9's
// "keep the fixed array, never free."
type service struct {
	waiters taskQueue
	used    bool
}

// ServiceHandle is the opaque handle returned by Service_Init and passed
// to Subscribe/Publish; it carries only the array index, keeping the
// service array itself private to the kernel the way the task table is.
type ServiceHandle struct {
	index int
}

// Service_Init hands out the next service slot. Fatal (MaxServicesReached)
// once the array is exhausted.
func (k *Kernel) Service_Init() *ServiceHandle {
	if k.serviceNext >= len(k.services) || k.serviceNext >= k.cfg.MaxServices {
		k.raise(MaxServicesReached)
		return nil
	}
	idx := k.serviceNext
	k.serviceNext++
	k.services[idx].used = true
	return &ServiceHandle{index: idx}
}

// subscribe appends d to service idx's waiter queue and marks it Waiting.
// The caller (Handle.Service_Subscribe) has already checked the
// PeriodicSubscribed precondition and yields immediately after this call.
func (k *Kernel) subscribe(idx int, d *taskDescriptor, outSlot *uint16) {
	d.state = Waiting
	d.waitSlot = outSlot
	k.services[idx].waiters.enqueue(d)
}

// publish drains service idx's waiter queue, delivering value to each
// waiter's out-slot and re-enqueuing it per class: System waiters to the
// head of the system queue (LIFO restart), RR waiters to the head of the
// RR queue. It reports whether the publisher (of class publisherClass)
// should be preempted (a System waiter woke while the publisher is not
// itself System).
func (k *Kernel) publish(idx int, value uint16, publisherClass Class) bool {
	woreSystem := false
	svc := &k.services[idx]
	for {
		d := svc.waiters.dequeue()
		if d == nil {
			break
		}
		if d.class == Periodic {
			k.raise(PeriodicFoundSubscribed)
		}
		*d.waitSlot = value
		d.waitSlot = nil
		d.state = Ready
		switch d.class {
		case System:
			k.sysQ.push(d)
			woreSystem = true
		case RoundRobin:
			k.rrQ.push(d)
		}
	}
	return woreSystem && publisherClass != System
}
