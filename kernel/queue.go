package kernel

// taskQueue is the intrusive FIFO/LIFO described in spec.md §4.5: enqueue
// at the tail, push at the head, dequeue from the head. It is used, at
// different times, as the system queue, the RR queue, and a service's
// waiter queue — the same two link fields on taskDescriptor serve all of
// them, one container at a time.
type taskQueue struct {
	head, tail *taskDescriptor
}

func (q *taskQueue) empty() bool { return q.head == nil }

func (q *taskQueue) enqueue(d *taskDescriptor) {
	d.prev, d.next = nil, nil
	if q.tail == nil {
		q.head, q.tail = d, d
		return
	}
	d.prev = q.tail
	q.tail.next = d
	q.tail = d
}

func (q *taskQueue) push(d *taskDescriptor) {
	d.prev, d.next = nil, nil
	if q.head == nil {
		q.head, q.tail = d, d
		return
	}
	d.next = q.head
	q.head.prev = d
	q.head = d
}

func (q *taskQueue) dequeue() *taskDescriptor {
	d := q.head
	if d == nil {
		return nil
	}
	q.head = d.next
	if q.head == nil {
		q.tail = nil
	} else {
		q.head.prev = nil
	}
	d.prev, d.next = nil, nil
	return d
}

// remove unlinks d from q wherever it sits. No kernel code calls it: the
// kernel only ever removes from a queue's head, as os.c does; it is kept
// so the queue and the periodic list stay symmetric, and only the tests
// use it.
func (q *taskQueue) remove(d *taskDescriptor) {
	if d.prev != nil {
		d.prev.next = d.next
	} else if q.head == d {
		q.head = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	} else if q.tail == d {
		q.tail = d.prev
	}
	d.prev, d.next = nil, nil
}

// periodicList is the membership-only doubly-linked list of spec.md §4.5:
// every live Periodic task sits here from Create to Terminate regardless of
// Ready/Running, so add/remove are keyed by pointer rather than head/tail
// position.
type periodicList struct {
	head *taskDescriptor
}

func (p *periodicList) empty() bool { return p.head == nil }

func (p *periodicList) add(d *taskDescriptor) {
	d.prev, d.next = nil, p.head
	if p.head != nil {
		p.head.prev = d
	}
	p.head = d
}

func (p *periodicList) remove(d *taskDescriptor) {
	if d.prev != nil {
		d.prev.next = d.next
	} else if p.head == d {
		p.head = d.next
	}
	if d.next != nil {
		d.next.prev = d.prev
	}
	d.prev, d.next = nil, nil
}

// each calls fn for every member, in list order. Used by the ticker to
// decrement every periodic's countdown and by dispatch to find the unique
// due release.
func (p *periodicList) each(fn func(*taskDescriptor)) {
	for d := p.head; d != nil; {
		next := d.next
		fn(d)
		d = next
	}
}
