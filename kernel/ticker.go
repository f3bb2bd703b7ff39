package kernel

// onTick implements spec.md §4.3's periodic slot accounting, run once per
// TimerExpired request before the rest of handleRequest's TimerExpired
// case. The "bump ticks_remaining by 1" rewind referenced there lives in
// handle.go's rewindPeriodicSlot, not here; apart from advancing
// tickCount, onTick only ever counts downward.
func (k *Kernel) onTick() {
	k.tickCount++

	// Mirrors os.c's "if (periodic_list.head != NULL)" guard around the
	// decrement: with no periodic task registered at all, there is no
	// release in flight to account ticks against, and ticksRemaining must
	// not drift below the 0 dispatch re-arms on.
	if k.current.class != System && !k.periodic.empty() {
		k.ticksRemaining--
	}

	k.periodic.each(func(d *taskDescriptor) {
		d.countdown--
	})

	if k.current.class == Periodic && k.current.state == Running && k.ticksRemaining <= 0 {
		k.raise(PeriodicOverran)
	}
}
