package kernel

// msPerTick is the source's implicit tick period: os.c increments
// current_tick_multiplied by 5 on every tick, i.e. one tick is 5ms. Kept
// as a literal constant rather than derived from Config, matching the
// source's own hard-coded relationship between TICK_CYCLES and
// milliseconds (SPEC_FULL.md §13).
const msPerTick = 5

// now reproduces os.c's Now() bit-for-bit in spirit: the ms elapsed as of
// the last tick, plus a sub-tick correction obtained by comparing the
// hardware's free-running counter reading against four evenly-spaced
// thresholds within the current tick period, per the "four-threshold
// sub-tick approximation" §9 asks be preserved literally.
func (k *Kernel) now() uint64 {
	if k.tickCount == 0 {
		return 0
	}
	base := (k.tickCount-1)*msPerTick

	cycles := k.tick.TickCycles()
	sub := k.tick.SubTick()

	quarter := cycles / 5
	switch {
	case sub < quarter:
		return base
	case sub < quarter*2:
		return base + 1
	case sub < quarter*3:
		return base + 2
	case sub < quarter*4:
		return base + 3
	default:
		return base + 4
	}
}
