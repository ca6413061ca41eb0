package emu

// tickTimer advances the free-running timer by the number of instructions
// just retired and raises the timer interrupt if this batch crossed the
// compare threshold. The check is edge-triggered in 64-bit arithmetic: a
// compare value already passed before the batch does not re-fire.
func (p *Processor) tickTimer(retired uint64) {
	old := uint64(p.count)
	p.count += uint32(retired)

	if old < uint64(p.compare) && old+retired >= uint64(p.compare) {
		p.pending |= 1 << IRQTimer
	}
}

// TimerCount returns the free-running timer counter.
func (p *Processor) TimerCount() Bits {
	return p.count
}

// TimerCompare returns the timer compare threshold.
func (p *Processor) TimerCompare() Bits {
	return p.compare
}

// SetTimerCompare sets the timer compare threshold and acknowledges any
// pending timer interrupt, mirroring the control-register write path.
func (p *Processor) SetTimerCompare(value Bits) {
	p.compare = value
	p.pending &^= 1 << IRQTimer
}
