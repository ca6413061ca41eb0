package emu

import "math/bits"

// MaxLanes is the fixed number of lane processors owned by a core, and the
// upper bound on the maximum vector length.
const MaxLanes = 2048

// laneBatch is the stepping granularity used when a core runs its lane
// streams to completion.
const laneBatch = 128

// ConfigVector records how many integer and floating-point registers the
// vector instructions ask for per element, then recomputes the maximum
// vector length. The per-lane register file is a finite resource divided
// among the registers an operation needs concurrently:
//
//	vlmax = (bankRegs / (nxpr + nfpr - 1)) * activeBanks
//
// with the whole bank available when fewer than two registers are in use.
// vlmax is clamped to MaxLanes, and vl is re-clamped so vl <= vlmax holds
// at all times.
func (p *Processor) ConfigVector(nxpr, nfpr int) {
	p.nxprUse = nxpr
	p.nfprUse = nfpr
	p.recomputeVLMax()
}

// SetVectorBanks sets the active lane-bank bitmask. The bank count follows
// the mask's population count.
func (p *Processor) SetVectorBanks(mask uint32) {
	p.vecBanks = mask
	p.vecBankCount = bits.OnesCount32(mask)
	p.recomputeVLMax()
}

func (p *Processor) recomputeVLMax() {
	use := p.nxprUse + p.nfprUse
	if use < 2 {
		p.vlmax = p.nxfprBank * p.vecBankCount
	} else {
		p.vlmax = p.nxfprBank / (use - 1) * p.vecBankCount
	}

	if p.vlmax > MaxLanes {
		p.vlmax = MaxLanes
	}
	if p.vl > p.vlmax {
		p.vl = p.vlmax
	}
}

// SetVL requests an active vector length. Requests beyond the current
// capacity are silently truncated to vlmax, never rejected. The granted
// length is returned.
func (p *Processor) SetVL(requested int) int {
	p.vl = requested
	if p.vl > p.vlmax {
		p.vl = p.vlmax
	}
	return p.vl
}

// VL returns the active vector length.
func (p *Processor) VL() int {
	return p.vl
}

// VLMax returns the maximum vector length for the current configuration.
func (p *Processor) VLMax() int {
	return p.vlmax
}

// VectorBanks returns the active lane-bank bitmask.
func (p *Processor) VectorBanks() uint32 {
	return p.vecBanks
}

// Lane returns lane processor i. It is only valid on a top-level core.
func (p *Processor) Lane(i int) *Processor {
	return p.lanes[i]
}

// LaneID returns this processor's lane index, or -1 for a top-level core.
func (p *Processor) LaneID() int {
	return p.laneID
}

// runLaneStream points a lane at the start of its instruction stream and
// steps it until the stream ends with a stop, or the lane halts. The
// active vector length is mirrored into the lane so element code can see
// it.
func (p *Processor) runLaneStream(lane *Processor, target uint64, trace bool) {
	lane.pc = target
	lane.vlmax = p.vlmax
	lane.vl = p.vl
	lane.streamDone = false
	lane.run = true

	for lane.run && !lane.streamDone {
		lane.Step(laneBatch, trace)
	}
}
