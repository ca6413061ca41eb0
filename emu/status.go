package emu

// Status register bits. All bits outside the defined set read as zero.
const (
	SRET Bits = 1 << 0 // traps enabled
	SREF Bits = 1 << 1 // floating point enabled
	SREV Bits = 1 << 2 // vector unit enabled
	SREC Bits = 1 << 3 // compressed instructions enabled
	SRPS Bits = 1 << 4 // supervisor bit before the last trap
	SRS  Bits = 1 << 5 // supervisor mode
	SRUX Bits = 1 << 6 // 64-bit mode in user space
	SRSX Bits = 1 << 7 // 64-bit mode in supervisor space
	SRVM Bits = 1 << 8 // virtual memory enabled

	// SRIM is the interrupt mask field, one bit per interrupt line.
	SRIM      Bits = 0xFF << SRIMShift
	SRIMShift      = 16
)

const srKnown = SRET | SREF | SREV | SREC | SRPS | SRS | SRUX | SRSX | SRVM | SRIM

// Floating status register fields.
const (
	FSRFlags Bits = 0x1F // accrued exception flags
	FSRRound Bits = 0xE0 // rounding mode
)

const fsrKnown = FSRFlags | FSRRound

// Bits is a 32-bit control-register value.
type Bits = uint32

// Caps describes which optional capabilities this core is configured with.
// The status state machine never lets the status register claim a
// capability that is absent here. The struct is treated as immutable after
// construction.
type Caps struct {
	// RV64 allows the 64-bit address/register mode bits (SX, UX).
	RV64 bool
	// FPU allows the floating-point enable bit (EF).
	FPU bool
	// Compressed allows the compressed-instruction enable bit (EC).
	Compressed bool
	// Vector allows the vector-unit enable bit (EV).
	Vector bool
}

// DefaultCaps returns a fully featured configuration.
func DefaultCaps() Caps {
	return Caps{RV64: true, FPU: true, Compressed: true, Vector: true}
}

// SetSR writes the status register. Reserved-zero bits and bits backed by
// absent capabilities are cleared, so the stored value is always canonical.
// Every call pushes the VM-enable and supervisor bits to the MMU and
// flushes its translation cache: privilege and VM-enable jointly gate
// translation, so any status write invalidates it. Finally the active
// register width is recomputed.
func (p *Processor) SetSR(value Bits) {
	p.sr = value & srKnown

	if !p.caps.RV64 {
		p.sr &^= SRSX | SRUX
	}
	if !p.caps.FPU {
		p.sr &^= SREF
	}
	if !p.caps.Compressed {
		p.sr &^= SREC
	}
	if !p.caps.Vector {
		p.sr &^= SREV
	}

	p.mmu.SetVirtualMemoryEnabled(p.sr&SRVM != 0)
	p.mmu.SetSupervisorMode(p.sr&SRS != 0)
	p.mmu.FlushTranslationCache()

	mode := SRUX
	if p.sr&SRS != 0 {
		mode = SRSX
	}
	if p.sr&mode != 0 {
		p.xlen = 64
	} else {
		p.xlen = 32
	}
}

// SetFSR writes the floating status register, clearing reserved-zero bits.
// It has no side effects.
func (p *Processor) SetFSR(value Bits) {
	p.fsr = value & fsrKnown
}

// SR returns the canonical status register.
func (p *Processor) SR() Bits {
	return p.sr
}

// FSR returns the floating status register.
func (p *Processor) FSR() Bits {
	return p.fsr
}

// XLen returns the active integer register width in bits (32 or 64). It is
// derived from the status register and is never set directly.
func (p *Processor) XLen() int {
	return p.xlen
}
