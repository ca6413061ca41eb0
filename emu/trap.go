package emu

import "fmt"

// Cause identifies why a trap was taken.
type Cause uint32

// Trap causes. External interrupt N reports CauseInterruptBase + N.
const (
	CauseMisalignedFetch Cause = iota
	CauseFetchFault
	CauseIllegalInstruction
	CausePrivilegedInstruction
	CauseFPDisabled
	CauseSyscall
	CauseBreakpoint
	CauseMisalignedLoad
	CauseMisalignedStore
	CauseLoadFault
	CauseStoreFault
	CauseVectorDisabled

	CauseInterruptBase Cause = 16
)

// Interrupt lines. Line assignments are architectural: inter-processor
// interrupts arrive on line 5 and the timer fires on line 7.
const (
	NumIRQ   = 8
	IRQIPI   = 5
	IRQTimer = 7
)

var causeNames = map[Cause]string{
	CauseMisalignedFetch:       "instruction address misaligned",
	CauseFetchFault:            "instruction access fault",
	CauseIllegalInstruction:    "illegal instruction",
	CausePrivilegedInstruction: "privileged instruction",
	CauseFPDisabled:            "floating-point unit disabled",
	CauseSyscall:               "syscall",
	CauseBreakpoint:            "breakpoint",
	CauseMisalignedLoad:        "load address misaligned",
	CauseMisalignedStore:       "store address misaligned",
	CauseLoadFault:             "load access fault",
	CauseStoreFault:            "store access fault",
	CauseVectorDisabled:        "vector unit disabled",
}

// String returns the trap name. A cause outside the defined set means a
// core invariant has been violated, so it is fatal.
func (c Cause) String() string {
	if c >= CauseInterruptBase && c < CauseInterruptBase+NumIRQ {
		return fmt.Sprintf("external interrupt %d", c-CauseInterruptBase)
	}
	name, ok := causeNames[c]
	if !ok {
		panic(fmt.Sprintf("emu: unknown trap cause %d", uint32(c)))
	}
	return name
}

// takeInterrupt checks for a deliverable interrupt. Pending lines are
// masked against the status-register interrupt mask; if any survive and
// traps are enabled, the lowest-numbered line traps. Otherwise execution
// continues and no state changes.
func (p *Processor) takeInterrupt() Outcome {
	masked := p.pending & uint32((p.sr&SRIM)>>SRIMShift)
	if masked == 0 || p.sr&SRET == 0 {
		return Continue()
	}

	irq := Cause(0)
	for masked&1 == 0 {
		irq++
		masked >>= 1
	}
	return TrapTo(CauseInterruptBase + irq)
}

// enterTrap performs the privilege transition for any trap: switch to
// supervisor mode, disable traps, and preserve the prior supervisor bit
// for the eventual return. It then records the cause, snapshots the return
// address, redirects the pc to the trap vector, and captures the bad
// virtual address from the MMU (meaningful only for memory faults).
func (p *Processor) enterTrap(cause Cause, trace bool) {
	name := cause.String() // validates the cause even when not tracing
	if trace {
		fmt.Fprintf(p.traceOut, "core %3d: trap %s, pc 0x%016x\n",
			p.id, name, p.pc)
	}

	sr := (p.sr&^SRET | SRS) &^ SRPS
	if p.sr&SRS != 0 {
		sr |= SRPS
	}
	p.SetSR(sr)

	p.cause = cause
	p.epc = p.pc
	p.pc = p.evec
	p.badvaddr = p.mmu.LastBadVirtualAddress()
}

// DeliverInterrupt raises an external interrupt line and wakes the
// processor if it is parked. The harness may call this between steps; the
// line is observed at the next interrupt check.
func (p *Processor) DeliverInterrupt(irq int) {
	if irq < 0 || irq >= NumIRQ {
		panic(fmt.Sprintf("emu: interrupt line %d out of range", irq))
	}
	p.pending |= 1 << irq
	p.run = true
}

// ClearInterrupt lowers a pending external interrupt line. Level-style
// devices use it when their condition is acknowledged.
func (p *Processor) ClearInterrupt(irq int) {
	if irq < 0 || irq >= NumIRQ {
		panic(fmt.Sprintf("emu: interrupt line %d out of range", irq))
	}
	p.pending &^= 1 << irq
}
