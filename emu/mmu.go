package emu

import "github.com/sarchlab/rvcore/insts"

// ExecFunc executes one decoded instruction against a processor and
// returns the next program counter. Traps, halts, and lane-stream ends
// travel in the Outcome; the returned pc is only committed when the
// outcome is clean.
type ExecFunc func(p *Processor, word insts.Inst, pc uint64) (uint64, Outcome)

// MMU is the memory-management collaborator. Each core references one MMU
// instance shared with its lanes; the instance outlives the processor.
// Flushes and mode pushes therefore affect only the owning core's
// translations.
type MMU interface {
	// FetchInstruction fetches and decodes the instruction at pc,
	// returning the raw word and its execution handler. A misaligned or
	// unmapped pc yields a trap outcome and records the bad address.
	FetchInstruction(pc uint64, compressedEnabled bool) (insts.Inst, ExecFunc, Outcome)

	// SetVirtualMemoryEnabled pushes the status register's VM-enable bit.
	SetVirtualMemoryEnabled(enabled bool)

	// SetSupervisorMode pushes the status register's supervisor bit.
	SetSupervisorMode(enabled bool)

	// FlushTranslationCache invalidates this core's cached translations.
	FlushTranslationCache()

	// LastBadVirtualAddress returns the address of the most recent fault.
	LastBadVirtualAddress() uint64
}

// DataMemory is the load/store surface of an MMU. Implementations report
// misalignment and access faults through the Outcome.
type DataMemory interface {
	LoadWord(addr uint64) (uint32, Outcome)
	StoreWord(addr uint64, value uint32) Outcome
}

// Context is the surrounding simulation, borrowed by every processor. It
// delivers cross-core interrupts and answers topology queries.
type Context interface {
	CoreCount() int
	SendInterrupt(core int, irq int)
}
