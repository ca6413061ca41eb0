package mmu

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/rvcore/emu"
	"github.com/sarchlab/rvcore/insts"
)

// Translation-cache geometry: 16 sets x 4 ways of page-sized entries.
const (
	tlbSets = 16
	tlbWays = 4
)

// TLBStats counts translation-cache activity.
type TLBStats struct {
	Hits    uint64
	Misses  uint64
	Flushes uint64
}

// MMU is one core's memory-management unit. All MMUs share the backing
// Memory, but translation state is strictly per core: a status-register
// write on one core flushes only that core's translation cache.
//
// Virtual memory is modeled as identity translation; the translation
// cache still tracks which pages have cached translations so that flush
// and refill behavior is observable.
type MMU struct {
	mem    *Memory
	coreID int
	decode func(insts.Inst) emu.ExecFunc

	supervisor bool
	vmEnabled  bool
	badvaddr   uint64

	// Akita cache directory used as the translation-cache tag store.
	tlb   *akitacache.DirectoryImpl
	stats TLBStats
}

var (
	_ emu.MMU        = (*MMU)(nil)
	_ emu.DataMemory = (*MMU)(nil)
)

// New creates the MMU for one core. decode maps a fetched instruction
// word to its execution handler; the usual table is emu.DecodeExec.
func New(mem *Memory, coreID int, decode func(insts.Inst) emu.ExecFunc) *MMU {
	return &MMU{
		mem:    mem,
		coreID: coreID,
		decode: decode,
		tlb: akitacache.NewDirectory(
			tlbSets,
			tlbWays,
			PageSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// translate maps a virtual address to a physical address, touching the
// translation cache. Translation is identity while the page walk is
// external to this layer.
func (m *MMU) translate(vaddr uint64) uint64 {
	pageAddr := vaddr &^ (PageSize - 1)

	block := m.tlb.Lookup(0, pageAddr)
	if block != nil && block.IsValid {
		m.stats.Hits++
		m.tlb.Visit(block)
		return vaddr
	}

	m.stats.Misses++
	victim := m.tlb.FindVictim(pageAddr)
	if victim != nil {
		victim.Tag = pageAddr
		victim.IsValid = true
		victim.IsDirty = false
		m.tlb.Visit(victim)
	}
	return vaddr
}

// FetchInstruction fetches and decodes one instruction word. The pc must
// be 4-byte aligned, or 2-byte aligned when compressed instructions are
// enabled, and must target mapped memory.
func (m *MMU) FetchInstruction(pc uint64, compressedEnabled bool) (insts.Inst, emu.ExecFunc, emu.Outcome) {
	align := uint64(4)
	if compressedEnabled {
		align = 2
	}
	if pc%align != 0 {
		m.badvaddr = pc
		return 0, nil, emu.TrapTo(emu.CauseMisalignedFetch)
	}
	if !m.mem.Mapped(pc) || !m.mem.Mapped(pc+3) {
		m.badvaddr = pc
		return 0, nil, emu.TrapTo(emu.CauseFetchFault)
	}

	word := insts.Inst(m.mem.Read32(m.translate(pc)))
	return word, m.decode(word), emu.Continue()
}

// LoadWord reads a 32-bit word. Misaligned addresses and unmapped pages
// fault.
func (m *MMU) LoadWord(addr uint64) (uint32, emu.Outcome) {
	if addr%4 != 0 {
		m.badvaddr = addr
		return 0, emu.TrapTo(emu.CauseMisalignedLoad)
	}
	if !m.mem.Mapped(addr) {
		m.badvaddr = addr
		return 0, emu.TrapTo(emu.CauseLoadFault)
	}
	return m.mem.Read32(m.translate(addr)), emu.Continue()
}

// StoreWord writes a 32-bit word. Misaligned addresses fault. Supervisor
// stores allocate fresh pages; user stores to unmapped memory fault.
func (m *MMU) StoreWord(addr uint64, value uint32) emu.Outcome {
	if addr%4 != 0 {
		m.badvaddr = addr
		return emu.TrapTo(emu.CauseMisalignedStore)
	}
	if !m.supervisor && !m.mem.Mapped(addr) {
		m.badvaddr = addr
		return emu.TrapTo(emu.CauseStoreFault)
	}
	m.mem.Write32(m.translate(addr), value)
	return emu.Continue()
}

// SetVirtualMemoryEnabled pushes the VM-enable bit from the status
// register.
func (m *MMU) SetVirtualMemoryEnabled(enabled bool) {
	m.vmEnabled = enabled
}

// SetSupervisorMode pushes the supervisor bit from the status register.
func (m *MMU) SetSupervisorMode(enabled bool) {
	m.supervisor = enabled
}

// FlushTranslationCache drops every cached translation for this core.
// Other cores' MMUs are untouched.
func (m *MMU) FlushTranslationCache() {
	m.tlb.Reset()
	m.stats.Flushes++
}

// LastBadVirtualAddress returns the address of the most recent fault.
func (m *MMU) LastBadVirtualAddress() uint64 {
	return m.badvaddr
}

// CoreID returns the owning core's identity.
func (m *MMU) CoreID() int {
	return m.coreID
}

// Memory returns the shared backing memory.
func (m *MMU) Memory() *Memory {
	return m.mem
}

// Stats returns translation-cache statistics.
func (m *MMU) Stats() TLBStats {
	return m.stats
}
