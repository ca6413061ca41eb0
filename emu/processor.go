package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/rvcore/insts"
)

// bootVector is the trap/boot handler address fixed at reset. The ISA
// guarantees that on boot the pc is bootVector with the processor in
// supervisor mode, 64-bit mode if supported, and traps and virtual memory
// disabled. Reset accomplishes this by pointing the exception vector at
// bootVector and enabling traps; the harness then boots a core by sending
// it an inter-processor interrupt.
const bootVector = 0x2000

// Processor is one emulated core or vector lane: the architectural
// register state, the status machinery, the timer, and the stepping loop.
//
// A top-level core exclusively owns a fixed array of lane processors,
// built once at construction and never resized. Lanes own no lanes of
// their own. The MMU and the simulation context are shared, non-owning
// references that outlive the processor.
type Processor struct {
	ctx  Context
	mmu  MMU
	dmem DataMemory

	id     int
	laneID int // -1 for a top-level core
	caps   Caps

	xpr IntRegFile
	fpr FPRegFile

	sr   Bits
	fsr  Bits
	xlen int

	pc       uint64
	epc      uint64
	evec     uint64
	badvaddr uint64
	cause    Cause

	// Scratch control registers for the simulated supervisor.
	k0, k1 uint64

	count   Bits // free-running timer
	compare Bits // timer interrupt threshold
	cycle   uint64

	pending uint32
	run     bool

	// Vector lane state.
	vecBanks     uint32
	vecBankCount int
	nxfprBank    int
	nxprUse      int
	nfprUse      int
	vlmax        int
	vl           int
	lanes        []*Processor
	streamDone   bool

	tracing  bool
	traceOut io.Writer
	disasm   *insts.Disassembler
}

// Option configures a Processor at construction.
type Option func(*Processor)

// WithCaps sets the capability configuration.
func WithCaps(caps Caps) Option {
	return func(p *Processor) {
		p.caps = caps
	}
}

// WithTraceWriter sets the destination for disassembly and trap tracing.
func WithTraceWriter(w io.Writer) Option {
	return func(p *Processor) {
		p.traceOut = w
	}
}

// WithDisassembler sets the disassembler used for tracing. The
// disassembler is stateless and may be shared between cores.
func WithDisassembler(d *insts.Disassembler) Option {
	return func(p *Processor) {
		p.disasm = d
	}
}

// New creates a top-level core with the given identity, resets it to the
// architectural boot state, and builds its lane processors. The context
// and MMU are borrowed, not owned.
func New(ctx Context, m MMU, id int, opts ...Option) *Processor {
	p := newProcessor(ctx, m, id, -1, opts...)

	p.lanes = make([]*Processor, MaxLanes)
	for i := range p.lanes {
		p.lanes[i] = newProcessor(ctx, m, id, i, opts...)
	}
	return p
}

func newProcessor(ctx Context, m MMU, id, laneID int, opts ...Option) *Processor {
	p := &Processor{
		ctx:      ctx,
		mmu:      m,
		id:       id,
		laneID:   laneID,
		caps:     DefaultCaps(),
		traceOut: os.Stdout,
	}
	if dm, ok := m.(DataMemory); ok {
		p.dmem = dm
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.disasm == nil {
		p.disasm = insts.NewDisassembler()
	}

	p.Reset()
	return p
}

// Reset returns the processor to the architectural boot state. It is
// re-entrant and idempotent: the halt path calls it at any time, and a
// second call yields identical state. Lanes come out of reset with traps,
// floating point, and the vector unit forced on.
func (p *Processor) Reset() {
	p.run = false

	p.SetSR(SRS | SRSX | SRET | SRIM)
	p.evec = bootVector

	// Boot leaves the following undefined; zero it for determinism.
	p.xpr.Reset()
	p.fpr.Reset()
	p.pc = 0
	p.epc = 0
	p.badvaddr = 0
	p.cause = 0
	p.k0 = 0
	p.k1 = 0
	p.count = 0
	p.compare = 0
	p.cycle = 0
	p.pending = 0
	p.SetFSR(0)

	p.vecBanks = 0xFF
	p.vecBankCount = 8
	p.nxfprBank = 256
	p.nxprUse = NumIntRegs
	p.nfprUse = NumFPRegs
	p.vlmax = 32
	p.vl = 0
	p.streamDone = false

	if p.laneID >= 0 {
		p.SetSR(p.sr | SRET | SREF | SREV)
	}
}

// Step executes up to n instructions. An instruction is retired when it
// completes or when it traps; both consume one slot of the budget. A
// parked processor ignores the request. A lane-stream end stops the loop
// early; a halt resets the processor and returns without touching the
// cycle counter or the timer. After the loop the cycle counter advances by
// the retired count and the timer is updated with the same count.
func (p *Processor) Step(n uint64, trace bool) {
	if !p.run {
		return
	}
	p.tracing = trace

	var retired uint64
	halted := false

	// advance retires exactly one slot and reports whether to keep going.
	advance := func() bool {
		out := p.stepOnce(trace)
		switch out.Signal {
		case SignalNone:
			retired++
			return true
		case SignalTrap:
			retired++
			p.enterTrap(out.Cause, trace)
			return true
		case SignalLaneDone:
			retired++
			p.streamDone = true
			return false
		case SignalHalt:
			p.Reset()
			halted = true
			return false
		}
		panic(fmt.Sprintf("emu: unhandled step signal %d", out.Signal))
	}

	if trace {
		for retired < n && advance() {
		}
	} else {
		// Grouped fast path: identical behavior to the loop above,
		// fewer bound checks per retired instruction.
		for retired+4 <= n {
			if !(advance() && advance() && advance() && advance()) {
				break
			}
		}
		for retired < n && !halted && !p.streamDone {
			if !advance() {
				break
			}
		}
	}

	if halted {
		return
	}

	p.cycle += retired
	p.tickTimer(retired)
}

// stepOnce resolves one instruction boundary: interrupt check, fetch,
// optional trace, execute, pc commit.
func (p *Processor) stepOnce(trace bool) Outcome {
	if out := p.takeInterrupt(); !out.OK() {
		return out
	}

	word, fn, out := p.mmu.FetchInstruction(p.pc, p.sr&SREC != 0)
	if !out.OK() {
		return out
	}

	if trace {
		fmt.Fprintf(p.traceOut, "core %3d: 0x%016x (0x%08x) %s\n",
			p.id, p.pc, word.Bits(), p.disasm.Disassemble(word))
	}

	npc, out := fn(p, word, p.pc)
	if !out.OK() {
		return out
	}
	p.pc = npc
	return Continue()
}

// Accessors for inspection and debugging.

// ID returns the core identity.
func (p *Processor) ID() int { return p.id }

// PC returns the program counter.
func (p *Processor) PC() uint64 { return p.pc }

// SetPC sets the program counter.
func (p *Processor) SetPC(pc uint64) { p.pc = pc }

// EPC returns the exception program counter (trap return address).
func (p *Processor) EPC() uint64 { return p.epc }

// EVec returns the exception vector, fixed at boot.
func (p *Processor) EVec() uint64 { return p.evec }

// BadVAddr returns the bad virtual address captured on the last trap.
func (p *Processor) BadVAddr() uint64 { return p.badvaddr }

// TrapCause returns the cause of the most recent trap.
func (p *Processor) TrapCause() Cause { return p.cause }

// Cycle returns the retired-instruction cycle counter.
func (p *Processor) Cycle() uint64 { return p.cycle }

// Pending returns the pending-interrupt bitmask.
func (p *Processor) Pending() uint32 { return p.pending }

// Running reports whether the processor is awake. A parked processor
// ignores step requests until an interrupt delivery wakes it.
func (p *Processor) Running() bool { return p.run }

// StreamDone reports whether a lane's instruction stream has ended.
func (p *Processor) StreamDone() bool { return p.streamDone }

// XPR returns the integer register file.
func (p *Processor) XPR() *IntRegFile { return &p.xpr }

// FPR returns the floating-point register file.
func (p *Processor) FPR() *FPRegFile { return &p.fpr }

// Scratch returns the two supervisor scratch control registers.
func (p *Processor) Scratch() (k0, k1 uint64) { return p.k0, p.k1 }

// readX reads an integer register.
func (p *Processor) readX(i uint8) uint64 {
	return p.xpr.Read(i)
}

// writeX writes an integer register, narrowing to the active register
// width. In 32-bit mode results are kept sign-extended, so comparisons
// behave identically in both widths.
func (p *Processor) writeX(i uint8, value uint64) {
	if p.xlen == 32 {
		value = uint64(int64(int32(value)))
	}
	p.xpr.Write(i, value)
}
