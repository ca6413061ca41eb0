// Package sim wires processors, MMUs, and shared memory into a runnable
// multi-core simulation and schedules their stepping.
package sim

import (
	"fmt"
	"io"

	"github.com/sarchlab/rvcore/emu"
	"github.com/sarchlab/rvcore/mmu"
)

// Simulation owns the shared memory, one MMU per core, and the cores
// themselves. It is the simulation context every processor borrows.
type Simulation struct {
	mem   *mmu.Memory
	mmus  []*mmu.MMU
	cores []*emu.Processor
}

var _ emu.Context = (*Simulation)(nil)

type config struct {
	caps     emu.Caps
	traceOut io.Writer
}

// Option configures a Simulation.
type Option func(*config)

// WithCaps sets the capability configuration used for every core.
func WithCaps(caps emu.Caps) Option {
	return func(c *config) {
		c.caps = caps
	}
}

// WithTraceWriter sets the destination for all cores' trace output.
func WithTraceWriter(w io.Writer) Option {
	return func(c *config) {
		c.traceOut = w
	}
}

// New creates a simulation with numCores cores sharing one memory. Every
// core gets its own MMU so translation flushes stay per core.
func New(numCores int, opts ...Option) *Simulation {
	cfg := config{caps: emu.DefaultCaps()}
	for _, opt := range opts {
		opt(&cfg)
	}

	coreOpts := []emu.Option{emu.WithCaps(cfg.caps)}
	if cfg.traceOut != nil {
		coreOpts = append(coreOpts, emu.WithTraceWriter(cfg.traceOut))
	}

	s := &Simulation{mem: mmu.NewMemory()}
	for i := 0; i < numCores; i++ {
		u := mmu.New(s.mem, i, emu.DecodeExec)
		s.mmus = append(s.mmus, u)
		s.cores = append(s.cores, emu.New(s, u, i, coreOpts...))
	}
	return s
}

// CoreCount returns the number of cores.
func (s *Simulation) CoreCount() int {
	return len(s.cores)
}

// Core returns core i.
func (s *Simulation) Core(i int) *emu.Processor {
	return s.cores[i]
}

// MMU returns core i's MMU.
func (s *Simulation) MMU(i int) *mmu.MMU {
	return s.mmus[i]
}

// Memory returns the shared memory.
func (s *Simulation) Memory() *mmu.Memory {
	return s.mem
}

// SendInterrupt raises an interrupt line on the target core.
func (s *Simulation) SendInterrupt(core int, irq int) {
	if core < 0 || core >= len(s.cores) {
		panic(fmt.Sprintf("sim: interrupt target core %d out of range", core))
	}
	s.cores[core].DeliverInterrupt(irq)
}

// LoadImage copies a flat boot image into shared memory.
func (s *Simulation) LoadImage(base uint64, data []byte) {
	s.mem.LoadImage(base, data)
}

// Boot wakes a core by delivering an inter-processor interrupt. The core
// takes the interrupt at its first instruction boundary and vectors to
// the boot handler.
func (s *Simulation) Boot(core int) {
	s.SendInterrupt(core, emu.IRQIPI)
}

// Step runs every awake core for up to perCore instructions, round robin.
func (s *Simulation) Step(perCore uint64, trace bool) {
	for _, core := range s.cores {
		core.Step(perCore, trace)
	}
}

// Done reports whether every core is parked.
func (s *Simulation) Done() bool {
	for _, core := range s.cores {
		if core.Running() {
			return false
		}
	}
	return true
}

// Run steps all cores in batches of perCore instructions until every core
// parks or maxBatches batches have run. It reports whether the simulation
// finished.
func (s *Simulation) Run(maxBatches int, perCore uint64, trace bool) bool {
	for i := 0; i < maxBatches; i++ {
		if s.Done() {
			return true
		}
		s.Step(perCore, trace)
	}
	return s.Done()
}
