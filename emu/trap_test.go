package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcore/emu"
	"github.com/sarchlab/rvcore/insts"
)

var _ = Describe("Interrupt/Trap Controller", func() {
	var (
		m *fakeMMU
		p *emu.Processor
	)

	BeforeEach(func() {
		m = newFakeMMU()
		p = emu.New(&fakeContext{cores: 1}, m, 0)
	})

	Describe("interrupt selection", func() {
		It("should take the lowest-numbered pending-and-masked line", func() {
			p.DeliverInterrupt(2)
			p.DeliverInterrupt(5)

			p.Step(1, false)

			Expect(p.TrapCause()).To(Equal(emu.CauseInterruptBase + 2))
		})

		It("should skip masked lines", func() {
			p.SetSR(p.SR() &^ (emu.Bits(1) << (emu.SRIMShift + 2)))
			p.DeliverInterrupt(2)
			p.DeliverInterrupt(5)

			p.Step(1, false)

			Expect(p.TrapCause()).To(Equal(emu.CauseInterruptBase + 5))
		})

		It("should hold interrupts while traps are disabled", func() {
			m.load(0x100, insts.ADDI(1, 0, 1))
			p.SetSR(p.SR() &^ emu.SRET)
			p.SetPC(0x100)
			p.DeliverInterrupt(2)

			p.Step(1, false)

			// The instruction executed instead of the interrupt.
			Expect(p.XPR().Read(1)).To(Equal(uint64(1)))
			Expect(p.PC()).To(Equal(uint64(0x104)))
		})

		It("should leave state untouched when nothing is pending", func() {
			m.load(0x100, insts.ADDI(1, 0, 1))
			wake(p)
			p.SetPC(0x100)

			p.Step(1, false)

			Expect(p.TrapCause()).To(Equal(emu.Cause(0)))
			Expect(p.PC()).To(Equal(uint64(0x104)))
		})
	})

	Describe("trap entry", func() {
		It("should redirect to the trap vector and record cause and epc", func() {
			p.SetPC(0x400)
			p.DeliverInterrupt(emu.IRQIPI)

			p.Step(1, false)

			Expect(p.PC()).To(Equal(p.EVec()))
			Expect(p.EPC()).To(Equal(uint64(0x400)))
			Expect(p.TrapCause()).To(Equal(emu.CauseInterruptBase + emu.IRQIPI))
		})

		It("should disable traps and enter supervisor mode", func() {
			p.DeliverInterrupt(emu.IRQIPI)

			p.Step(1, false)

			Expect(p.SR() & emu.SRET).To(BeZero())
			Expect(p.SR() & emu.SRS).NotTo(BeZero())
		})

		It("should preserve a set supervisor bit in PS", func() {
			// Boot state is supervisor mode.
			p.DeliverInterrupt(emu.IRQIPI)

			p.Step(1, false)

			Expect(p.SR() & emu.SRPS).NotTo(BeZero())
		})

		It("should preserve a clear supervisor bit in PS", func() {
			p.SetSR((p.SR() &^ emu.SRS) | emu.SRET)
			p.DeliverInterrupt(emu.IRQIPI)

			p.Step(1, false)

			Expect(p.SR() & emu.SRPS).To(BeZero())
			Expect(p.SR() & emu.SRS).NotTo(BeZero())
		})

		It("should count a trap as one retired instruction", func() {
			p.DeliverInterrupt(emu.IRQIPI)

			p.Step(1, false)

			Expect(p.Cycle()).To(Equal(uint64(1)))
		})

		It("should capture the bad virtual address from the MMU", func() {
			wake(p)
			p.SetPC(0xDEAD0000) // nothing mapped there

			p.Step(1, false)

			Expect(p.TrapCause()).To(Equal(emu.CauseFetchFault))
			Expect(p.BadVAddr()).To(Equal(uint64(0xDEAD0000)))
		})
	})

	Describe("DeliverInterrupt", func() {
		It("should wake a parked processor", func() {
			Expect(p.Running()).To(BeFalse())

			p.DeliverInterrupt(emu.IRQIPI)

			Expect(p.Running()).To(BeTrue())
		})

		It("should reject an out-of-range line", func() {
			Expect(func() { p.DeliverInterrupt(emu.NumIRQ) }).To(Panic())
			Expect(func() { p.DeliverInterrupt(-1) }).To(Panic())
		})
	})

	Describe("ClearInterrupt", func() {
		It("should lower a pending line", func() {
			p.DeliverInterrupt(3)
			Expect(p.Pending() & (1 << 3)).NotTo(BeZero())

			p.ClearInterrupt(3)

			Expect(p.Pending() & (1 << 3)).To(BeZero())
		})
	})

	Describe("cause naming", func() {
		It("should name architectural causes", func() {
			Expect(emu.CauseIllegalInstruction.String()).To(Equal("illegal instruction"))
			Expect(emu.CauseSyscall.String()).To(Equal("syscall"))
		})

		It("should name external interrupts by line", func() {
			Expect((emu.CauseInterruptBase + 5).String()).To(Equal("external interrupt 5"))
		})

		It("should treat an unknown cause as fatal", func() {
			Expect(func() { _ = emu.Cause(13).String() }).To(Panic())
		})
	})
})
