package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcore/emu"
	"github.com/sarchlab/rvcore/insts"
)

var _ = Describe("Retirement Timer", func() {
	var (
		m *fakeMMU
		p *emu.Processor
	)

	timerPending := func() bool {
		return p.Pending()&(1<<emu.IRQTimer) != 0
	}

	BeforeEach(func() {
		m = newFakeMMU()
		p = emu.New(&fakeContext{cores: 1}, m, 0)

		// Spin in place so every step retires exactly one instruction.
		m.load(0x100, insts.JAL(0, 0))
		wake(p)
		p.SetPC(0x100)
	})

	It("should count retired instructions", func() {
		p.Step(10, false)

		Expect(p.TimerCount()).To(Equal(emu.Bits(10)))
	})

	It("should raise the timer line exactly when count crosses compare", func() {
		p.SetTimerCompare(15)

		p.Step(10, false)
		Expect(timerPending()).To(BeFalse())

		p.Step(4, false)
		Expect(timerPending()).To(BeFalse())

		p.Step(1, false)
		Expect(timerPending()).To(BeTrue())
	})

	It("should raise the line when a batch steps past compare", func() {
		p.SetTimerCompare(15)

		p.Step(100, false)

		Expect(timerPending()).To(BeTrue())
	})

	It("should not refire once count has passed compare", func() {
		p.SetTimerCompare(15)
		p.Step(20, false)
		p.ClearInterrupt(emu.IRQTimer)

		p.Step(20, false)

		Expect(timerPending()).To(BeFalse())
	})

	It("should acknowledge a pending timer interrupt on compare writes", func() {
		p.SetTimerCompare(15)
		p.Step(20, false)
		Expect(timerPending()).To(BeTrue())

		p.SetTimerCompare(1000)

		Expect(timerPending()).To(BeFalse())
	})

	It("should arm again for a future compare value", func() {
		p.SetTimerCompare(15)
		p.Step(20, false)
		p.SetTimerCompare(30)

		p.Step(9, false)
		Expect(timerPending()).To(BeFalse())

		p.Step(1, false)
		Expect(timerPending()).To(BeTrue())
	})
})
