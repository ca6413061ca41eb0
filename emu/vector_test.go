package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcore/emu"
)

var _ = Describe("Vector Lane Manager", func() {
	var (
		m *fakeMMU
		p *emu.Processor
	)

	BeforeEach(func() {
		m = newFakeMMU()
		p = emu.New(&fakeContext{cores: 1}, m, 0)
	})

	Describe("boot configuration", func() {
		It("should start with all eight banks active", func() {
			Expect(p.VectorBanks()).To(Equal(uint32(0xFF)))
		})

		It("should start with vlmax 32 and vl 0", func() {
			Expect(p.VLMax()).To(Equal(32))
			Expect(p.VL()).To(Equal(0))
		})
	})

	Describe("ConfigVector", func() {
		It("should derive vlmax from the per-element register demand", func() {
			p.ConfigVector(32, 32)
			Expect(p.VLMax()).To(Equal(32))

			p.ConfigVector(64, 64)
			Expect(p.VLMax()).To(Equal(16))

			p.ConfigVector(128, 128)
			Expect(p.VLMax()).To(Equal(8))
		})

		It("should clamp vlmax to the lane count when demand is trivial", func() {
			p.ConfigVector(1, 0)

			Expect(p.VLMax()).To(Equal(emu.MaxLanes))
		})

		It("should re-clamp vl when a reconfiguration shrinks vlmax", func() {
			p.SetVL(32)

			p.ConfigVector(128, 128)

			Expect(p.VL()).To(Equal(8))
		})
	})

	Describe("SetVectorBanks", func() {
		It("should scale vlmax with the bank population count", func() {
			p.ConfigVector(32, 32)

			p.SetVectorBanks(0x0F)

			Expect(p.VLMax()).To(Equal(16))
		})
	})

	Describe("SetVL", func() {
		It("should grant the request when capacity allows", func() {
			Expect(p.SetVL(20)).To(Equal(20))
			Expect(p.VL()).To(Equal(20))
		})

		It("should truncate to vlmax instead of rejecting", func() {
			Expect(p.SetVL(100)).To(Equal(32))
			Expect(p.VL()).To(Equal(32))
		})
	})

	Describe("lanes", func() {
		It("should identify cores and lanes by lane index", func() {
			Expect(p.LaneID()).To(Equal(-1))
			Expect(p.Lane(0).LaneID()).To(Equal(0))
			Expect(p.Lane(7).LaneID()).To(Equal(7))
		})

		It("should reset lanes with traps, fpu and vector unit forced on", func() {
			lane := p.Lane(3)
			lane.SetSR(0)
			lane.Reset()

			Expect(lane.SR() & emu.SRET).NotTo(BeZero())
			Expect(lane.SR() & emu.SREF).NotTo(BeZero())
			Expect(lane.SR() & emu.SREV).NotTo(BeZero())
		})

		It("should not force the vector bits on a core reset", func() {
			p.Reset()

			Expect(p.SR() & emu.SREF).To(BeZero())
			Expect(p.SR() & emu.SREV).To(BeZero())
		})
	})
})
