package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvcore/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("U-type and J-type", func() {
		It("should decode LUI", func() {
			inst := decoder.Decode(insts.LUI(2, 0x12345000))

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Rd).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int64(0x12345000)))
		})

		It("should sign-extend a negative LUI immediate", func() {
			inst := decoder.Decode(insts.LUI(2, -4096))

			Expect(inst.Imm).To(Equal(int64(-4096)))
		})

		It("should decode JAL with a negative offset", func() {
			inst := decoder.Decode(insts.JAL(1, -8))

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int64(-8)))
		})

		It("should decode JAL with a large positive offset", func() {
			inst := decoder.Decode(insts.JAL(0, 0x7FFFE))

			Expect(inst.Imm).To(Equal(int64(0x7FFFE)))
		})
	})

	Describe("I-type", func() {
		It("should decode ADDI", func() {
			inst := decoder.Decode(insts.ADDI(1, 3, 42))

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(int64(42)))
		})

		It("should sign-extend a negative ADDI immediate", func() {
			inst := decoder.Decode(insts.ADDI(1, 3, -2048))

			Expect(inst.Imm).To(Equal(int64(-2048)))
		})

		It("should decode JALR", func() {
			inst := decoder.Decode(insts.JALR(1, 5, 16))

			Expect(inst.Op).To(Equal(insts.OpJALR))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int64(16)))
		})

		It("should decode LW", func() {
			inst := decoder.Decode(insts.LW(7, 2, -4))

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Rd).To(Equal(uint8(7)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int64(-4)))
		})
	})

	Describe("S-type and B-type", func() {
		It("should decode SW", func() {
			inst := decoder.Decode(insts.SW(9, 2, -12))

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(9)))
			Expect(inst.Imm).To(Equal(int64(-12)))
		})

		It("should decode BEQ with a backward offset", func() {
			inst := decoder.Decode(insts.BEQ(1, 2, -16))

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int64(-16)))
		})

		It("should decode BGE with a forward offset", func() {
			inst := decoder.Decode(insts.BGE(3, 4, 64))

			Expect(inst.Op).To(Equal(insts.OpBGE))
			Expect(inst.Imm).To(Equal(int64(64)))
		})
	})

	Describe("R-type", func() {
		It("should decode ADD", func() {
			inst := decoder.Decode(insts.ADD(1, 2, 3))

			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
		})

		It("should distinguish SUB from ADD by funct7", func() {
			Expect(decoder.Decode(insts.SUB(1, 2, 3)).Op).To(Equal(insts.OpSUB))
			Expect(decoder.Decode(insts.ADD(1, 2, 3)).Op).To(Equal(insts.OpADD))
		})
	})

	Describe("SYSTEM", func() {
		It("should decode ECALL and EBREAK", func() {
			Expect(decoder.Decode(insts.ECALL()).Op).To(Equal(insts.OpECALL))
			Expect(decoder.Decode(insts.EBREAK()).Op).To(Equal(insts.OpEBREAK))
		})
	})

	Describe("control-register moves", func() {
		It("should decode MTCR with the control-register index", func() {
			inst := decoder.Decode(insts.MTCR(7, 3))

			Expect(inst.Op).To(Equal(insts.OpMTCR))
			Expect(inst.Rs1).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(int64(7)))
		})

		It("should decode MFCR", func() {
			inst := decoder.Decode(insts.MFCR(4, 10))

			Expect(inst.Op).To(Equal(insts.OpMFCR))
			Expect(inst.Rd).To(Equal(uint8(4)))
			Expect(inst.Imm).To(Equal(int64(10)))
		})

		It("should decode ERET and HALT", func() {
			Expect(decoder.Decode(insts.ERET()).Op).To(Equal(insts.OpERET))
			Expect(decoder.Decode(insts.HALT()).Op).To(Equal(insts.OpHALT))
		})
	})

	Describe("vector control", func() {
		It("should decode VSETCFG", func() {
			inst := decoder.Decode(insts.VSETCFG(5, 6))

			Expect(inst.Op).To(Equal(insts.OpVSETCFG))
			Expect(inst.Rs1).To(Equal(uint8(5)))
			Expect(inst.Rs2).To(Equal(uint8(6)))
		})

		It("should decode VSETVL", func() {
			inst := decoder.Decode(insts.VSETVL(2, 5))

			Expect(inst.Op).To(Equal(insts.OpVSETVL))
			Expect(inst.Rd).To(Equal(uint8(2)))
			Expect(inst.Rs1).To(Equal(uint8(5)))
		})

		It("should decode VF with its offset", func() {
			inst := decoder.Decode(insts.VF(0, 512))

			Expect(inst.Op).To(Equal(insts.OpVF))
			Expect(inst.Imm).To(Equal(int64(512)))
		})

		It("should decode STOP", func() {
			Expect(decoder.Decode(insts.STOP()).Op).To(Equal(insts.OpSTOP))
		})
	})

	Describe("unknown encodings", func() {
		It("should decode an all-ones word to OpUnknown", func() {
			Expect(decoder.Decode(0xFFFFFFFF).Op).To(Equal(insts.OpUnknown))
		})

		It("should decode an unsupported load width to OpUnknown", func() {
			// LB has funct3 0, which this subset does not implement.
			word := insts.EncodeI(0b0000011, 0b000, 1, 2, 0)
			Expect(decoder.Decode(word).Op).To(Equal(insts.OpUnknown))
		})

		It("should decode a zero word to OpUnknown", func() {
			Expect(decoder.Decode(0).Op).To(Equal(insts.OpUnknown))
		})
	})
})
