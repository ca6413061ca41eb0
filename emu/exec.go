package emu

import "github.com/sarchlab/rvcore/insts"

// Control-register indices for the mtcr/mfcr instructions.
const (
	CRK0        uint16 = 0
	CRK1        uint16 = 1
	CREPC       uint16 = 2
	CRBadVAddr  uint16 = 3
	CRSR        uint16 = 4
	CRCause     uint16 = 5
	CRCount     uint16 = 6
	CRCompare   uint16 = 7
	CRSendIPI   uint16 = 8
	CRClearIPI  uint16 = 9
	CRCoreID    uint16 = 10
	CRCoreCount uint16 = 11
)

// opFunc executes one already-decoded instruction.
type opFunc func(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome)

var decoder = insts.NewDecoder()

var execTable = map[insts.Op]opFunc{
	insts.OpLUI:     execLUI,
	insts.OpAUIPC:   execAUIPC,
	insts.OpJAL:     execJAL,
	insts.OpJALR:    execJALR,
	insts.OpBEQ:     execBranch,
	insts.OpBNE:     execBranch,
	insts.OpBLT:     execBranch,
	insts.OpBGE:     execBranch,
	insts.OpLW:      execLW,
	insts.OpSW:      execSW,
	insts.OpADDI:    execOpImm,
	insts.OpSLTI:    execOpImm,
	insts.OpXORI:    execOpImm,
	insts.OpORI:     execOpImm,
	insts.OpANDI:    execOpImm,
	insts.OpADD:     execOpReg,
	insts.OpSUB:     execOpReg,
	insts.OpSLT:     execOpReg,
	insts.OpXOR:     execOpReg,
	insts.OpOR:      execOpReg,
	insts.OpAND:     execOpReg,
	insts.OpECALL:   execECALL,
	insts.OpEBREAK:  execEBREAK,
	insts.OpMTCR:    execMTCR,
	insts.OpMFCR:    execMFCR,
	insts.OpERET:    execERET,
	insts.OpHALT:    execHALT,
	insts.OpVSETCFG: execVSETCFG,
	insts.OpVSETVL:  execVSETVL,
	insts.OpVF:      execVF,
	insts.OpSTOP:    execSTOP,
}

// DecodeExec decodes an instruction word and returns its execution
// handler. Unrecognized words decode to a handler that raises an
// illegal-instruction trap. This is the function table the MMU hands back
// alongside each fetched instruction.
func DecodeExec(word insts.Inst) ExecFunc {
	d := decoder.Decode(word)
	h, ok := execTable[d.Op]
	if !ok {
		h = execIllegal
	}
	return func(p *Processor, _ insts.Inst, pc uint64) (uint64, Outcome) {
		return h(p, d, pc)
	}
}

func execIllegal(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	return pc, TrapTo(CauseIllegalInstruction)
}

func execLUI(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	p.writeX(d.Rd, uint64(d.Imm))
	return pc + 4, Continue()
}

func execAUIPC(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	p.writeX(d.Rd, pc+uint64(d.Imm))
	return pc + 4, Continue()
}

func execJAL(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	p.writeX(d.Rd, pc+4)
	return pc + uint64(d.Imm), Continue()
}

func execJALR(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	target := (p.readX(d.Rs1) + uint64(d.Imm)) &^ 1
	p.writeX(d.Rd, pc+4)
	return target, Continue()
}

func execBranch(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	a := int64(p.readX(d.Rs1))
	b := int64(p.readX(d.Rs2))

	var taken bool
	switch d.Op {
	case insts.OpBEQ:
		taken = a == b
	case insts.OpBNE:
		taken = a != b
	case insts.OpBLT:
		taken = a < b
	case insts.OpBGE:
		taken = a >= b
	}

	if taken {
		return pc + uint64(d.Imm), Continue()
	}
	return pc + 4, Continue()
}

func execLW(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.dmem == nil {
		return pc, TrapTo(CauseLoadFault)
	}
	addr := p.readX(d.Rs1) + uint64(d.Imm)
	word, out := p.dmem.LoadWord(addr)
	if !out.OK() {
		return pc, out
	}
	p.writeX(d.Rd, uint64(int64(int32(word))))
	return pc + 4, Continue()
}

func execSW(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.dmem == nil {
		return pc, TrapTo(CauseStoreFault)
	}
	addr := p.readX(d.Rs1) + uint64(d.Imm)
	if out := p.dmem.StoreWord(addr, uint32(p.readX(d.Rs2))); !out.OK() {
		return pc, out
	}
	return pc + 4, Continue()
}

func execOpImm(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	a := p.readX(d.Rs1)
	imm := uint64(d.Imm)

	var result uint64
	switch d.Op {
	case insts.OpADDI:
		result = a + imm
	case insts.OpSLTI:
		if int64(a) < d.Imm {
			result = 1
		}
	case insts.OpXORI:
		result = a ^ imm
	case insts.OpORI:
		result = a | imm
	case insts.OpANDI:
		result = a & imm
	}

	p.writeX(d.Rd, result)
	return pc + 4, Continue()
}

func execOpReg(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	a := p.readX(d.Rs1)
	b := p.readX(d.Rs2)

	var result uint64
	switch d.Op {
	case insts.OpADD:
		result = a + b
	case insts.OpSUB:
		result = a - b
	case insts.OpSLT:
		if int64(a) < int64(b) {
			result = 1
		}
	case insts.OpXOR:
		result = a ^ b
	case insts.OpOR:
		result = a | b
	case insts.OpAND:
		result = a & b
	}

	p.writeX(d.Rd, result)
	return pc + 4, Continue()
}

func execECALL(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	return pc, TrapTo(CauseSyscall)
}

func execEBREAK(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	return pc, TrapTo(CauseBreakpoint)
}

func execMTCR(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SRS == 0 {
		return pc, TrapTo(CausePrivilegedInstruction)
	}
	value := p.readX(d.Rs1)

	switch uint16(d.Imm) {
	case CRK0:
		p.k0 = value
	case CRK1:
		p.k1 = value
	case CREPC:
		p.epc = value
	case CRSR:
		p.SetSR(Bits(value))
	case CRCount:
		p.count = Bits(value)
	case CRCompare:
		p.SetTimerCompare(Bits(value))
	case CRSendIPI:
		p.ctx.SendInterrupt(int(value), IRQIPI)
	case CRClearIPI:
		p.pending &^= 1 << IRQIPI
	default:
		return pc, TrapTo(CauseIllegalInstruction)
	}
	return pc + 4, Continue()
}

func execMFCR(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SRS == 0 {
		return pc, TrapTo(CausePrivilegedInstruction)
	}

	var value uint64
	switch uint16(d.Imm) {
	case CRK0:
		value = p.k0
	case CRK1:
		value = p.k1
	case CREPC:
		value = p.epc
	case CRBadVAddr:
		value = p.badvaddr
	case CRSR:
		value = uint64(p.sr)
	case CRCause:
		value = uint64(p.cause)
	case CRCount:
		value = uint64(p.count)
	case CRCompare:
		value = uint64(p.compare)
	case CRCoreID:
		value = uint64(p.id)
	case CRCoreCount:
		value = uint64(p.ctx.CoreCount())
	default:
		return pc, TrapTo(CauseIllegalInstruction)
	}

	p.writeX(d.Rd, value)
	return pc + 4, Continue()
}

// execERET returns from a trap: traps re-enable, the supervisor bit is
// restored from its pre-trap snapshot, and control resumes at the epc.
func execERET(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SRS == 0 {
		return pc, TrapTo(CausePrivilegedInstruction)
	}

	sr := p.sr &^ SRS
	if p.sr&SRPS != 0 {
		sr |= SRS
	}
	p.SetSR(sr | SRET)
	return p.epc, Continue()
}

func execHALT(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SRS == 0 {
		return pc, TrapTo(CausePrivilegedInstruction)
	}
	return pc, HaltRequest()
}

func execVSETCFG(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SREV == 0 {
		return pc, TrapTo(CauseVectorDisabled)
	}
	p.ConfigVector(int(p.readX(d.Rs1)), int(p.readX(d.Rs2)))
	return pc + 4, Continue()
}

func execVSETVL(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.sr&SREV == 0 {
		return pc, TrapTo(CauseVectorDisabled)
	}
	granted := p.SetVL(int(p.readX(d.Rs1)))
	p.writeX(d.Rd, uint64(granted))
	return pc + 4, Continue()
}

// execVF launches the lane instruction streams: each of the first vl lanes
// runs the stream at rs1+imm until its stop instruction.
func execVF(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.laneID >= 0 {
		return pc, TrapTo(CauseIllegalInstruction)
	}
	if p.sr&SREV == 0 {
		return pc, TrapTo(CauseVectorDisabled)
	}

	target := p.readX(d.Rs1) + uint64(d.Imm)
	for i := 0; i < p.vl; i++ {
		p.runLaneStream(p.lanes[i], target, p.tracing)
	}
	return pc + 4, Continue()
}

func execSTOP(p *Processor, d *insts.Instruction, pc uint64) (uint64, Outcome) {
	if p.laneID < 0 {
		return pc, TrapTo(CauseIllegalInstruction)
	}
	return pc, EndLaneStream()
}
