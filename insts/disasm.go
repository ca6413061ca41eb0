package insts

import "fmt"

// Disassembler renders instruction words as assembly text.
// It holds no state across calls; a single instance may be shared between
// cores and injected wherever tracing is wanted.
type Disassembler struct {
	decoder *Decoder
}

// NewDisassembler creates a new disassembler.
func NewDisassembler() *Disassembler {
	return &Disassembler{decoder: NewDecoder()}
}

// Disassemble returns the assembly text for one instruction word.
func (d *Disassembler) Disassemble(word Inst) string {
	inst := d.decoder.Decode(word)

	switch inst.Op {
	case OpLUI:
		return fmt.Sprintf("lui x%d, 0x%x", inst.Rd, uint32(inst.Imm)>>12)
	case OpAUIPC:
		return fmt.Sprintf("auipc x%d, 0x%x", inst.Rd, uint32(inst.Imm)>>12)
	case OpJAL:
		return fmt.Sprintf("jal x%d, %d", inst.Rd, inst.Imm)
	case OpJALR:
		return fmt.Sprintf("jalr x%d, %d(x%d)", inst.Rd, inst.Imm, inst.Rs1)
	case OpBEQ:
		return d.branchText("beq", inst)
	case OpBNE:
		return d.branchText("bne", inst)
	case OpBLT:
		return d.branchText("blt", inst)
	case OpBGE:
		return d.branchText("bge", inst)
	case OpLW:
		return fmt.Sprintf("lw x%d, %d(x%d)", inst.Rd, inst.Imm, inst.Rs1)
	case OpSW:
		return fmt.Sprintf("sw x%d, %d(x%d)", inst.Rs2, inst.Imm, inst.Rs1)
	case OpADDI:
		return d.immText("addi", inst)
	case OpSLTI:
		return d.immText("slti", inst)
	case OpXORI:
		return d.immText("xori", inst)
	case OpORI:
		return d.immText("ori", inst)
	case OpANDI:
		return d.immText("andi", inst)
	case OpADD:
		return d.regText("add", inst)
	case OpSUB:
		return d.regText("sub", inst)
	case OpSLT:
		return d.regText("slt", inst)
	case OpXOR:
		return d.regText("xor", inst)
	case OpOR:
		return d.regText("or", inst)
	case OpAND:
		return d.regText("and", inst)
	case OpECALL:
		return "ecall"
	case OpEBREAK:
		return "ebreak"
	case OpMTCR:
		return fmt.Sprintf("mtcr cr%d, x%d", inst.Imm, inst.Rs1)
	case OpMFCR:
		return fmt.Sprintf("mfcr x%d, cr%d", inst.Rd, inst.Imm)
	case OpERET:
		return "eret"
	case OpHALT:
		return "halt"
	case OpVSETCFG:
		return fmt.Sprintf("vsetcfg x%d, x%d", inst.Rs1, inst.Rs2)
	case OpVSETVL:
		return fmt.Sprintf("vsetvl x%d, x%d", inst.Rd, inst.Rs1)
	case OpVF:
		return fmt.Sprintf("vf %d(x%d)", inst.Imm, inst.Rs1)
	case OpSTOP:
		return "stop"
	}
	return fmt.Sprintf("unknown 0x%08x", word.Bits())
}

func (d *Disassembler) branchText(name string, inst *Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, %d", name, inst.Rs1, inst.Rs2, inst.Imm)
}

func (d *Disassembler) immText(name string, inst *Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, %d", name, inst.Rd, inst.Rs1, inst.Imm)
}

func (d *Disassembler) regText(name string, inst *Instruction) string {
	return fmt.Sprintf("%s x%d, x%d, x%d", name, inst.Rd, inst.Rs1, inst.Rs2)
}
