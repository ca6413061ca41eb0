package emu

// NumIntRegs and NumFPRegs are the architectural register-file sizes.
const (
	NumIntRegs = 32
	NumFPRegs  = 32
)

// IntRegFile is the integer register file. Register 0 is hard-wired to
// zero: reads return 0 and writes are ignored. Values are stored at full
// 64-bit width; 32-bit mode is the execution layer's concern.
type IntRegFile struct {
	x [NumIntRegs]uint64
}

// Read returns the value of register i.
func (r *IntRegFile) Read(i uint8) uint64 {
	return r.x[i]
}

// Write sets register i. Writes to register 0 are discarded.
func (r *IntRegFile) Write(i uint8, value uint64) {
	if i == 0 {
		return
	}
	r.x[i] = value
}

// Reset zeroes every register. The register file is never partially reset.
func (r *IntRegFile) Reset() {
	r.x = [NumIntRegs]uint64{}
}

// FPRegFile is the floating-point register file. Values are raw 64-bit
// encodings; this core does not interpret them.
type FPRegFile struct {
	f [NumFPRegs]uint64
}

// Read returns the raw bits of register i.
func (r *FPRegFile) Read(i uint8) uint64 {
	return r.f[i]
}

// Write sets the raw bits of register i.
func (r *FPRegFile) Write(i uint8, value uint64) {
	r.f[i] = value
}

// Reset zeroes every register.
func (r *FPRegFile) Reset() {
	r.f = [NumFPRegs]uint64{}
}
