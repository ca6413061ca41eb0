// Package emu provides the functional RISC-V processor core: architectural
// state, the status state machine, interrupt and trap handling, the
// instruction stepping loop, and the vector lane hierarchy.
package emu

// Signal classifies how an instruction boundary resolved.
type Signal uint8

// Signals.
const (
	// SignalNone means the instruction completed; keep stepping.
	SignalNone Signal = iota

	// SignalTrap redirects control to the trap vector.
	SignalTrap

	// SignalLaneDone ends a lane's instruction stream. It is a normal
	// termination, not an error, and is only reachable from a lane.
	SignalLaneDone

	// SignalHalt parks the processor: full reset, step returns early.
	SignalHalt
)

// Outcome is the result of an interrupt check, a fetch, or an instruction
// execution. The stepping loop switches on it; traps and halts never travel
// as errors or panics.
type Outcome struct {
	Signal Signal

	// Cause is valid only when Signal is SignalTrap.
	Cause Cause
}

// Continue reports a normally completed boundary.
func Continue() Outcome {
	return Outcome{}
}

// TrapTo signals a trap with the given cause.
func TrapTo(c Cause) Outcome {
	return Outcome{Signal: SignalTrap, Cause: c}
}

// EndLaneStream signals the end of a lane instruction stream.
func EndLaneStream() Outcome {
	return Outcome{Signal: SignalLaneDone}
}

// HaltRequest signals a halt-to-idle request.
func HaltRequest() Outcome {
	return Outcome{Signal: SignalHalt}
}

// OK reports whether the boundary completed without any signal.
func (o Outcome) OK() bool {
	return o.Signal == SignalNone
}
