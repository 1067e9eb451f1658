// Package model defines the data structures for behavior-script analysis and editing.
package model

import "fmt"

// RoutineID identifies a behavior routine within its owning container.
type RoutineID uint16

// BranchTarget is a raw branch byte: either a zero-based instruction index
// or one of the reserved sentinel values.
type BranchTarget byte

// Branch sentinels. Values at or above BranchError never address an
// instruction; they end the routine instead.
const (
	// BranchError propagates an error to the caller.
	BranchError BranchTarget = 0xFD
	// BranchReturnFalse returns failure from the routine.
	BranchReturnFalse BranchTarget = 0xFE
	// BranchReturnTrue returns success from the routine.
	BranchReturnTrue BranchTarget = 0xFF
)

// IsSentinel reports whether the target ends the routine rather than
// addressing an instruction.
func (t BranchTarget) IsSentinel() bool {
	return t >= BranchError
}

// Index returns the instruction index encoded by the target. Only valid
// when IsSentinel is false.
func (t BranchTarget) Index() int {
	return int(t)
}

func (t BranchTarget) String() string {
	switch t {
	case BranchError:
		return "error"
	case BranchReturnFalse:
		return "return false"
	case BranchReturnTrue:
		return "return true"
	default:
		return fmt.Sprintf("%d", int(t))
	}
}

// FormatVersion selects the binary layout of an instruction record. The
// two observed container generations disagree on operand width, so the
// width is a property of the version, never assumed.
type FormatVersion int

const (
	// FormatClassic carries an 8-byte operand block.
	FormatClassic FormatVersion = iota
	// FormatExtended carries a 16-byte operand block.
	FormatExtended
)

// OperandWidth returns the operand block size in bytes for the version.
func (v FormatVersion) OperandWidth() int {
	if v == FormatExtended {
		return 16
	}

	return 8
}

func (v FormatVersion) String() string {
	if v == FormatExtended {
		return "extended"
	}

	return "classic"
}

// Instruction is one decoded unit of a behavior routine.
type Instruction struct {
	Opcode      uint16
	TrueTarget  BranchTarget
	FalseTarget BranchTarget
	Operand     []byte
}

// Routine is a decoded behavior script: ordered instructions plus header
// metadata. Routines are mutable only through the mutation pipeline.
type Routine struct {
	ID           RoutineID
	Name         string
	Format       FormatVersion
	ArgCount     int
	LocalCount   int
	Instructions []Instruction
}

// Clone returns a deep copy of the routine, operand bytes included.
func (r *Routine) Clone() *Routine {
	cp := *r
	cp.Instructions = make([]Instruction, len(r.Instructions))

	for i, in := range r.Instructions {
		cp.Instructions[i] = in
		cp.Instructions[i].Operand = append([]byte(nil), in.Operand...)
	}

	return &cp
}

// CallSite locates a call-style instruction referencing another routine:
// where the instruction lives and where in its operand block the target
// identifier is encoded.
type CallSite struct {
	Routine     RoutineID
	Instruction int
	Offset      int // byte offset of the target field within the operand
	Width       int // field width in bytes
	Target      RoutineID
}

// IdentifierMap maps old routine identifiers to their renumbered values.
// It must be a bijection onto conflict-free destinations when applied.
type IdentifierMap map[RoutineID]RoutineID

// Inverse returns the value→key map. It fails if the map is not injective.
func (m IdentifierMap) Inverse() (IdentifierMap, error) {
	inv := make(IdentifierMap, len(m))

	for from, to := range m {
		if _, dup := inv[to]; dup {
			return nil, fmt.Errorf("identifier map is not injective: duplicate destination %#04x", to)
		}

		inv[to] = from
	}

	return inv, nil
}
