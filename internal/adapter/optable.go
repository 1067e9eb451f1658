// Package adapter contains infrastructure adapters for the simwright CLI:
// the opcode reference table, the container seam, the safety oracle, and
// the audit history store.
package adapter

import (
	m "github.com/mouse-blink/simwright/internal/model"
)

// OperandHint describes the layout of an opcode's operand block, as far as
// the reference data knows it. For call-style opcodes it locates the field
// holding the callee identifier.
type OperandHint struct {
	TargetOffset int // byte offset of the callee-identifier field
	TargetWidth  int // field width in bytes (0 for non-calls)
}

// OpInfo is one entry of the opcode reference table.
type OpInfo struct {
	Name        string
	Category    string
	StackEffect string
	Exit        m.ExitClass
	Primitive   bool // low-numbered primitive vs. higher special code
	Call        bool // invokes another routine by identifier
	Operands    OperandHint
}

// OpcodeTable is the external read-only reference data keyed by opcode
// value. Missing entries are expected and must be tolerated by callers.
type OpcodeTable interface {
	// Lookup returns the reference entry for an opcode, if known.
	Lookup(opcode uint16) (OpInfo, bool)
	// CallOpcodes returns the opcodes recognized as routine calls.
	CallOpcodes() []uint16
}

type opcodeTable struct {
	entries map[uint16]OpInfo
	calls   []uint16
}

// NewOpcodeTable constructs a table from explicit entries.
func NewOpcodeTable(entries map[uint16]OpInfo) OpcodeTable {
	t := &opcodeTable{entries: make(map[uint16]OpInfo, len(entries))}

	for op, info := range entries {
		t.entries[op] = info
		if info.Call {
			t.calls = append(t.calls, op)
		}
	}

	return t
}

func (t *opcodeTable) Lookup(opcode uint16) (OpInfo, bool) {
	info, ok := t.entries[opcode]
	return info, ok
}

func (t *opcodeTable) CallOpcodes() []uint16 {
	return append([]uint16(nil), t.calls...)
}

// Call opcodes of the classic primitive set. The callee identifier sits in
// a 2-byte little-endian field at operand offset 0 for all three.
const (
	OpRunSubroutine uint16 = 0x0009
	OpRunSharedTree uint16 = 0x000A
	OpSpawnTask     uint16 = 0x001B
)

// BuiltinTable returns the reference table for the classic primitive set.
// Entries above 0x001F exist in the wild but are undocumented; they decode
// as unknown, which is a supported, queryable state.
func BuiltinTable() OpcodeTable {
	callHint := OperandHint{TargetOffset: 0, TargetWidth: 2}

	return NewOpcodeTable(map[uint16]OpInfo{
		0x0000: {Name: "sleep", Category: "control", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0001: {Name: "generic-call", Category: "control", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0002: {Name: "expression", Category: "math", StackEffect: "pops 2, pushes 1", Exit: m.ExitEither, Primitive: true},
		0x0003: {Name: "find-best-object", Category: "object", StackEffect: "pushes 1", Exit: m.ExitEither, Primitive: true},
		0x0004: {Name: "grab", Category: "object", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0005: {Name: "drop", Category: "object", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0006: {Name: "change-suit", Category: "sim", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0007: {Name: "refresh", Category: "render", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0008: {Name: "random-number", Category: "math", StackEffect: "pushes 1", Exit: m.ExitTrue, Primitive: true},
		OpRunSubroutine: {
			Name: "run-subroutine", Category: "control", StackEffect: "frames callee",
			Exit: m.ExitEither, Primitive: true, Call: true, Operands: callHint,
		},
		OpRunSharedTree: {
			Name: "run-shared-tree", Category: "control", StackEffect: "frames callee",
			Exit: m.ExitEither, Primitive: true, Call: true, Operands: callHint,
		},
		0x000B: {Name: "get-distance", Category: "math", StackEffect: "pushes 1", Exit: m.ExitTrue, Primitive: true},
		0x000C: {Name: "get-direction", Category: "math", StackEffect: "pushes 1", Exit: m.ExitTrue, Primitive: true},
		0x000D: {Name: "test-motive", Category: "sim", StackEffect: "pops 1", Exit: m.ExitEither, Primitive: true},
		0x000E: {Name: "set-motive", Category: "sim", StackEffect: "pops 1", Exit: m.ExitTrue, Primitive: true},
		0x000F: {Name: "adjust-motive", Category: "sim", StackEffect: "pops 1", Exit: m.ExitTrue, Primitive: true},
		0x0010: {Name: "set-local", Category: "data", StackEffect: "pops 1", Exit: m.ExitTrue, Primitive: true},
		0x0011: {Name: "test-local", Category: "data", StackEffect: "pops 1", Exit: m.ExitEither, Primitive: true},
		0x0012: {Name: "route-to", Category: "motion", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0013: {Name: "walk-toward", Category: "motion", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0014: {Name: "face-object", Category: "motion", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0015: {Name: "play-animation", Category: "render", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0016: {Name: "stop-animation", Category: "render", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0017: {Name: "show-dialog", Category: "ui", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x0018: {Name: "set-flag", Category: "data", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x0019: {Name: "clear-flag", Category: "data", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x001A: {Name: "test-flag", Category: "data", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		OpSpawnTask: {
			Name: "spawn-task", Category: "control", StackEffect: "frames callee",
			Exit: m.ExitEither, Primitive: true, Call: true, Operands: callHint,
		},
		0x001C: {Name: "notify-stack-object", Category: "object", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
		0x001D: {Name: "add-to-family", Category: "sim", StackEffect: "-", Exit: m.ExitEither, Primitive: true},
		0x001E: {Name: "budget", Category: "sim", StackEffect: "pops 1", Exit: m.ExitEither, Primitive: true},
		0x001F: {Name: "breakpoint", Category: "debug", StackEffect: "-", Exit: m.ExitTrue, Primitive: true},
	})
}
