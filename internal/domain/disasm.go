// Package domain contains the core behavior-script analysis and editing logic:
// instruction decoding, static control flow, call-site discovery, identifier
// remapping, and the mutation pipeline every edit must pass through.
package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// Annotation is the semantic view of one opcode. Known is the tag: when
// false, every other field is zero. Unknown opcodes are data, not errors,
// and nothing about them is fabricated.
type Annotation struct {
	Known       bool
	Name        string
	Category    string
	StackEffect string
	Exit        m.ExitClass
	Primitive   bool
	Call        bool
	Operands    adapter.OperandHint
}

// Decoded pairs an instruction with its annotation and position.
type Decoded struct {
	Index       int
	Instruction m.Instruction
	Ann         Annotation
}

// UnknownOccurrence locates one appearance of an undocumented opcode.
type UnknownOccurrence struct {
	Routine     m.RoutineID
	Instruction int
	Opcode      uint16
}

// Disassembler turns raw instruction records into annotated instructions.
// It is a pure transform over the reference table; decoding never fails.
type Disassembler interface {
	Decode(in m.Instruction) Annotation
	Disassemble(routine *m.Routine) []Decoded
	Render(d Decoded) string
}

type disassembler struct {
	ops adapter.OpcodeTable
}

// NewDisassembler constructs a Disassembler over the given reference table.
func NewDisassembler(ops adapter.OpcodeTable) Disassembler {
	return &disassembler{ops: ops}
}

func (d *disassembler) Decode(in m.Instruction) Annotation {
	info, ok := d.ops.Lookup(in.Opcode)
	if !ok {
		return Annotation{}
	}

	return Annotation{
		Known:       true,
		Name:        info.Name,
		Category:    info.Category,
		StackEffect: info.StackEffect,
		Exit:        info.Exit,
		Primitive:   info.Primitive,
		Call:        info.Call,
		Operands:    info.Operands,
	}
}

func (d *disassembler) Disassemble(routine *m.Routine) []Decoded {
	out := make([]Decoded, len(routine.Instructions))

	for i, in := range routine.Instructions {
		out[i] = Decoded{Index: i, Instruction: in, Ann: d.Decode(in)}
	}

	return out
}

// Render produces one human-readable disassembly line, with sentinel-aware
// branch formatting.
func (d *disassembler) Render(dec Decoded) string {
	name := dec.Ann.Name
	if !dec.Ann.Known {
		name = fmt.Sprintf("unknown-%#04x", dec.Instruction.Opcode)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%3d: %-20s T:%-12s F:%-12s", dec.Index, name,
		dec.Instruction.TrueTarget, dec.Instruction.FalseTarget)

	fmt.Fprintf(&sb, " %x", dec.Instruction.Operand)

	if hint := dec.Ann.Operands; dec.Ann.Call &&
		hint.TargetWidth > 0 && hint.TargetOffset+hint.TargetWidth <= len(dec.Instruction.Operand) {
		field := dec.Instruction.Operand[hint.TargetOffset : hint.TargetOffset+hint.TargetWidth]
		fmt.Fprintf(&sb, " -> %#04x", decodeTarget(field))
	}

	return sb.String()
}

// UnknownCensus enumerates every undocumented-opcode occurrence across a
// container, with per-opcode frequency. One bad routine never aborts the
// census; it simply contributes its occurrences.
func UnknownCensus(c adapter.Container, dis Disassembler) (occurrences []UnknownOccurrence, freq map[uint16]int) {
	freq = make(map[uint16]int)

	for _, routine := range c.Routines() {
		for i, in := range routine.Instructions {
			if ann := dis.Decode(in); ann.Known {
				continue
			}

			occurrences = append(occurrences, UnknownOccurrence{
				Routine:     routine.ID,
				Instruction: i,
				Opcode:      in.Opcode,
			})
			freq[in.Opcode]++
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].Routine != occurrences[j].Routine {
			return occurrences[i].Routine < occurrences[j].Routine
		}

		return occurrences[i].Instruction < occurrences[j].Instruction
	})

	return occurrences, freq
}
