package domain

import (
	"bytes"
	"fmt"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// PolicyValidator rejects kinds whose policy forbids mutation. The policy
// lookup is exhaustive over the closed kind enum, so anything arriving
// from legacy callers lands on the unregistered fallback and is rejected
// here with a stable reason.
func PolicyValidator() Validator {
	return func(req m.Request) error {
		policy := req.Kind.Policy()
		if !policy.Mutable {
			return fmt.Errorf("mutation kind %q is not mutable", policy.Name)
		}

		return nil
	}
}

// TargetValidator checks the request's target against the container:
// edits and deletes need an existing routine, clones need a free slot.
func TargetValidator(c adapter.Container) Validator {
	return func(req m.Request) error {
		_, exists := c.Routine(req.Target)

		switch req.Kind {
		case m.KindRoutineClone:
			if exists {
				return fmt.Errorf("routine %#04x already exists in %s", req.Target, c.Name())
			}
		case m.KindOperandEdit, m.KindBranchEdit, m.KindHeaderEdit, m.KindRoutineDelete:
			if !exists {
				return fmt.Errorf("routine %#04x not found in %s", req.Target, c.Name())
			}
		case m.KindUnregistered:
		}

		return nil
	}
}

// DiffValidator checks that operand-level diffs still describe reality:
// the located field is in bounds and its current bytes equal the diff's
// old bytes. A stale diff means the routine changed since preview.
func DiffValidator(c adapter.Container) Validator {
	return func(req m.Request) error {
		if req.Kind != m.KindOperandEdit {
			return nil
		}

		routine, ok := c.Routine(req.Target)
		if !ok {
			return fmt.Errorf("routine %#04x not found in %s", req.Target, c.Name())
		}

		for _, diff := range req.Diffs {
			if diff.Instruction < 0 || diff.Instruction >= len(routine.Instructions) {
				return fmt.Errorf("%s: instruction index out of range", diff.Path)
			}

			operand := routine.Instructions[diff.Instruction].Operand
			if diff.Offset < 0 || diff.Offset+len(diff.Old) > len(operand) {
				return fmt.Errorf("%s: field outside %d-byte operand block", diff.Path, len(operand))
			}

			current := operand[diff.Offset : diff.Offset+len(diff.Old)]
			if !bytes.Equal(current, diff.Old) {
				return fmt.Errorf("%s: operand changed since preview (have %x, diff expects %x)",
					diff.Path, current, diff.Old)
			}

			if len(diff.New) != len(diff.Old) {
				return fmt.Errorf("%s: replacement width %d differs from field width %d",
					diff.Path, len(diff.New), len(diff.Old))
			}
		}

		return nil
	}
}

// BranchValidator re-checks the routine-assembly invariant before commit:
// a branch-edit's new target must be a sentinel or a valid instruction
// index. Mid-edit violations are legal; committed ones are not.
func BranchValidator(c adapter.Container) Validator {
	return func(req m.Request) error {
		if req.Kind != m.KindBranchEdit {
			return nil
		}

		routine, ok := c.Routine(req.Target)
		if !ok {
			return fmt.Errorf("routine %#04x not found in %s", req.Target, c.Name())
		}

		for _, diff := range req.Diffs {
			if len(diff.New) != 1 {
				return fmt.Errorf("%s: branch field is one byte", diff.Path)
			}

			target := m.BranchTarget(diff.New[0])
			if !target.IsSentinel() && target.Index() >= len(routine.Instructions) {
				return fmt.Errorf("%s: target %d outside routine of %d instructions",
					diff.Path, target.Index(), len(routine.Instructions))
			}
		}

		return nil
	}
}

// StandardValidators is the chain installed for a container-backed
// pipeline, in rejection-priority order.
func StandardValidators(c adapter.Container) []Validator {
	return []Validator{
		PolicyValidator(),
		TargetValidator(c),
		DiffValidator(c),
		BranchValidator(c),
	}
}
