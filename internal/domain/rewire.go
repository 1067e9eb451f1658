package domain

import (
	"fmt"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// RewireResult reports the fate of one call site.
type RewireResult struct {
	Site   m.CallSite
	NewID  m.RoutineID
	Result Result
}

// Rewirer propagates an identifier map to every call site whose encoded
// target is a key of the map. It is the only component that rewrites
// operand bytes, and it does so exclusively through the mutation pipeline:
// one request with one diff per distinct call site.
type Rewirer interface {
	Rewire(c adapter.Container, idmap m.IdentifierMap, pipe Pipeline) ([]RewireResult, []m.Finding, error)
}

type rewirer struct {
	scanner Scanner
}

// NewRewirer constructs a Rewirer over the given call-site scanner.
func NewRewirer(scanner Scanner) Rewirer {
	return &rewirer{scanner: scanner}
}

func (rw *rewirer) Rewire(c adapter.Container, idmap m.IdentifierMap, pipe Pipeline) ([]RewireResult, []m.Finding, error) {
	sites, err := rw.scanner.CallSites(c)
	if err != nil {
		return nil, nil, err
	}

	var (
		results  []RewireResult
		findings []m.Finding
	)

	for _, site := range sites {
		newID, mapped := idmap[site.Target]
		if !mapped {
			continue
		}

		routine, ok := c.Routine(site.Routine)
		if !ok {
			// The scan and this pass disagree about the container; report
			// the site and keep going with the rest of the batch.
			findings = append(findings, m.Finding{
				Kind:        m.FindingBadBranch,
				Instruction: site.Instruction,
				Detail:      fmt.Sprintf("routine %#04x vanished during rewire", site.Routine),
			})

			continue
		}

		change := rewireChange(c, routine, site, newID)
		results = append(results, RewireResult{
			Site:   site,
			NewID:  newID,
			Result: pipe.Propose(change),
		})
	}

	return results, findings, nil
}

// rewireChange builds the pipeline change for one call site.
func rewireChange(c adapter.Container, routine *m.Routine, site m.CallSite, newID m.RoutineID) Change {
	oldField := make([]byte, site.Width)
	copy(oldField, routine.Instructions[site.Instruction].Operand[site.Offset:site.Offset+site.Width])

	newField := make([]byte, site.Width)
	encodeTarget(newField, uint16(newID))

	diff := m.Diff{
		Path: fmt.Sprintf("routine[%#04x].instr[%d].operand[%d:%d]",
			site.Routine, site.Instruction, site.Offset, site.Offset+site.Width),
		Instruction: site.Instruction,
		Offset:      site.Offset,
		Old:         oldField,
		New:         newField,
		OldText:     fmt.Sprintf("call %#04x", site.Target),
		NewText:     fmt.Sprintf("call %#04x", newID),
	}

	return Change{
		Request: m.Request{
			Kind:   m.KindOperandEdit,
			Target: site.Routine,
			File:   c.Name(),
			Diffs:  []m.Diff{diff},
			Reason: fmt.Sprintf("rewire call target %#04x -> %#04x", site.Target, newID),
		},
		Apply: func() error {
			target, ok := c.Routine(site.Routine)
			if !ok {
				return fmt.Errorf("routine %#04x not found in %s", site.Routine, c.Name())
			}

			operand := target.Instructions[site.Instruction].Operand
			copy(operand[site.Offset:site.Offset+site.Width], newField)

			return nil
		},
	}
}
