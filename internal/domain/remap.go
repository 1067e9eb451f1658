package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// RemapArgs selects which routines to renumber and where destinations may
// be allocated from.
type RemapArgs struct {
	// IDs restricts the remap to these routines. Empty means every routine
	// passing the scope filter.
	IDs []m.RoutineID
	// Scope, when non-empty, limits selection to identifiers of that scope.
	Scope m.Scope
	// Offset is the lowest destination identifier the allocator may hand out.
	Offset m.RoutineID
	// Avoid are destinations that must not be assigned.
	Avoid map[m.RoutineID]bool
}

// Remapper computes identifier renumberings. It never mutates anything:
// the produced map is applied separately by the rewirer and patchers.
type Remapper interface {
	Plan(c adapter.Container, args RemapArgs) (m.IdentifierMap, error)
}

type remapper struct{}

// NewRemapper constructs a Remapper.
func NewRemapper() Remapper {
	return &remapper{}
}

// Plan assigns each selected routine the next free identifier at or above
// the offset. A destination is free when it is not in the avoid set, not
// already assigned in this pass, and not held by a routine that is staying
// put. The result is a bijection onto unused destinations.
func (rm *remapper) Plan(c adapter.Container, args RemapArgs) (m.IdentifierMap, error) {
	selected, err := rm.selectIDs(c, args)
	if err != nil {
		return nil, err
	}

	selecting := make(map[m.RoutineID]bool, len(selected))
	for _, id := range selected {
		selecting[id] = true
	}

	// Identifiers staying put keep their slots reserved.
	reserved := make(map[m.RoutineID]bool)
	for _, routine := range c.Routines() {
		if !selecting[routine.ID] {
			reserved[routine.ID] = true
		}
	}

	plan := make(m.IdentifierMap, len(selected))
	next := args.Offset

	for _, id := range selected {
		// Wrapping below the offset means the window is spent; the attempt
		// bound covers offset 0, where the wrap check can never trip.
		for tries := 0; ; tries++ {
			if next < args.Offset || tries > math.MaxUint16 {
				return nil, fmt.Errorf("identifier space exhausted above %#04x", args.Offset)
			}

			if !args.Avoid[next] && !reserved[next] {
				break
			}

			next++
		}

		plan[id] = next
		reserved[next] = true
		next++
	}

	return plan, nil
}

func (rm *remapper) selectIDs(c adapter.Container, args RemapArgs) ([]m.RoutineID, error) {
	var selected []m.RoutineID

	if len(args.IDs) > 0 {
		for _, id := range args.IDs {
			if _, ok := c.Routine(id); !ok {
				return nil, fmt.Errorf("container %s has no routine %#04x", c.Name(), id)
			}

			if args.Scope != "" && !args.Scope.Contains(id) {
				return nil, fmt.Errorf("routine %#04x is %s, not %s", id, m.ScopeOf(id), args.Scope)
			}

			selected = append(selected, id)
		}
	} else {
		for _, routine := range c.Routines() {
			if args.Scope != "" && !args.Scope.Contains(routine.ID) {
				continue
			}

			selected = append(selected, routine.ID)
		}
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	return selected, nil
}
