package domain

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// Scanner discovers call sites: instructions whose operand encodes the
// identifier of another routine. Discovery is read-only and visits every
// instruction of every routine exactly once.
type Scanner interface {
	// CallSites scans the whole container.
	CallSites(c adapter.Container) ([]m.CallSite, error)
	// RoutineCallSites scans a single routine.
	RoutineCallSites(routine *m.Routine) []m.CallSite
}

type scanner struct {
	calls map[uint16]adapter.OperandHint
}

// NewScanner constructs a Scanner recognizing the reference table's
// call opcodes.
func NewScanner(ops adapter.OpcodeTable) Scanner {
	calls := make(map[uint16]adapter.OperandHint)

	for _, op := range ops.CallOpcodes() {
		if info, ok := ops.Lookup(op); ok {
			calls[op] = info.Operands
		}
	}

	return &scanner{calls: calls}
}

func (s *scanner) RoutineCallSites(routine *m.Routine) []m.CallSite {
	var sites []m.CallSite

	for i, in := range routine.Instructions {
		hint, ok := s.calls[in.Opcode]
		if !ok {
			continue
		}

		offset, width := hint.TargetOffset, hint.TargetWidth
		if width == 0 || offset+width > len(in.Operand) {
			// Reference data claims a call but the operand cannot hold the
			// field; skip the site rather than fabricate a target.
			continue
		}

		sites = append(sites, m.CallSite{
			Routine:     routine.ID,
			Instruction: i,
			Offset:      offset,
			Width:       width,
			Target:      m.RoutineID(decodeTarget(in.Operand[offset:offset+width])),
		})
	}

	return sites
}

// CallSites fans out across routines; each routine is scanned by exactly
// one goroutine and results are merged in identifier order.
func (s *scanner) CallSites(c adapter.Container) ([]m.CallSite, error) {
	routines := c.Routines()

	var (
		mu    sync.Mutex
		sites []m.CallSite
	)

	var g errgroup.Group
	g.SetLimit(4)

	for _, routine := range routines {
		routine := routine
		g.Go(func() error {
			found := s.RoutineCallSites(routine)
			if len(found) == 0 {
				return nil
			}

			mu.Lock()
			sites = append(sites, found...)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("call-site scan: %w", err)
	}

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Routine != sites[j].Routine {
			return sites[i].Routine < sites[j].Routine
		}

		return sites[i].Instruction < sites[j].Instruction
	})

	return sites, nil
}

// decodeTarget reads a little-endian identifier field of 1 or 2 bytes.
func decodeTarget(field []byte) uint16 {
	if len(field) == 1 {
		return uint16(field[0])
	}

	return binary.LittleEndian.Uint16(field[:2])
}

// encodeTarget writes a little-endian identifier field in place.
func encodeTarget(field []byte, id uint16) {
	if len(field) == 1 {
		field[0] = byte(id)
		return
	}

	binary.LittleEndian.PutUint16(field[:2], id)
}
