package adapter

import (
	"fmt"
	"sort"

	m "github.com/mouse-blink/simwright/internal/model"
)

// Container abstracts the binary container holding behavior routines. The
// core only ever sees ordered instruction-record sequences keyed by
// identifier; chunk framing and checksumming live behind this seam.
type Container interface {
	// Name identifies the backing file for audits and messages.
	Name() string
	// Format returns the instruction-record layout version of the container.
	Format() m.FormatVersion
	// Routine returns the routine with the given identifier.
	Routine(id m.RoutineID) (*m.Routine, bool)
	// Routines returns all routines ordered by identifier.
	Routines() []*m.Routine
	// Put inserts or replaces a routine under its identifier.
	Put(r *m.Routine)
	// Delete removes a routine. Deleting a missing routine is a no-op.
	Delete(id m.RoutineID)
}

// MemContainer is an in-memory Container, the working representation the
// reader produces and the writer serializes from.
type MemContainer struct {
	name     string
	format   m.FormatVersion
	routines map[m.RoutineID]*m.Routine
}

// NewMemContainer constructs an empty container.
func NewMemContainer(name string, format m.FormatVersion) *MemContainer {
	return &MemContainer{
		name:     name,
		format:   format,
		routines: make(map[m.RoutineID]*m.Routine),
	}
}

// Name returns the backing file name.
func (c *MemContainer) Name() string { return c.name }

// Format returns the container's instruction-record layout version.
func (c *MemContainer) Format() m.FormatVersion { return c.format }

// Routine returns the routine with the given identifier.
func (c *MemContainer) Routine(id m.RoutineID) (*m.Routine, bool) {
	r, ok := c.routines[id]
	return r, ok
}

// Routines returns all routines ordered by identifier.
func (c *MemContainer) Routines() []*m.Routine {
	out := make([]*m.Routine, 0, len(c.routines))
	for _, r := range c.routines {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Put inserts or replaces a routine under its identifier.
func (c *MemContainer) Put(r *m.Routine) {
	c.routines[r.ID] = r
}

// Delete removes a routine.
func (c *MemContainer) Delete(id m.RoutineID) {
	delete(c.routines, id)
}

// ValidateRecord checks that a raw instruction's operand block matches the
// container's format version.
func ValidateRecord(format m.FormatVersion, in m.Instruction) error {
	if len(in.Operand) != format.OperandWidth() {
		return fmt.Errorf("operand block is %d bytes, %s format requires %d",
			len(in.Operand), format, format.OperandWidth())
	}

	return nil
}
