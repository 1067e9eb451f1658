package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

func containerWithIDs(ids ...m.RoutineID) *adapter.MemContainer {
	c := adapter.NewMemContainer("object.swc", m.FormatClassic)
	for _, id := range ids {
		c.Put(&m.Routine{ID: id})
	}

	return c
}

func TestRemapper_Plan(t *testing.T) {
	rm := NewRemapper()

	t.Run("avoided destination shifts to next free identifier", func(t *testing.T) {
		c := containerWithIDs(0x1000)

		plan, err := rm.Plan(c, RemapArgs{
			IDs:    []m.RoutineID{0x1000},
			Offset: 0x1050,
			Avoid:  map[m.RoutineID]bool{0x1050: true},
		})
		require.NoError(t, err)

		assert.Equal(t, m.IdentifierMap{0x1000: 0x1051}, plan)
	})

	t.Run("plans a whole scope in identifier order", func(t *testing.T) {
		c := containerWithIDs(0x0042, 0x1000, 0x1002, 0x1001)

		plan, err := rm.Plan(c, RemapArgs{
			Scope:  m.ScopeObjectLocal,
			Offset: 0x2000,
		})
		require.NoError(t, err)

		assert.Equal(t, m.IdentifierMap{
			0x1000: 0x2000,
			0x1001: 0x2001,
			0x1002: 0x2002,
		}, plan)
	})

	t.Run("destinations skip identifiers that stay put", func(t *testing.T) {
		c := containerWithIDs(0x1000, 0x2001)

		plan, err := rm.Plan(c, RemapArgs{
			IDs:    []m.RoutineID{0x1000},
			Offset: 0x2000,
			Avoid:  map[m.RoutineID]bool{0x2000: true},
		})
		require.NoError(t, err)

		// 0x2000 avoided, 0x2001 occupied by a routine staying put.
		assert.Equal(t, m.IdentifierMap{0x1000: 0x2002}, plan)
	})

	t.Run("result is a bijection", func(t *testing.T) {
		c := containerWithIDs(0x1000, 0x1001, 0x1002, 0x1003)

		plan, err := rm.Plan(c, RemapArgs{Scope: m.ScopeObjectLocal, Offset: 0x3000})
		require.NoError(t, err)
		require.Len(t, plan, 4)

		_, err = plan.Inverse()
		assert.NoError(t, err)
	})

	t.Run("unknown routine in explicit selection fails", func(t *testing.T) {
		c := containerWithIDs(0x1000)

		_, err := rm.Plan(c, RemapArgs{IDs: []m.RoutineID{0x1234}, Offset: 0x2000})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no routine 0x1234")
	})

	t.Run("explicit id outside the requested scope fails", func(t *testing.T) {
		c := containerWithIDs(0x0042)

		_, err := rm.Plan(c, RemapArgs{
			IDs:    []m.RoutineID{0x0042},
			Scope:  m.ScopeObjectLocal,
			Offset: 0x2000,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is global, not object-local")
	})

	t.Run("identifier space exhaustion is an error", func(t *testing.T) {
		c := containerWithIDs(0x1000, 0x1001)

		_, err := rm.Plan(c, RemapArgs{
			Scope:  m.ScopeObjectLocal,
			Offset: 0xFFFF,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exhausted")
	})

	t.Run("exhaustion terminates at offset zero", func(t *testing.T) {
		c := containerWithIDs(0x1000)

		// Every identifier avoided: the scan must give up, not wrap forever.
		avoid := make(map[m.RoutineID]bool, 0x10000)
		for i := 0; i <= 0xFFFF; i++ {
			avoid[m.RoutineID(i)] = true
		}

		_, err := rm.Plan(c, RemapArgs{
			IDs:    []m.RoutineID{0x1000},
			Offset: 0,
			Avoid:  avoid,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exhausted")
	})

	t.Run("planning never mutates the container", func(t *testing.T) {
		c := containerWithIDs(0x1000)

		_, err := rm.Plan(c, RemapArgs{IDs: []m.RoutineID{0x1000}, Offset: 0x2000})
		require.NoError(t, err)

		_, ok := c.Routine(0x1000)
		assert.True(t, ok)
		assert.Len(t, c.Routines(), 1)
	})
}
