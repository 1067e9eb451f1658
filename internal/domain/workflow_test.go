package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// recordingUI captures what the workflow asked to display.
type recordingUI struct {
	routines  []*m.Routine
	listing   []Decoded
	trace     *m.Trace
	sites     []m.CallSite
	unknowns  []UnknownOccurrence
	plan      m.IdentifierMap
	results   []RewireResult
	audits    []m.Audit
	messages  []string
	pending   []Change
	approve   bool
	reviewErr error
}

func (r *recordingUI) DisplayRoutines(routines []*m.Routine) error {
	r.routines = routines
	return nil
}

func (r *recordingUI) DisplayDisassembly(_ *m.Routine, listing []Decoded, _ func(Decoded) string) error {
	r.listing = listing
	return nil
}

func (r *recordingUI) DisplayTrace(trace m.Trace, listing []Decoded, _ func(Decoded) string) error {
	r.trace = &trace
	r.listing = listing
	return nil
}

func (r *recordingUI) DisplayCallSites(sites []m.CallSite) error {
	r.sites = sites
	return nil
}

func (r *recordingUI) DisplayUnknowns(occurrences []UnknownOccurrence, _ map[uint16]int) error {
	r.unknowns = occurrences
	return nil
}

func (r *recordingUI) DisplayRemapPlan(plan m.IdentifierMap) error {
	r.plan = plan
	return nil
}

func (r *recordingUI) DisplayRewireResults(results []RewireResult, _ []m.Finding) error {
	r.results = results
	return nil
}

func (r *recordingUI) DisplayHistory(audits []m.Audit) error {
	r.audits = audits
	return nil
}

func (r *recordingUI) Message(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recordingUI) ReviewPending(pending []Change) (bool, error) {
	r.pending = pending
	return r.approve, r.reviewErr
}

// writeTestContainer saves a small container with one global routine, one
// object-local caller, and one semi-global caller.
func writeTestContainer(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "object.swc")

	c := adapter.NewMemContainer(path, m.FormatClassic)
	c.Put(&m.Routine{ID: 0x0042, Name: "shared greet", Format: m.FormatClassic, Instructions: []m.Instruction{
		classicInstruction(0x0000, m.BranchReturnTrue, m.BranchReturnFalse),
	}})
	c.Put(&m.Routine{ID: 0x1000, Name: "main", Format: m.FormatClassic, Instructions: []m.Instruction{
		callInstruction(adapter.OpRunSubroutine, 0x0042),
		classicInstruction(0x0130, m.BranchReturnTrue, m.BranchReturnFalse),
	}})
	c.Put(&m.Routine{ID: 0x0100, Name: "family greet", Format: m.FormatClassic, Instructions: []m.Instruction{
		callInstruction(adapter.OpRunSharedTree, 0x0042),
	}})

	require.NoError(t, adapter.NewContainerStore().Save(path, c))

	return path
}

func newTestWorkflow(ui UI) Workflow {
	return NewWorkflow(
		adapter.NewContainerStore(),
		adapter.NewHistoryStore(),
		adapter.NewSafetyChecker(),
		adapter.BuiltinTable(),
		ui,
	)
}

func TestWorkflow_Routines(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}

	require.NoError(t, newTestWorkflow(ui).Routines(RoutinesArgs{File: path}))

	require.Len(t, ui.routines, 3)
	assert.Equal(t, m.RoutineID(0x0042), ui.routines[0].ID)
	assert.Equal(t, m.RoutineID(0x1000), ui.routines[2].ID)
}

func TestWorkflow_Routines_MissingFile(t *testing.T) {
	ui := &recordingUI{}

	err := newTestWorkflow(ui).Routines(RoutinesArgs{File: filepath.Join(t.TempDir(), "absent.swc")})
	require.Error(t, err)
}

func TestWorkflow_Disasm(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}
	wf := newTestWorkflow(ui)

	t.Run("renders the requested routine", func(t *testing.T) {
		require.NoError(t, wf.Disasm(DisasmArgs{File: path, ID: 0x1000}))

		require.Len(t, ui.listing, 2)
		assert.True(t, ui.listing[0].Ann.Known)
		assert.False(t, ui.listing[1].Ann.Known)
	})

	t.Run("missing routine is an error", func(t *testing.T) {
		err := wf.Disasm(DisasmArgs{File: path, ID: 0x9999})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestWorkflow_Trace(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}

	require.NoError(t, newTestWorkflow(ui).Trace(TraceArgs{File: path, ID: 0x0042}))

	require.NotNil(t, ui.trace)
	assert.Equal(t, m.RoutineID(0x0042), ui.trace.Routine)
	assert.Len(t, ui.trace.Steps, 1)
}

func TestWorkflow_Scan(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}
	wf := newTestWorkflow(ui)

	t.Run("call sites", func(t *testing.T) {
		require.NoError(t, wf.Scan(ScanArgs{File: path}))

		require.Len(t, ui.sites, 2)
		assert.Equal(t, m.RoutineID(0x0100), ui.sites[0].Routine)
		assert.Equal(t, m.RoutineID(0x1000), ui.sites[1].Routine)
	})

	t.Run("unknown census", func(t *testing.T) {
		require.NoError(t, wf.Scan(ScanArgs{File: path, Unknown: true}))

		require.Len(t, ui.unknowns, 1)
		assert.Equal(t, uint16(0x0130), ui.unknowns[0].Opcode)
	})
}

func TestWorkflow_Remap_PlanOnly(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}

	require.NoError(t, newTestWorkflow(ui).Remap(RemapCmdArgs{
		File:   path,
		IDs:    []m.RoutineID{0x1000},
		Scope:  m.ScopeObjectLocal,
		Offset: 0x2000,
	}))

	assert.Equal(t, m.IdentifierMap{0x1000: 0x2000}, ui.plan)
	require.NotEmpty(t, ui.messages)
	assert.Contains(t, ui.messages[0], "plan only")

	// Nothing was persisted.
	c, err := adapter.NewContainerStore().Load(path)
	require.NoError(t, err)
	_, ok := c.Routine(0x1000)
	assert.True(t, ok)
}

func TestWorkflow_Remap_Apply(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}

	require.NoError(t, newTestWorkflow(ui).Remap(RemapCmdArgs{
		File:   path,
		Scope:  m.ScopeGlobal,
		Offset: 0x0050,
		Apply:  true,
	}))

	c, err := adapter.NewContainerStore().Load(path)
	require.NoError(t, err)

	// The shared routine moved and both callers follow it.
	_, ok := c.Routine(0x0042)
	assert.False(t, ok)
	moved, ok := c.Routine(0x0050)
	require.True(t, ok)
	assert.Equal(t, "shared greet", moved.Name)

	local, _ := c.Routine(0x1000)
	assert.Equal(t, []byte{0x50, 0x00}, local.Instructions[0].Operand[0:2])
	semi, _ := c.Routine(0x0100)
	assert.Equal(t, []byte{0x50, 0x00}, semi.Instructions[0].Operand[0:2])

	// The audit trail landed in the sidecar file.
	audits, err := adapter.NewHistoryStore().Load(path + ".audit")
	require.NoError(t, err)
	assert.NotEmpty(t, audits)
}

func TestRenumberRoutines_OverlappingDestinations(t *testing.T) {
	// A plan may hand one routine another's old identifier; the later move
	// must not lose the routine the earlier one displaced.
	c := adapter.NewMemContainer("object.swc", m.FormatClassic)
	c.Put(&m.Routine{ID: 0x1000, Name: "first"})
	c.Put(&m.Routine{ID: 0x1001, Name: "second"})

	pipe := newMutatePipeline(c)
	plan := m.IdentifierMap{0x1000: 0x1001, 0x1001: 0x1002}

	results := renumberRoutines(c, plan, pipe)

	require.Len(t, results, 2)
	for _, result := range results {
		assert.Equal(t, m.OutcomeSuccess, result.Outcome, result.Detail)
	}

	require.Len(t, c.Routines(), 2)
	first, ok := c.Routine(0x1001)
	require.True(t, ok)
	assert.Equal(t, "first", first.Name)
	second, ok := c.Routine(0x1002)
	require.True(t, ok)
	assert.Equal(t, "second", second.Name)
}

func TestWorkflow_Remap_Apply_AdjacentIdentifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.swc")

	c := adapter.NewMemContainer(path, m.FormatClassic)
	c.Put(&m.Routine{ID: 0x1000, Name: "first", Format: m.FormatClassic})
	c.Put(&m.Routine{ID: 0x1001, Name: "second", Format: m.FormatClassic})
	require.NoError(t, adapter.NewContainerStore().Save(path, c))

	ui := &recordingUI{}

	require.NoError(t, newTestWorkflow(ui).Remap(RemapCmdArgs{
		File:   path,
		Scope:  m.ScopeObjectLocal,
		Offset: 0x1001,
		Apply:  true,
	}))

	// 0x1000 takes 0x1001, which pushes 0x1001 to 0x1002.
	got, err := adapter.NewContainerStore().Load(path)
	require.NoError(t, err)
	require.Len(t, got.Routines(), 2)

	first, ok := got.Routine(0x1001)
	require.True(t, ok)
	assert.Equal(t, "first", first.Name)

	second, ok := got.Routine(0x1002)
	require.True(t, ok)
	assert.Equal(t, "second", second.Name)
}

func TestWorkflow_Remap_ReviewDiscard(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{approve: false}

	require.NoError(t, newTestWorkflow(ui).Remap(RemapCmdArgs{
		File:   path,
		Scope:  m.ScopeGlobal,
		Offset: 0x0050,
		Review: true,
	}))

	assert.NotEmpty(t, ui.pending)

	// Declined review leaves the container untouched.
	c, err := adapter.NewContainerStore().Load(path)
	require.NoError(t, err)
	_, ok := c.Routine(0x0042)
	assert.True(t, ok)

	// But the rejected attempts are still audited.
	audits, err := adapter.NewHistoryStore().Load(path + ".audit")
	require.NoError(t, err)
	require.NotEmpty(t, audits)

	var rejected int
	for _, audit := range audits {
		if audit.Outcome == m.OutcomeRejectedUser {
			rejected++
		}
	}
	assert.NotZero(t, rejected)
}

func TestWorkflow_Remap_ReviewApprove(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{approve: true}

	require.NoError(t, newTestWorkflow(ui).Remap(RemapCmdArgs{
		File:   path,
		Scope:  m.ScopeGlobal,
		Offset: 0x0050,
		Review: true,
	}))

	c, err := adapter.NewContainerStore().Load(path)
	require.NoError(t, err)
	_, ok := c.Routine(0x0050)
	assert.True(t, ok)
}

func TestWorkflow_Override(t *testing.T) {
	t.Run("preview queues and persists only audits", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui).Override(OverrideArgs{
			File:     path,
			GlobalID: 0x0042,
			LocalID:  0x2000,
		}))

		require.NotEmpty(t, ui.messages)
		assert.Contains(t, ui.messages[0], "preview mode")

		c, err := adapter.NewContainerStore().Load(path)
		require.NoError(t, err)
		_, ok := c.Routine(0x2000)
		assert.False(t, ok)

		audits, err := adapter.NewHistoryStore().Load(path + ".audit")
		require.NoError(t, err)
		assert.NotEmpty(t, audits)
	})

	t.Run("apply clones and rewires object-local callers only", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui).Override(OverrideArgs{
			File:     path,
			GlobalID: 0x0042,
			LocalID:  0x2000,
			Apply:    true,
		}))

		c, err := adapter.NewContainerStore().Load(path)
		require.NoError(t, err)

		clone, ok := c.Routine(0x2000)
		require.True(t, ok)
		assert.Equal(t, "shared greet", clone.Name)

		local, _ := c.Routine(0x1000)
		assert.Equal(t, []byte{0x00, 0x20}, local.Instructions[0].Operand[0:2])
		semi, _ := c.Routine(0x0100)
		assert.Equal(t, []byte{0x42, 0x00}, semi.Instructions[0].Operand[0:2])
	})
}

func TestWorkflow_Delete(t *testing.T) {
	t.Run("preview leaves the routine on disk", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui).Delete(DeleteArgs{File: path, ID: 0x1000}))

		require.NotEmpty(t, ui.messages)
		assert.Contains(t, ui.messages[0], "preview mode")

		c, err := adapter.NewContainerStore().Load(path)
		require.NoError(t, err)
		_, ok := c.Routine(0x1000)
		assert.True(t, ok)

		audits, err := adapter.NewHistoryStore().Load(path + ".audit")
		require.NoError(t, err)
		require.Len(t, audits, 1)
		assert.Equal(t, m.OutcomePreviewOnly, audits[0].Outcome)
	})

	t.Run("apply removes the routine", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui).Delete(DeleteArgs{File: path, ID: 0x1000, Apply: true}))

		c, err := adapter.NewContainerStore().Load(path)
		require.NoError(t, err)
		_, ok := c.Routine(0x1000)
		assert.False(t, ok)
		assert.Len(t, c.Routines(), 2)

		audits, err := adapter.NewHistoryStore().Load(path + ".audit")
		require.NoError(t, err)
		require.Len(t, audits, 1)
		assert.Equal(t, m.OutcomeSuccess, audits[0].Outcome)
	})

	t.Run("global delete is blocked", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		require.NoError(t, newTestWorkflow(ui).Delete(DeleteArgs{File: path, ID: 0x0042, Apply: true}))

		require.NotEmpty(t, ui.messages)
		assert.Contains(t, ui.messages[0], "orphan")

		c, err := adapter.NewContainerStore().Load(path)
		require.NoError(t, err)
		_, ok := c.Routine(0x0042)
		assert.True(t, ok)

		audits, err := adapter.NewHistoryStore().Load(path + ".audit")
		require.NoError(t, err)
		require.Len(t, audits, 1)
		assert.Equal(t, m.OutcomeRejectedSafety, audits[0].Outcome)
	})

	t.Run("missing routine is an error", func(t *testing.T) {
		path := writeTestContainer(t)
		ui := &recordingUI{}

		err := newTestWorkflow(ui).Delete(DeleteArgs{File: path, ID: 0x9999})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestWorkflow_History(t *testing.T) {
	path := writeTestContainer(t)
	ui := &recordingUI{}
	wf := newTestWorkflow(ui)

	// Produce a mixed trail: a committed remap and a preview-only override.
	require.NoError(t, wf.Remap(RemapCmdArgs{
		File: path, IDs: []m.RoutineID{0x1000}, Offset: 0x3000, Apply: true,
	}))
	require.NoError(t, wf.Override(OverrideArgs{File: path, GlobalID: 0x0042, LocalID: 0x2000}))

	t.Run("default shows only committed outcomes", func(t *testing.T) {
		require.NoError(t, wf.History(HistoryArgs{File: path}))

		require.NotEmpty(t, ui.audits)
		for _, audit := range ui.audits {
			assert.Equal(t, m.OutcomeSuccess, audit.Outcome)
		}
	})

	t.Run("all includes previews", func(t *testing.T) {
		require.NoError(t, wf.History(HistoryArgs{File: path, All: true}))

		var previews int
		for _, audit := range ui.audits {
			if audit.Outcome == m.OutcomePreviewOnly {
				previews++
			}
		}
		assert.NotZero(t, previews)
	})

	t.Run("target filter", func(t *testing.T) {
		require.NoError(t, wf.History(HistoryArgs{File: path, Target: 0x2000, ByTarget: true, All: true}))

		require.NotEmpty(t, ui.audits)
		for _, audit := range ui.audits {
			assert.Equal(t, m.RoutineID(0x2000), audit.Target)
		}
	})

	t.Run("no history file yields empty trail", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "untouched.swc")
		require.NoError(t, wf.History(HistoryArgs{File: other}))
		assert.Empty(t, ui.audits)

		_, err := os.Stat(other + ".audit")
		assert.True(t, os.IsNotExist(err))
	})
}
