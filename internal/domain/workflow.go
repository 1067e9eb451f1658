package domain

import (
	"fmt"
	"sort"

	"github.com/mouse-blink/simwright/internal/adapter"
	m "github.com/mouse-blink/simwright/internal/model"
)

// UI is the presentation seam the workflow drives. Implementations render
// plain text or a TUI; the workflow never prints directly.
type UI interface {
	DisplayRoutines(routines []*m.Routine) error
	DisplayDisassembly(routine *m.Routine, listing []Decoded, render func(Decoded) string) error
	DisplayTrace(trace m.Trace, listing []Decoded, render func(Decoded) string) error
	DisplayCallSites(sites []m.CallSite) error
	DisplayUnknowns(occurrences []UnknownOccurrence, freq map[uint16]int) error
	DisplayRemapPlan(plan m.IdentifierMap) error
	DisplayRewireResults(results []RewireResult, findings []m.Finding) error
	DisplayHistory(audits []m.Audit) error
	Message(format string, args ...any)

	// ReviewPending lets the operator inspect the queued changes and
	// decide: true promotes the whole queue, false discards it.
	ReviewPending(pending []Change) (bool, error)
}

// RoutinesArgs selects the container to list.
type RoutinesArgs struct {
	File string
}

// DisasmArgs selects one routine to disassemble.
type DisasmArgs struct {
	File string
	ID   m.RoutineID
}

// TraceArgs selects a routine and entry index to simulate.
type TraceArgs struct {
	File  string
	ID    m.RoutineID
	Entry int
}

// ScanArgs selects the container-wide scan to run.
type ScanArgs struct {
	File    string
	Unknown bool // census undocumented opcodes instead of call sites
}

// RemapCmdArgs carries the remap command's parameters.
type RemapCmdArgs struct {
	File   string
	IDs    []m.RoutineID
	Scope  m.Scope
	Offset m.RoutineID
	Avoid  []m.RoutineID
	Apply  bool // false: plan only
	Review bool // queue in preview mode and review interactively
}

// OverrideArgs carries the override-injection parameters.
type OverrideArgs struct {
	File     string
	GlobalID m.RoutineID
	LocalID  m.RoutineID
	Apply    bool
}

// DeleteArgs carries the routine-delete parameters.
type DeleteArgs struct {
	File  string
	ID    m.RoutineID
	Apply bool
}

// HistoryArgs selects audit records to show.
type HistoryArgs struct {
	File     string
	Target   m.RoutineID
	ByTarget bool // filter to one routine; Target alone can't signal this, 0 is a valid id
	All      bool // include rejected and preview-only records
}

// Workflow ties the analysis and mutation components together for the
// CLI. One method per command.
type Workflow interface {
	Routines(args RoutinesArgs) error
	Disasm(args DisasmArgs) error
	Trace(args TraceArgs) error
	Scan(args ScanArgs) error
	Remap(args RemapCmdArgs) error
	Override(args OverrideArgs) error
	Delete(args DeleteArgs) error
	History(args HistoryArgs) error
}

type workflow struct {
	store    adapter.ContainerStore
	history  adapter.HistoryStore
	safety   adapter.SafetyChecker
	ui       UI
	dis      Disassembler
	analyzer Analyzer
	scanner  Scanner
	remapper Remapper
	rewirer  Rewirer
}

// NewWorkflow wires the workflow from its collaborators.
func NewWorkflow(
	store adapter.ContainerStore,
	history adapter.HistoryStore,
	safety adapter.SafetyChecker,
	ops adapter.OpcodeTable,
	ui UI,
) Workflow {
	dis := NewDisassembler(ops)
	scanner := NewScanner(ops)

	return &workflow{
		store:    store,
		history:  history,
		safety:   safety,
		ui:       ui,
		dis:      dis,
		analyzer: NewAnalyzer(dis),
		scanner:  scanner,
		remapper: NewRemapper(),
		rewirer:  NewRewirer(scanner),
	}
}

func (w *workflow) Routines(args RoutinesArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	return w.ui.DisplayRoutines(c.Routines())
}

func (w *workflow) Disasm(args DisasmArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	routine, ok := c.Routine(args.ID)
	if !ok {
		return fmt.Errorf("routine %#04x not found in %s", args.ID, args.File)
	}

	return w.ui.DisplayDisassembly(routine, w.dis.Disassemble(routine), w.dis.Render)
}

func (w *workflow) Trace(args TraceArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	routine, ok := c.Routine(args.ID)
	if !ok {
		return fmt.Errorf("routine %#04x not found in %s", args.ID, args.File)
	}

	return w.ui.DisplayTrace(w.analyzer.Simulate(routine, args.Entry), w.dis.Disassemble(routine), w.dis.Render)
}

func (w *workflow) Scan(args ScanArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	if args.Unknown {
		occurrences, freq := UnknownCensus(c, w.dis)
		return w.ui.DisplayUnknowns(occurrences, freq)
	}

	sites, err := w.scanner.CallSites(c)
	if err != nil {
		return err
	}

	return w.ui.DisplayCallSites(sites)
}

func (w *workflow) Remap(args RemapCmdArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	avoid := make(map[m.RoutineID]bool, len(args.Avoid))
	for _, id := range args.Avoid {
		avoid[id] = true
	}

	plan, err := w.remapper.Plan(c, RemapArgs{
		IDs:    args.IDs,
		Scope:  args.Scope,
		Offset: args.Offset,
		Avoid:  avoid,
	})
	if err != nil {
		return err
	}

	if err := w.ui.DisplayRemapPlan(plan); err != nil {
		return err
	}

	if !args.Apply && !args.Review {
		w.ui.Message("plan only; re-run with --apply or --review to commit")
		return nil
	}

	pipe := w.newPipeline(c)

	if args.Review {
		return w.reviewRemap(c, plan, args, pipe)
	}

	pipe.SetMode(ModeMutate)

	results, findings, err := w.patchForScope(args.Scope).Patch(c, plan, pipe)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayRewireResults(results, findings); err != nil {
		return err
	}

	for _, result := range renumberRoutines(c, plan, pipe) {
		if result.Outcome != m.OutcomeSuccess {
			w.ui.Message("renumber not applied: %s (%s)", result.Outcome, result.Detail)
		}
	}

	return w.persist(args.File, c, pipe)
}

// reviewRemap queues every rewire in preview mode, hands the queue to the
// operator, and promotes or discards it wholesale.
func (w *workflow) reviewRemap(c adapter.Container, plan m.IdentifierMap, args RemapCmdArgs, pipe Pipeline) error {
	pipe.SetMode(ModePreview)

	if _, _, err := w.patchForScope(args.Scope).Patch(c, plan, pipe); err != nil {
		return err
	}

	approved, err := w.ui.ReviewPending(pipe.Pending())
	if err != nil {
		return err
	}

	if !approved {
		dropped := pipe.DiscardPending()
		w.ui.Message("discarded %d pending changes", dropped)

		return w.persist(args.File, nil, pipe)
	}

	for _, result := range pipe.PromoteAll() {
		if result.Outcome != m.OutcomeSuccess {
			w.ui.Message("change not applied: %s (%s)", result.Outcome, result.Detail)
		}
	}

	for _, result := range renumberRoutines(c, plan, pipe) {
		if result.Outcome != m.OutcomeSuccess {
			w.ui.Message("renumber not applied: %s (%s)", result.Outcome, result.Detail)
		}
	}

	return w.persist(args.File, c, pipe)
}

func (w *workflow) Override(args OverrideArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	pipe := w.newPipeline(c)
	if args.Apply {
		pipe.SetMode(ModeMutate)
	} else {
		pipe.SetMode(ModePreview)
	}

	patcher := NewGlobalPatcher(w.rewirer, w.scanner)

	results, findings, err := patcher.InjectOverride(c, args.GlobalID, args.LocalID, pipe)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayRewireResults(results, findings); err != nil {
		return err
	}

	if !args.Apply {
		w.ui.Message("%d changes queued in preview mode; re-run with --apply to commit", len(pipe.Pending()))
		return w.persist(args.File, nil, pipe)
	}

	return w.persist(args.File, c, pipe)
}

func (w *workflow) Delete(args DeleteArgs) error {
	c, err := w.store.Load(args.File)
	if err != nil {
		return err
	}

	routine, ok := c.Routine(args.ID)
	if !ok {
		return fmt.Errorf("routine %#04x not found in %s", args.ID, args.File)
	}

	pipe := w.newPipeline(c)
	if args.Apply {
		pipe.SetMode(ModeMutate)
	} else {
		pipe.SetMode(ModePreview)
	}

	result := pipe.Propose(deleteChange(c, routine))

	switch result.Outcome {
	case m.OutcomeSuccess:
		w.ui.Message("deleted routine %#04x", args.ID)
	case m.OutcomePreviewOnly:
		w.ui.Message("delete queued in preview mode; re-run with --apply to commit")
	default:
		w.ui.Message("delete not applied: %s (%s)", result.Outcome, result.Detail)
	}

	if result.Outcome != m.OutcomeSuccess {
		return w.persist(args.File, nil, pipe)
	}

	return w.persist(args.File, c, pipe)
}

// deleteChange builds the pipeline change removing one routine.
func deleteChange(c adapter.Container, routine *m.Routine) Change {
	return Change{
		Request: m.Request{
			Kind:   m.KindRoutineDelete,
			Target: routine.ID,
			File:   c.Name(),
			Diffs: []m.Diff{{
				Path:        fmt.Sprintf("routine[%#04x]", routine.ID),
				Instruction: -1,
				Offset:      -1,
				OldText:     fmt.Sprintf("%q, %d instructions", routine.Name, len(routine.Instructions)),
				NewText:     "(absent)",
			}},
			Reason: fmt.Sprintf("delete routine %#04x", routine.ID),
		},
		Apply: func() error {
			c.Delete(routine.ID)
			return nil
		},
	}
}

func (w *workflow) History(args HistoryArgs) error {
	audits, err := w.history.Load(historyPath(args.File))
	if err != nil {
		return err
	}

	filtered := audits[:0]

	for _, audit := range audits {
		if args.ByTarget && audit.Target != args.Target {
			continue
		}
		if !args.All && audit.Outcome != m.OutcomeSuccess {
			continue
		}

		filtered = append(filtered, audit)
	}

	return w.ui.DisplayHistory(filtered)
}

// newPipeline builds the per-container write barrier with the standard
// validator chain.
func (w *workflow) newPipeline(c adapter.Container) Pipeline {
	pipe := NewPipeline(w.safety)
	for _, v := range StandardValidators(c) {
		pipe.RegisterValidator(v)
	}

	return pipe
}

// patcher is what Remap needs from a scope patcher.
type patcher interface {
	Patch(c adapter.Container, idmap m.IdentifierMap, pipe Pipeline) ([]RewireResult, []m.Finding, error)
}

// patchForScope picks the scope patcher matching the remap selection; an
// unscoped remap goes through the rewirer with no scope gate.
func (w *workflow) patchForScope(scope m.Scope) patcher {
	switch scope {
	case m.ScopeGlobal:
		return NewGlobalPatcher(w.rewirer, w.scanner)
	case m.ScopeSemiGlobal, m.ScopeObjectLocal:
		return NewScopePatcher(scope, w.rewirer)
	default:
		return unscopedPatcher{rewirer: w.rewirer}
	}
}

type unscopedPatcher struct {
	rewirer Rewirer
}

func (up unscopedPatcher) Patch(c adapter.Container, idmap m.IdentifierMap, pipe Pipeline) ([]RewireResult, []m.Finding, error) {
	return up.rewirer.Rewire(c, idmap, pipe)
}

// renumberRoutines moves routines to their new identifiers, one pipeline
// request per routine. Branch targets inside each routine index
// instructions, not identifiers, so renumbering never touches them.
func renumberRoutines(c adapter.Container, plan m.IdentifierMap, pipe Pipeline) []Result {
	// Resolve every source before the first move: applying one change can
	// reuse another pending source's slot.
	changes := make([]Change, 0, len(plan))
	for _, from := range sortedKeys(plan) {
		changes = append(changes, renumberChange(c, from, plan[from]))
	}

	results := make([]Result, 0, len(changes))
	for _, change := range changes {
		results = append(results, pipe.Propose(change))
	}

	return results
}

// renumberChange moves one routine to its new identifier. The routine is
// resolved when the change is built: a plan may assign a destination that
// is another routine's old identifier, so by the time this change applies
// the source slot can already hold a different, already-moved routine.
// The slot is cleared only while it still holds the captured routine.
func renumberChange(c adapter.Container, from, to m.RoutineID) Change {
	routine, found := c.Routine(from)

	return Change{
		Request: m.Request{
			Kind:   m.KindHeaderEdit,
			Target: from,
			File:   c.Name(),
			Diffs: []m.Diff{{
				Path:        fmt.Sprintf("routine[%#04x].id", from),
				Instruction: -1,
				Offset:      -1,
				OldText:     fmt.Sprintf("%#04x", from),
				NewText:     fmt.Sprintf("%#04x", to),
			}},
			Reason: fmt.Sprintf("renumber routine %#04x -> %#04x", from, to),
		},
		Apply: func() error {
			if !found {
				return fmt.Errorf("routine %#04x not found in %s", from, c.Name())
			}

			if current, ok := c.Routine(from); ok && current == routine {
				c.Delete(from)
			}

			routine.ID = to
			c.Put(routine)

			return nil
		},
	}
}

func sortedKeys(plan m.IdentifierMap) []m.RoutineID {
	keys := make([]m.RoutineID, 0, len(plan))
	for from := range plan {
		keys = append(keys, from)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// persist writes the container (when non-nil) and appends the pipeline's
// audit trail to the sidecar history file.
func (w *workflow) persist(file string, c adapter.Container, pipe Pipeline) error {
	if c != nil {
		mem, ok := c.(*adapter.MemContainer)
		if !ok {
			return fmt.Errorf("container %s is not writable", file)
		}

		if err := w.store.Save(file, mem); err != nil {
			return err
		}
	}

	return w.history.Append(historyPath(file), pipe.History())
}

func historyPath(file string) string {
	return file + ".audit"
}
