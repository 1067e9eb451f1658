package domain

import (
	"fmt"
	"sort"

	m "github.com/mouse-blink/simwright/internal/model"
)

// StepBudget caps a single simulation run. Behavior scripts loop
// intentionally, so the budget is the only bound on scripts that never
// terminate; exhausting it is reported on the trace, not swallowed.
const StepBudget = 10000

// Analyzer statically simulates a routine without executing any primitive
// effects, and derives reachability and loop structure from the branch
// semantics alone.
type Analyzer interface {
	// Simulate runs a bounded trace from the entry index and attaches the
	// whole-routine reachability and loop analysis.
	Simulate(routine *m.Routine, entry int) m.Trace
	// Successors computes the control-flow graph over every instruction,
	// not just the simulated ones.
	Successors(routine *m.Routine) map[int][]int
}

type analyzer struct {
	dis Disassembler
}

// NewAnalyzer constructs an Analyzer sharing the disassembler's opcode view.
func NewAnalyzer(dis Disassembler) Analyzer {
	return &analyzer{dis: dis}
}

func (a *analyzer) Simulate(routine *m.Routine, entry int) m.Trace {
	trace := m.Trace{
		Routine: routine.ID,
		Visited: make(map[int]bool),
	}

	n := len(routine.Instructions)

	if entry < 0 || entry >= n {
		if n > 0 || entry != 0 {
			trace.Findings = append(trace.Findings, m.Finding{
				Kind:   m.FindingBadBranch,
				Detail: fmt.Sprintf("entry index %d outside routine of %d instructions", entry, n),
			})
		}

		return trace
	}

	locals := make([]int16, routine.LocalCount)
	args := make([]int16, routine.ArgCount)

	ip := entry
	for steps := 0; ; steps++ {
		if steps >= StepBudget {
			trace.Truncated = true
			trace.Findings = append(trace.Findings, m.Finding{
				Kind:        m.FindingBudgetExhausted,
				Instruction: ip,
				Detail:      fmt.Sprintf("stopped after %d steps", StepBudget),
			})

			break
		}

		in := routine.Instructions[ip]
		ann := a.dis.Decode(in)
		next, assumed := resolveExit(in, ann)

		step := m.Step{
			Index:       ip,
			Instruction: in,
			Exit:        ann.Exit,
			Assumed:     assumed,
			Next:        next,
			Locals:      append([]int16(nil), locals...),
			Args:        append([]int16(nil), args...),
		}
		trace.Steps = append(trace.Steps, step)

		if next.IsSentinel() {
			break
		}

		if next.Index() >= n {
			// Malformed target: report and treat the instruction as terminal.
			trace.Findings = append(trace.Findings, m.Finding{
				Kind:        m.FindingBadBranch,
				Instruction: ip,
				Detail:      fmt.Sprintf("branch target %d outside routine of %d instructions", next.Index(), n),
			})

			break
		}

		ip = next.Index()
	}

	a.attachGraphAnalysis(routine, entry, &trace)

	return trace
}

// resolveExit picks the successor for one simulated step. Conditional
// exits follow the true branch and are flagged as assumed.
func resolveExit(in m.Instruction, ann Annotation) (m.BranchTarget, bool) {
	switch ann.Exit {
	case m.ExitTrue:
		return in.TrueTarget, false
	case m.ExitFalse:
		return in.FalseTarget, false
	default:
		return in.TrueTarget, true
	}
}

// Successors applies the branch-sentinel rules to every instruction.
// Sentinels contribute no edge; out-of-bounds targets contribute no edge
// either (they are findings, handled by the simulation pass).
func (a *analyzer) Successors(routine *m.Routine) map[int][]int {
	n := len(routine.Instructions)
	cfg := make(map[int][]int, n)

	for i, in := range routine.Instructions {
		var succ []int

		for _, t := range []m.BranchTarget{in.TrueTarget, in.FalseTarget} {
			if t.IsSentinel() || t.Index() >= n {
				continue
			}

			succ = append(succ, t.Index())
		}

		cfg[i] = dedupInts(succ)
	}

	return cfg
}

// attachGraphAnalysis derives visited/unreachable/loop sets from the full
// successor graph. Reachability is a fixed point of the edge relation, so
// re-running it on an unmodified routine always yields the same sets.
func (a *analyzer) attachGraphAnalysis(routine *m.Routine, entry int, trace *m.Trace) {
	cfg := a.Successors(routine)
	n := len(routine.Instructions)

	queue := []int{entry}
	trace.Visited[entry] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range cfg[cur] {
			if !trace.Visited[next] {
				trace.Visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !trace.Visited[i] {
			trace.Unreachable = append(trace.Unreachable, i)
			trace.Findings = append(trace.Findings, m.Finding{
				Kind:        m.FindingUnreachable,
				Instruction: i,
				Detail:      "no branch path from entry",
			})
		}

		for _, next := range cfg[i] {
			if next < i {
				trace.Loops = append(trace.Loops, m.LoopPair{From: i, To: next})
			}
		}
	}

	sort.Ints(trace.Unreachable)
}

func dedupInts(in []int) []int {
	if len(in) < 2 {
		return in
	}

	seen := map[int]bool{}
	out := in[:0]

	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	return out
}
