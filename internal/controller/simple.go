// Package controller provides the presentation layer: a plain tablewriter
// renderer and a Bubble Tea TUI, both implementing domain.UI.
package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
	m "github.com/mouse-blink/simwright/internal/model"
)

// SimpleUI implements domain.UI using cobra Command's output with
// tablewriter tables. It never prompts, so scripted runs stay
// non-interactive.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRoutines renders the container index.
func (s *SimpleUI) DisplayRoutines(routines []*m.Routine) error {
	if len(routines) == 0 {
		s.printf("no routines in container\n")
		return nil
	}

	table, buf := s.newTable([]string{"ID", "Scope", "Name", "Format", "Args", "Locals", "Instructions"})

	for _, routine := range routines {
		table.Append([]string{
			fmt.Sprintf("%#04x", routine.ID),
			string(m.ScopeOf(routine.ID)),
			routine.Name,
			routine.Format.String(),
			fmt.Sprintf("%d", routine.ArgCount),
			fmt.Sprintf("%d", routine.LocalCount),
			fmt.Sprintf("%d", len(routine.Instructions)),
		})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayDisassembly renders one line per instruction.
func (s *SimpleUI) DisplayDisassembly(routine *m.Routine, listing []domain.Decoded, render func(domain.Decoded) string) error {
	s.printf("routine %#04x %q (%s, %d args, %d locals)\n",
		routine.ID, routine.Name, routine.Format, routine.ArgCount, routine.LocalCount)

	for _, dec := range listing {
		s.printf("%s\n", render(dec))
	}

	return nil
}

// DisplayTrace renders the simulation steps and analysis findings.
func (s *SimpleUI) DisplayTrace(trace m.Trace, listing []domain.Decoded, render func(domain.Decoded) string) error {
	for i, step := range trace.Steps {
		marker := " "
		if step.Assumed {
			marker = "?"
		}

		s.printf("#%-5d%s %s -> %s\n", i, marker, render(listing[step.Index]), step.Next)
	}

	if trace.Truncated {
		s.printf("trace truncated: step budget exhausted\n")
	}

	if len(trace.Loops) > 0 {
		for _, loop := range trace.Loops {
			s.printf("loop: %d -> %d\n", loop.From, loop.To)
		}
	}

	for _, finding := range trace.Findings {
		s.printf("finding [%s] instr %d: %s\n", finding.Kind, finding.Instruction, finding.Detail)
	}

	return nil
}

// DisplayCallSites renders the call-site scan.
func (s *SimpleUI) DisplayCallSites(sites []m.CallSite) error {
	if len(sites) == 0 {
		s.printf("no call sites found\n")
		return nil
	}

	table, buf := s.newTable([]string{"Routine", "Instr", "Field", "Target", "Target Scope"})

	for _, site := range sites {
		table.Append([]string{
			fmt.Sprintf("%#04x", site.Routine),
			fmt.Sprintf("%d", site.Instruction),
			fmt.Sprintf("[%d:%d]", site.Offset, site.Offset+site.Width),
			fmt.Sprintf("%#04x", site.Target),
			string(m.ScopeOf(site.Target)),
		})
	}

	table.SetFooter([]string{"", "", "", "Total", fmt.Sprintf("%d", len(sites))})
	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayUnknowns renders the undocumented-opcode census.
func (s *SimpleUI) DisplayUnknowns(occurrences []domain.UnknownOccurrence, freq map[uint16]int) error {
	if len(occurrences) == 0 {
		s.printf("no undocumented opcodes\n")
		return nil
	}

	opcodes := make([]uint16, 0, len(freq))
	for op := range freq {
		opcodes = append(opcodes, op)
	}

	sort.Slice(opcodes, func(i, j int) bool { return opcodes[i] < opcodes[j] })

	table, buf := s.newTable([]string{"Opcode", "Count"})

	for _, op := range opcodes {
		table.Append([]string{fmt.Sprintf("%#04x", op), fmt.Sprintf("%d", freq[op])})
	}

	table.SetFooter([]string{"Occurrences", fmt.Sprintf("%d", len(occurrences))})
	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayRemapPlan renders the identifier map in key order.
func (s *SimpleUI) DisplayRemapPlan(plan m.IdentifierMap) error {
	if len(plan) == 0 {
		s.printf("remap plan is empty\n")
		return nil
	}

	froms := make([]m.RoutineID, 0, len(plan))
	for from := range plan {
		froms = append(froms, from)
	}

	sort.Slice(froms, func(i, j int) bool { return froms[i] < froms[j] })

	table, buf := s.newTable([]string{"From", "To", "Scope Change"})

	for _, from := range froms {
		to := plan[from]
		scopeChange := "-"

		if m.ScopeOf(from) != m.ScopeOf(to) {
			scopeChange = fmt.Sprintf("%s -> %s", m.ScopeOf(from), m.ScopeOf(to))
		}

		table.Append([]string{fmt.Sprintf("%#04x", from), fmt.Sprintf("%#04x", to), scopeChange})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// DisplayRewireResults renders per-site outcomes and findings.
func (s *SimpleUI) DisplayRewireResults(results []domain.RewireResult, findings []m.Finding) error {
	for _, r := range results {
		where := fmt.Sprintf("routine %#04x instr %d", r.Site.Routine, r.Site.Instruction)
		if r.Site.Instruction < 0 {
			where = fmt.Sprintf("routine %#04x", r.Site.Routine)
		}

		line := fmt.Sprintf("%s -> %#04x: %s", where, r.NewID, r.Result.Outcome)
		if r.Result.Detail != "" {
			line += " (" + r.Result.Detail + ")"
		}

		s.printf("%s\n", line)
	}

	for _, finding := range findings {
		s.printf("finding [%s]: %s\n", finding.Kind, finding.Detail)
	}

	return nil
}

// DisplayHistory renders audit records.
func (s *SimpleUI) DisplayHistory(audits []m.Audit) error {
	if len(audits) == 0 {
		s.printf("no audit records\n")
		return nil
	}

	table, buf := s.newTable([]string{"Time", "Target", "Kind", "Outcome", "Reason", "Note"})

	for _, audit := range audits {
		table.Append([]string{
			audit.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%#04x", audit.Target),
			audit.Kind.String(),
			string(audit.Outcome),
			audit.Reason,
			audit.Note,
		})
	}

	table.Render()
	s.printf("\n%s", buf.String())

	return nil
}

// Message prints a one-line status message.
func (s *SimpleUI) Message(format string, args ...any) {
	s.printf(format+"\n", args...)
}

// ReviewPending lists the queue and declines it: interactive approval
// needs a terminal, and scripted runs should pass --apply instead.
func (s *SimpleUI) ReviewPending(pending []domain.Change) (bool, error) {
	for _, change := range pending {
		for _, diff := range change.Request.Diffs {
			s.printf("pending: %s  %s => %s\n", diff.Path, diff.OldText, diff.NewText)
		}
	}

	s.printf("interactive review requires a terminal; re-run with --apply to commit\n")

	return false, nil
}

func (s *SimpleUI) newTable(header []string) (*tablewriter.Table, *bytes.Buffer) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")

	return table, &buf
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
