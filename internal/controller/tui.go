package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mouse-blink/simwright/internal/domain"
	m "github.com/mouse-blink/simwright/internal/model"
)

// TUI implements domain.UI with an interactive Bubble Tea review screen.
// Non-interactive displays fall back to the plain renderer so output stays
// identical between modes.
type TUI struct {
	output io.Writer
	plain  *SimpleUI
}

// NewTUI creates a new TUI delegating plain output to the given SimpleUI.
func NewTUI(output io.Writer, plain *SimpleUI) *TUI {
	return &TUI{output: output, plain: plain}
}

// DisplayRoutines renders the container index.
func (t *TUI) DisplayRoutines(routines []*m.Routine) error {
	return t.plain.DisplayRoutines(routines)
}

// DisplayDisassembly renders one line per instruction.
func (t *TUI) DisplayDisassembly(routine *m.Routine, listing []domain.Decoded, render func(domain.Decoded) string) error {
	return t.plain.DisplayDisassembly(routine, listing, render)
}

// DisplayTrace renders the simulation steps.
func (t *TUI) DisplayTrace(trace m.Trace, listing []domain.Decoded, render func(domain.Decoded) string) error {
	return t.plain.DisplayTrace(trace, listing, render)
}

// DisplayCallSites renders the call-site scan.
func (t *TUI) DisplayCallSites(sites []m.CallSite) error {
	return t.plain.DisplayCallSites(sites)
}

// DisplayUnknowns renders the undocumented-opcode census.
func (t *TUI) DisplayUnknowns(occurrences []domain.UnknownOccurrence, freq map[uint16]int) error {
	return t.plain.DisplayUnknowns(occurrences, freq)
}

// DisplayRemapPlan renders the identifier map.
func (t *TUI) DisplayRemapPlan(plan m.IdentifierMap) error {
	return t.plain.DisplayRemapPlan(plan)
}

// DisplayRewireResults renders per-site outcomes.
func (t *TUI) DisplayRewireResults(results []domain.RewireResult, findings []m.Finding) error {
	return t.plain.DisplayRewireResults(results, findings)
}

// DisplayHistory renders audit records.
func (t *TUI) DisplayHistory(audits []m.Audit) error {
	return t.plain.DisplayHistory(audits)
}

// Message prints a one-line status message.
func (t *TUI) Message(format string, args ...any) {
	_, _ = fmt.Fprintf(t.output, format+"\n", args...)
}

// ReviewPending runs the interactive review screen and reports the
// operator's decision.
func (t *TUI) ReviewPending(pending []domain.Change) (bool, error) {
	if len(pending) == 0 {
		t.Message("nothing pending to review")
		return false, nil
	}

	model := newReviewModel(pending)

	program := tea.NewProgram(model, tea.WithOutput(t.output))

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("review screen failed: %w", err)
	}

	result, ok := final.(reviewModel)
	if !ok {
		return false, nil
	}

	return result.approved, nil
}
