package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mouse-blink/simwright/internal/domain"
)

// changeItem adapts a pending change for the bubbles list.
type changeItem struct {
	path    string
	oldText string
	newText string
	reason  string
}

func (c changeItem) FilterValue() string {
	return c.path + " " + c.reason
}

// changeDelegate renders one pending change per line.
type changeDelegate struct{}

func (d changeDelegate) Height() int  { return 1 }
func (d changeDelegate) Spacing() int { return 0 }
func (d changeDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d changeDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	change, ok := item.(changeItem)
	if !ok {
		return
	}

	var pathStyle, diffStyle lipgloss.Style

	if index == lm.Index() {
		pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		diffStyle = pathStyle
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		diffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}

	line := fmt.Sprintf("%s  %s",
		pathStyle.Render(change.path),
		diffStyle.Render(change.oldText+" => "+change.newText),
	)
	_, _ = fmt.Fprint(w, line)
}

// reviewModel is the Bubble Tea model for the pending-queue review: a
// scrollable list with a detail pane, resolved by approve or discard.
type reviewModel struct {
	list     list.Model
	pending  []domain.Change
	approved bool
	done     bool
	width    int
}

func newReviewModel(pending []domain.Change) reviewModel {
	items := make([]list.Item, 0, len(pending))

	for _, change := range pending {
		for _, diff := range change.Request.Diffs {
			items = append(items, changeItem{
				path:    diff.Path,
				oldText: diff.OldText,
				newText: diff.NewText,
				reason:  change.Request.Reason,
			})
		}
	}

	lm := list.New(items, changeDelegate{}, 80, 20)
	lm.Title = fmt.Sprintf("%d pending changes (a: approve all, d/esc: discard)", len(pending))
	lm.SetShowStatusBar(false)
	lm.SetFilteringEnabled(false)

	return reviewModel{list: lm, pending: pending}
}

// Init implements tea.Model.
func (rm reviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.list.SetSize(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch msg.String() {
		case "a", "enter":
			rm.approved = true
			rm.done = true

			return rm, tea.Quit
		case "d", "esc", "q", "ctrl+c":
			rm.approved = false
			rm.done = true

			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd
	rm.list, cmd = rm.list.Update(msg)

	return rm, cmd
}

// View implements tea.Model.
func (rm reviewModel) View() string {
	if rm.done {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(rm.list.View())
	sb.WriteString("\n")

	if item, ok := rm.list.SelectedItem().(changeItem); ok {
		detail := lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Render("reason: " + item.reason)
		sb.WriteString(detail)
		sb.WriteString("\n")
	}

	return sb.String()
}
