// Package cmd provides the root command and CLI setup for simwright.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mouse-blink/simwright/internal/adapter"
	"github.com/mouse-blink/simwright/internal/controller"
	"github.com/mouse-blink/simwright/internal/domain"
	m "github.com/mouse-blink/simwright/internal/model"
	"github.com/spf13/cobra"
)

var containerStore adapter.ContainerStore
var historyStore adapter.HistoryStore
var safetyChecker adapter.SafetyChecker
var opcodeTable adapter.OpcodeTable
var workflow domain.Workflow
var ui domain.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	containerStore = adapter.NewContainerStore()
	historyStore = adapter.NewHistoryStore()
	safetyChecker = adapter.NewSafetyChecker()
	opcodeTable = adapter.BuiltinTable()
	workflow = domain.NewWorkflow(
		containerStore,
		historyStore,
		safetyChecker,
		opcodeTable,
		ui,
	)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simwright",
		Short: "Behavior script inspection and editing tool",
		Long: `Simwright inspects and edits the behavior scripts stored inside game
object containers: it disassembles routines with semantic annotations,
traces control flow, maps call sites across scopes, and applies
identifier remaps and override injections through an audited,
transactional pipeline.

Routine identifiers are written in hex, e.g. 0x1000. The identifier
space is split into scopes: global (0x0000-0x00FF), semi-global
(0x0100-0x0FFF), and object-local (0x1000-0xFFFF).`,
	}

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseRoutineID(s string) (m.RoutineID, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid routine id %q: %w", s, err)
	}

	return m.RoutineID(v), nil
}

func parseRoutineIDs(ss []string) ([]m.RoutineID, error) {
	ids := make([]m.RoutineID, 0, len(ss))
	for _, s := range ss {
		id, err := parseRoutineID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
