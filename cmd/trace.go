package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// traceCmd represents the trace command.
var traceCmd = newTraceCmd()
var traceEntryFlag int

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <container> <routine-id>",
		Short: "Trace a routine's control flow",
		Long: `Simulate a routine's control flow from an entry index, following branch
targets until it exits or the step budget runs out. The trace reports
the path taken, loop back-edges, unreachable instructions, and any
branch targets that point outside the routine.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseRoutineID(args[1])
			if err != nil {
				return err
			}

			return workflow.Trace(domain.TraceArgs{
				File:  args[0],
				ID:    id,
				Entry: traceEntryFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&traceEntryFlag, "entry", "e", 0, "instruction index to start the trace from")

	return cmd
}

func init() {
	rootCmd.AddCommand(traceCmd)
}
