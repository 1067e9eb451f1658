package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// historyCmd represents the history command.
var historyCmd = newHistoryCmd()
var historyTargetFlag string
var historyAllFlag bool

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <container>",
		Short: "Show the mutation audit trail",
		Long: `Show the audit trail recorded alongside a container. Every proposed
mutation leaves exactly one record, including the ones that were
rejected or only previewed. By default only committed mutations are
shown; --all includes every outcome.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			hist := domain.HistoryArgs{
				File: args[0],
				All:  historyAllFlag,
			}
			if historyTargetFlag != "" {
				id, err := parseRoutineID(historyTargetFlag)
				if err != nil {
					return err
				}
				hist.Target, hist.ByTarget = id, true
			}

			return workflow.History(hist)
		},
	}
	cmd.Flags().StringVarP(&historyTargetFlag, "target", "t", "", "only show records for one routine id")
	cmd.Flags().BoolVar(&historyAllFlag, "all", false, "include rejected and preview-only records")

	return cmd
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
