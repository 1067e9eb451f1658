package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// overrideCmd represents the override command.
var overrideCmd = newOverrideCmd()
var overrideApplyFlag bool

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override <container> <global-id> <local-id>",
		Short: "Inject a local override of a global routine",
		Long: `Clone a global routine into the object-local identifier space and
rewire the container's object-local callers to the clone. Callers
outside the object-local scope keep calling the global original.`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			globalID, err := parseRoutineID(args[1])
			if err != nil {
				return err
			}
			localID, err := parseRoutineID(args[2])
			if err != nil {
				return err
			}

			return workflow.Override(domain.OverrideArgs{
				File:     args[0],
				GlobalID: globalID,
				LocalID:  localID,
				Apply:    overrideApplyFlag,
			})
		},
	}
	cmd.Flags().BoolVar(&overrideApplyFlag, "apply", false, "commit the override instead of previewing it")

	return cmd
}

func init() {
	rootCmd.AddCommand(overrideCmd)
}
