package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// deleteCmd represents the delete command.
var deleteCmd = newDeleteCmd()
var deleteApplyFlag bool

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <container> <routine-id>",
		Short: "Delete a routine from a container",
		Long: `Delete one routine through the mutation pipeline. Deleting a global
routine is always refused: every object in the container can still call
it. Without --apply the deletion is only previewed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseRoutineID(args[1])
			if err != nil {
				return err
			}

			return workflow.Delete(domain.DeleteArgs{
				File:  args[0],
				ID:    id,
				Apply: deleteApplyFlag,
			})
		},
	}
	cmd.Flags().BoolVar(&deleteApplyFlag, "apply", false, "commit the deletion instead of previewing it")

	return cmd
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
