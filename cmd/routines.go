package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// routinesCmd represents the routines command.
var routinesCmd = newRoutinesCmd()

func newRoutinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines <container>",
		Short: "List the routines in a container",
		Long:  "List every routine in a container with its identifier, scope, and instruction count.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Routines(domain.RoutinesArgs{File: args[0]})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(routinesCmd)
}
