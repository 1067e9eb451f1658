package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()
var scanUnknownFlag bool

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <container>",
		Short: "Scan a container for call sites",
		Long: `Scan every routine in a container and list the call sites: which
instruction calls which routine, and where in the operand the target
identifier lives. With --unknown the scan instead takes a census of
opcodes absent from the operation table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Scan(domain.ScanArgs{
				File:    args[0],
				Unknown: scanUnknownFlag,
			})
		},
	}
	cmd.Flags().BoolVarP(&scanUnknownFlag, "unknown", "u", false, "census undocumented opcodes instead of call sites")

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
