package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
)

// disasmCmd represents the disasm command.
var disasmCmd = newDisasmCmd()

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <container> <routine-id>",
		Short: "Disassemble a routine",
		Long: `Disassemble one routine into an annotated listing. Each line shows the
instruction index, the operation name and category, the decoded operand
fields, and the true/false branch targets. Opcodes absent from the
operation table are rendered as unknown with their raw bytes preserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseRoutineID(args[1])
			if err != nil {
				return err
			}

			return workflow.Disasm(domain.DisasmArgs{File: args[0], ID: id})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
