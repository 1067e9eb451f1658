package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/simwright/internal/domain"
	m "github.com/mouse-blink/simwright/internal/model"
)

// remapCmd represents the remap command.
var remapCmd = newRemapCmd()
var remapIDFlags []string
var remapScopeFlag string
var remapOffsetFlag string
var remapAvoidFlags []string
var remapApplyFlag bool
var remapReviewFlag bool

func newRemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap <container>",
		Short: "Remap routine identifiers and rewire their callers",
		Long: `Plan a remap of routine identifiers, then rewire every call site that
referenced an old identifier to the new one. Select routines explicitly
with --ids or by scope with --scope. Each selected routine is assigned
the next free identifier at or above --offset, skipping the avoid set,
identifiers staying in use, and destinations taken earlier in the plan.

Without --apply or --review the plan is only printed. With --review the
changes are queued and reviewed interactively before committing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ids, err := parseRoutineIDs(remapIDFlags)
			if err != nil {
				return err
			}
			avoid, err := parseRoutineIDs(remapAvoidFlags)
			if err != nil {
				return err
			}
			offset, err := parseRoutineID(remapOffsetFlag)
			if err != nil {
				return err
			}
			scope, err := parseScopeFlag(remapScopeFlag)
			if err != nil {
				return err
			}

			return workflow.Remap(domain.RemapCmdArgs{
				File:   args[0],
				IDs:    ids,
				Scope:  scope,
				Offset: offset,
				Avoid:  avoid,
				Apply:  remapApplyFlag,
				Review: remapReviewFlag,
			})
		},
	}
	cmd.Flags().StringArrayVarP(&remapIDFlags, "ids", "i", nil, "routine id to remap (can be repeated)")
	cmd.Flags().StringVarP(&remapScopeFlag, "scope", "s", "", "remap every routine in a scope (global, semi-global, object-local)")
	cmd.Flags().StringVarP(&remapOffsetFlag, "offset", "o", "0", "lowest destination identifier the remap may assign")
	cmd.Flags().StringArrayVarP(&remapAvoidFlags, "avoid", "a", nil, "identifier the remap must not assign (can be repeated)")
	cmd.Flags().BoolVar(&remapApplyFlag, "apply", false, "commit the remap instead of only printing the plan")
	cmd.Flags().BoolVar(&remapReviewFlag, "review", false, "queue the changes and review them interactively")

	return cmd
}

func parseScopeFlag(s string) (m.Scope, error) {
	switch m.Scope(s) {
	case "", m.ScopeGlobal, m.ScopeSemiGlobal, m.ScopeObjectLocal:
		return m.Scope(s), nil
	}

	return "", fmt.Errorf("unknown scope %q: want global, semi-global, or object-local", s)
}

func init() {
	rootCmd.AddCommand(remapCmd)
}
