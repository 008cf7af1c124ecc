package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <arena>",
		Short: "Verify every block and free-list invariant",
		Long: `The check command walks the arena, rebuilds the free-space directory and
runs the heap checker. It exits non-zero on the first violation.

Example:
  arenactl check heap.arena`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

func runCheck(args []string) error {
	path := args[0]

	s, err := openSession(path, false, alloc.Config{})
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	defer s.discard()

	if err := s.a.Check(); err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}

	if jsonOut {
		return printJSON(map[string]any{"file": path, "ok": true})
	}
	printInfo("✓ %s: arena consistent\n", path)
	return nil
}
