package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <arena>",
		Short: "Report arena size, usage and fragmentation",
		Long: `The info command adopts an arena file and prints its block statistics.

Example:
  arenactl info heap.arena
  arenactl info heap.arena --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	s, err := openSession(path, false, alloc.Config{})
	if err != nil {
		return err
	}
	defer s.discard()

	st := s.a.Stats()
	if jsonOut {
		return printJSON(st)
	}

	printInfo("\nArena Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Size: %s\n", humanize.IBytes(uint64(st.ArenaSize)))
	printInfo("  Allocated: %s in %s blocks\n",
		humanize.IBytes(uint64(st.AllocatedBytes)), humanize.Comma(int64(st.AllocatedBlocks)))
	printInfo("  Free: %s in %s blocks\n",
		humanize.IBytes(uint64(st.FreeBytes)), humanize.Comma(int64(st.FreeBlocks)))
	printInfo("  Largest free block: %s\n", humanize.IBytes(uint64(st.LargestFree)))
	printInfo("  Utilization: %s\n", percent(st.Utilization()))
	printInfo("  Fragmentation: %s\n", percent(st.Fragmentation()))
	return nil
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
