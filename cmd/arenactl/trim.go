package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var trimKeep string

func init() {
	rootCmd.AddCommand(newTrimCmd())
}

func newTrimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim <arena>",
		Short: "Shrink the file by releasing trailing free space",
		Long: `The trim command gives the free block at the end of the arena back to
the file system, keeping --keep bytes of it for future allocations.

Example:
  arenactl trim heap.arena
  arenactl trim heap.arena --keep 64KiB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrim(args)
		},
	}
	cmd.Flags().StringVar(&trimKeep, "keep", "0", "Trailing free space to keep")
	return cmd
}

func runTrim(args []string) error {
	keep, err := parseSize(trimKeep)
	if err != nil {
		return err
	}
	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}
	released, err := s.a.Trim(keep)
	if err != nil {
		s.discard()
		return err
	}
	size := s.a.Len()
	if err := s.close(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]int{"released": released, "size": size})
	}
	printInfo("Released %s, arena now %s\n", humanize.IBytes(uint64(released)), humanize.IBytes(uint64(size)))
	return nil
}
