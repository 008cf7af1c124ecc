package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var (
	blocksFree      bool
	blocksAllocated bool
)

func init() {
	rootCmd.AddCommand(newBlocksCmd())
}

func newBlocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks <arena>",
		Short: "List blocks in address order",
		Long: `The blocks command prints every block with its header offset, payload
reference, size and state.

Example:
  arenactl blocks heap.arena
  arenactl blocks heap.arena --free --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlocks(args)
		},
	}
	cmd.Flags().BoolVar(&blocksFree, "free", false, "Only list free blocks")
	cmd.Flags().BoolVar(&blocksAllocated, "allocated", false, "Only list allocated blocks")
	return cmd
}

type blockRow struct {
	Offset int       `json:"offset"`
	Ref    alloc.Ref `json:"ref"`
	Size   int       `json:"size"`
	Usable int       `json:"usable"`
	State  string    `json:"state"`
}

func runBlocks(args []string) error {
	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}
	defer s.discard()

	var rows []blockRow
	err = s.a.Walk(func(b alloc.Block) bool {
		if (blocksFree && b.Allocated) || (blocksAllocated && !b.Allocated) {
			return true
		}
		state := "free"
		if b.Allocated {
			state = "allocated"
		}
		rows = append(rows, blockRow{b.Offset, b.Ref(), b.Size, b.Usable(), state})
		return true
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("%10s  %10s  %10s  %10s  %s\n", "OFFSET", "REF", "SIZE", "USABLE", "STATE")
	for _, r := range rows {
		printInfo("%#10x  %#10x  %10d  %10d  %s\n", r.Offset, uint64(r.Ref), r.Size, r.Usable, r.State)
	}
	return nil
}
