package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var (
	allocData string
	readLen   int
)

func init() {
	rootCmd.AddCommand(newAllocCmd(), newFreeCmd(), newReallocCmd(), newReadCmd())
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc <arena> <size>",
		Short: "Allocate a block and print its reference",
		Long: `The alloc command allocates a block with at least <size> usable bytes,
optionally fills it with --data, and prints the payload reference.

Example:
  arenactl alloc heap.arena 128
  arenactl alloc heap.arena 4KiB --data "hello"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc(args)
		},
	}
	cmd.Flags().StringVar(&allocData, "data", "", "Bytes to copy into the new block")
	return cmd
}

func newFreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "free <arena> <ref>",
		Short: "Release a block",
		Long: `The free command releases the block at <ref> and merges it with free
neighbours.

Example:
  arenactl free heap.arena 0x20`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFree(args)
		},
	}
}

func newReallocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "realloc <arena> <ref> <size>",
		Short: "Resize a block, preserving its contents",
		Long: `The realloc command resizes the block at <ref> and prints the new
reference, which differs from <ref> when the block had to move.

Example:
  arenactl realloc heap.arena 0x20 1KiB`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRealloc(args)
		},
	}
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <arena> <ref>",
		Short: "Hex-dump a block's payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(args)
		},
	}
	cmd.Flags().IntVarP(&readLen, "length", "n", 0, "Bytes to dump (0 = whole payload)")
	return cmd
}

// printRef reports a reference in the selected output format.
func printRef(ref alloc.Ref, usable int) error {
	if jsonOut {
		return printJSON(map[string]any{"ref": ref, "usable": usable})
	}
	printInfo("%#x\n", uint64(ref))
	printVerbose("  usable: %d bytes\n", usable)
	return nil
}

func runAlloc(args []string) error {
	n, err := parseSize(args[1])
	if err != nil {
		return err
	}
	if len(allocData) > n {
		return fmt.Errorf("--data is %d bytes, block is %d", len(allocData), n)
	}

	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}

	ref, err := s.a.Alloc(n)
	if err != nil {
		s.discard()
		return err
	}
	buf, err := s.a.Payload(ref)
	if err != nil {
		s.discard()
		return err
	}
	copy(buf, allocData)
	s.dt.Add(int(ref), len(allocData))

	if err := s.close(); err != nil {
		return err
	}
	return printRef(ref, len(buf))
}

func runFree(args []string) error {
	ref, err := parseRef(args[1])
	if err != nil {
		return err
	}
	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}
	if err := s.a.Free(ref); err != nil {
		s.discard()
		return err
	}
	if err := s.close(); err != nil {
		return err
	}
	printVerbose("Freed %#x\n", uint64(ref))
	return nil
}

func runRealloc(args []string) error {
	ref, err := parseRef(args[1])
	if err != nil {
		return err
	}
	n, err := parseSize(args[2])
	if err != nil {
		return err
	}
	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}

	ref, err = s.a.Realloc(ref, n)
	if err != nil {
		s.discard()
		return err
	}
	usable := 0
	if ref != alloc.Nil {
		if usable, err = s.a.UsableSize(ref); err != nil {
			s.discard()
			return err
		}
	}
	if err := s.close(); err != nil {
		return err
	}
	return printRef(ref, usable)
}

func runRead(args []string) error {
	ref, err := parseRef(args[1])
	if err != nil {
		return err
	}
	s, err := openSession(args[0], false, alloc.Config{})
	if err != nil {
		return err
	}
	defer s.discard()

	buf, err := s.a.Payload(ref)
	if err != nil {
		return err
	}
	if readLen > 0 && readLen < len(buf) {
		buf = buf[:readLen]
	}
	if jsonOut {
		return printJSON(map[string]any{"ref": ref, "hex": hex.EncodeToString(buf)})
	}
	if !quiet {
		dumper := hex.Dumper(os.Stdout)
		defer dumper.Close()
		_, err = dumper.Write(buf)
	}
	return err
}
