package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var (
	initChunk   string
	initClasses string
	initForce   bool
)

func init() {
	rootCmd.AddCommand(newInitCmd())
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <arena>",
		Short: "Create an empty arena file",
		Long: `The init command writes a fresh arena (magic, sentinels and one free
chunk) into a new or empty file.

Example:
  arenactl init heap.arena
  arenactl init heap.arena --chunk 64KiB --classes fine`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args)
		},
	}
	cmd.Flags().StringVar(&initChunk, "chunk", humanize.IBytes(alloc.DefaultChunkSize), "Growth step")
	cmd.Flags().StringVar(&initClasses, "classes", "balanced", "Size class layout: fine, balanced, pow2")
	cmd.Flags().BoolVar(&initForce, "force", false, "Reinitialize a non-empty arena")
	return cmd
}

func classesByName(name string) (alloc.SizeClassConfig, error) {
	switch strings.ToLower(name) {
	case "fine":
		return alloc.ClassesFine, nil
	case "balanced", "":
		return alloc.ClassesBalanced, nil
	case "pow2", "poweroftwo":
		return alloc.ClassesPowerOfTwo, nil
	}
	return alloc.SizeClassConfig{}, fmt.Errorf("unknown size class layout %q", name)
}

func runInit(args []string) error {
	path := args[0]

	chunk, err := parseSize(initChunk)
	if err != nil {
		return err
	}
	classes, err := classesByName(initClasses)
	if err != nil {
		return err
	}

	if initForce {
		if err := os.Truncate(path, 0); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reset %s: %w", path, err)
		}
	}

	s, err := openSession(path, true, alloc.Config{ChunkSize: chunk, Classes: classes})
	if err != nil {
		return err
	}
	if err := s.close(); err != nil {
		return err
	}

	printInfo("Initialized %s: %s, %s classes\n", path, humanize.IBytes(uint64(s.a.Len())), classes.Name)
	return nil
}
