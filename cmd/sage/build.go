package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sage/internal/diagfmt"
	"sage/internal/driver"
	"sage/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Evaluate a file and cache the emitted code graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("cache-dir", "", "override the artifact cache directory")
}

func runBuild(cmd *cobra.Command, args []string) error {
	colorMode, _ := cmd.Flags().GetString("color")
	maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")

	fileSet := source.NewFileSet()
	res, err := driver.Run(fileSet, args[0], maxDiags)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, res.Bag, fileSet, diagfmt.PrettyOpts{Color: useColor(colorMode)})
	if res.Bag.HasErrors() {
		return fmt.Errorf("build finished with errors")
	}

	artifact, err := driver.BuildArtifact(res)
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if cacheDir != "" {
		cache, err = driver.OpenDiskCacheAt(cacheDir)
	} else {
		cache, err = driver.OpenDiskCache("sage")
	}
	if err != nil {
		return err
	}
	key := fileSet.Get(res.FileID).Hash
	if err := cache.Put(key, artifact); err != nil {
		return fmt.Errorf("failed to cache artifact: %w", err)
	}
	fmt.Printf("cached %d nodes (%d roots)\n", len(artifact.Nodes), len(artifact.Roots))
	return nil
}
