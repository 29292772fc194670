package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sage/internal/diagfmt"
	"sage/internal/driver"
	"sage/internal/project"
	"sage/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run [file|dir]",
	Short: "Evaluate sage source and print results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

// resolveTarget picks the run target from the argument or the manifest.
func resolveTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, ok, err := project.Load(".")
	if err != nil {
		return "", err
	}
	if !ok || manifest.Config.Run.Main == "" {
		return "", fmt.Errorf("no sage.toml found; specify a file, e.g.:\n  sage run path/to/main.sage")
	}
	return manifest.Config.Run.Main, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}
	colorMode, _ := cmd.Flags().GetString("color")
	maxDiags, _ := cmd.Flags().GetInt("max-diagnostics")
	opts := diagfmt.PrettyOpts{Color: useColor(colorMode)}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}

	if info.IsDir() {
		results, err := driver.RunDir(cmd.Context(), target, maxDiags)
		if err != nil {
			return err
		}
		failed := false
		for _, res := range results {
			printResult(res, opts)
			failed = failed || res.Bag.HasErrors()
		}
		if failed {
			return fmt.Errorf("evaluation finished with errors")
		}
		return nil
	}

	fileSet := source.NewFileSet()
	res, err := driver.Run(fileSet, target, maxDiags)
	if err != nil {
		return err
	}
	printResult(res, opts)
	if res.Bag.HasErrors() {
		return fmt.Errorf("evaluation finished with errors")
	}
	return nil
}

func printResult(res *driver.Result, opts diagfmt.PrettyOpts) {
	diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, opts)
	for _, v := range res.Values {
		if v.IsError() {
			continue
		}
		fmt.Println(res.Interp.Format(v))
	}
}
