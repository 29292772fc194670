// Package driver wires the reader and the evaluator into per-file runs and
// builds cacheable artifacts from what the evaluation emitted.
package driver

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"sage/internal/ast"
	"sage/internal/diag"
	"sage/internal/interp"
	"sage/internal/parser"
	"sage/internal/source"
)

// Result carries everything one file's run produced.
type Result struct {
	Path    string
	FileID  source.FileID
	FileSet *source.FileSet
	Bag     *diag.Bag
	Interp  *interp.Interp
	Values  []interp.Value
	Emitted []*ast.Node // runtime roots, in evaluation order
}

// Run loads, reads and evaluates a single file with its own evaluation
// unit. The error return covers host-level failures only; in-language
// failures land in the bag.
func Run(fileSet *source.FileSet, path string, maxDiags int) (*Result, error) {
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", path, err)
	}
	return runFile(fileSet, fileID, path, maxDiags), nil
}

// RunVirtual evaluates in-memory content under a virtual file name.
func RunVirtual(fileSet *source.FileSet, name string, content []byte, maxDiags int) *Result {
	fileID := fileSet.AddVirtual(name, content)
	return runFile(fileSet, fileID, name, maxDiags)
}

func runFile(fileSet *source.FileSet, fileID source.FileID, path string, maxDiags int) *Result {
	bag := diag.NewBag(maxDiags)
	ip := interp.New(diag.BagReporter{Bag: bag})
	res := &Result{
		Path:    path,
		FileID:  fileID,
		FileSet: fileSet,
		Bag:     bag,
		Interp:  ip,
	}
	reader := parser.NewReader(ip, fileSet.Get(fileID))
	env := ip.Root()
	for _, form := range reader.ReadAll() {
		v := ip.Eval(env, form)
		res.Values = append(res.Values, v)
		if v.IsRuntime() {
			res.Emitted = append(res.Emitted, v.Runtime())
		}
	}
	bag.Sort()
	return res
}

// ListFiles returns the sorted .sage files directly under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".sage") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
