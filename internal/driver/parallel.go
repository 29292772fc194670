package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"sage/internal/source"
)

// RunDir evaluates every .sage file directly in dir concurrently;
// subdirectories are not searched. Each file gets
// its own FileSet and evaluation unit, so no interner or payload is shared
// across goroutines; serialization happens at this layer, not inside the
// core. Results come back in the deterministic sorted-path order.
func RunDir(ctx context.Context, dir string, maxDiags int) ([]*Result, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(files))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		g.Go(func() error {
			fileSet := source.NewFileSet()
			res, err := Run(fileSet, path, maxDiags)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
