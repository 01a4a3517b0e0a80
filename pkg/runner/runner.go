package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/penenv/pkg/fsutil"
	"github.com/yaklabco/penenv/pkg/reporter"
)

// Run discovers notes under opts.Paths and classifies them on at most
// opts.Jobs goroutines. Outcomes keep discovery order. A file that cannot
// be read is recorded on its outcome and does not stop the scan.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]*FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome := ScanFile(groupCtx, path)
			outcomes[idx] = &outcome
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("scan cancelled: %w", err)
	}
	return result, nil
}

// ScanFile reads and classifies a single note.
func ScanFile(ctx context.Context, path string) FileOutcome {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}
	return FileOutcome{Path: path, Document: reporter.Analyze(path, string(content))}
}
