package driver

import (
	"context"
	"errors"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"provable/internal/claims"
	"provable/internal/source"
	"provable/internal/tag"
)

// scanOne loads path once and runs the claim and the proof pattern over it.
func scanOne(path string) (batch claims.Batch, err error) {
	f, err := source.Load(path)
	if err != nil {
		return claims.Batch{}, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &source.ReadError{Path: path, Err: cerr}
		}
	}()

	batch.File = path
	if batch.Claims, err = tag.Collect(tag.ScanFile(f, tag.ClaimPattern)); err != nil {
		return claims.Batch{}, err
	}
	if batch.Proofs, err = tag.Collect(tag.ScanFile(f, tag.ProofPattern)); err != nil {
		return claims.Batch{}, err
	}
	return batch, nil
}

func scanTracked(path string, sink ProgressSink) (claims.Batch, error) {
	emit(sink, Event{File: path, Status: StatusScanning})
	start := time.Now()
	b, err := scanOne(path)
	if err != nil {
		emit(sink, Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return claims.Batch{}, err
	}
	emit(sink, Event{
		File:    path,
		Status:  StatusDone,
		Found:   len(b.Claims) + len(b.Proofs),
		Elapsed: time.Since(start),
	})
	return b, nil
}

// ScanFiles returns one batch per file, in the order of files.
//
// jobs == 1 scans sequentially; jobs <= 0 uses GOMAXPROCS workers. Any
// unreadable file aborts the scan. With several workers the remaining ones
// are cancelled and the reported error is the failing file with the lowest
// position among those that ran.
func ScanFiles(ctx context.Context, files []string, jobs int, sink ProgressSink) ([]claims.Batch, error) {
	for _, path := range files {
		emit(sink, Event{File: path, Status: StatusQueued})
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs == 1 || len(files) <= 1 {
		return scanSequential(ctx, files, sink)
	}
	return scanParallel(ctx, files, jobs, sink)
}

func scanSequential(ctx context.Context, files []string, sink ProgressSink) ([]claims.Batch, error) {
	batches := make([]claims.Batch, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := scanTracked(path, sink)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func scanParallel(ctx context.Context, files []string, jobs int, sink ProgressSink) ([]claims.Batch, error) {
	// индексы уникальны для каждой горутины, мьютекс не нужен
	batches := make([]claims.Batch, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			b, err := scanTracked(path, sink)
			if err != nil {
				errs[i] = err
				return err
			}
			batches[i] = b
			return nil
		})
	}
	waitErr := g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		return nil, waitErr
	}
	return batches, nil
}
