package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdx"
	"github.com/alnah/go-mdx/internal/fileutil"
	"github.com/alnah/go-mdx/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Warning    error // non-fatal, e.g. slug fallback
	Skipped    bool  // draft, not written
	Size       int   // bytes written
	Duration   time.Duration
}

// renderBatch processes files concurrently with a fixed number of workers.
// The renderer is shared; it is safe for concurrent use.
func renderBatch(ctx context.Context, renderer Renderer, files []FileToRender, params *renderParams, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, renderer, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, renderer Renderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	res, err := renderer.Render(ctx, mdx.Input{Source: content})
	if err != nil {
		return fail(withRenderHint(err, params.componentNames))
	}

	if res.Meta.Draft && !params.cfg.Input.Drafts {
		result.Skipped = true
		result.Duration = time.Since(start)
		return result
	}

	if !f.Fixed {
		slug, err := mdx.DocumentSlug(res.Meta, f.InputPath)
		if err != nil {
			result.Warning = fmt.Errorf("keeping %s: %w", filepath.Base(f.OutputPath), err)
		} else {
			result.OutputPath = filepath.Join(filepath.Dir(f.OutputPath), slug+params.cfg.Output.Extension)
		}
	}

	output := res.HTML
	if params.page != nil {
		output, err = mdx.WrapPage(res, *params.page)
		if err != nil {
			return fail(err)
		}
	}

	outDir := filepath.Dir(result.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	// #nosec G306 -- HTML files are meant to be readable
	if err := fileutil.WriteFileAtomic(result.OutputPath, []byte(output), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteHTML, err))
	}

	result.Size = len(output)
	result.Duration = time.Since(start)
	return result
}

// withRenderHint appends an actionable hint to known render failures.
func withRenderHint(err error, componentNames []string) error {
	switch {
	case errors.Is(err, mdx.ErrUnknownComponent):
		return fmt.Errorf("%w%s", err, hints.ForUnknownComponent(componentNames))
	case errors.Is(err, mdx.ErrComponentSyntax):
		return fmt.Errorf("%w%s", err, hints.ForComponentSyntax())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// ResultSummary holds the count of rendered, skipped and failed files.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// countResults tallies render outcomes.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results to env and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose && r.Warning != nil {
			fmt.Fprintf(env.Stderr, "WARNING %s: %v\n", r.InputPath, r.Warning)
		}

		switch {
		case r.Skipped:
			fmt.Fprintf(env.Stdout, "Skipped %s (draft)\n", r.InputPath)
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n",
				r.InputPath, r.OutputPath, humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		if summary.Skipped > 0 {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d skipped, %d failed\n", summary.Succeeded, summary.Skipped, summary.Failed)
		} else {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		}
	}

	return summary.Failed
}
