package lint

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gnolang/groqlint/internal"
	tt "github.com/gnolang/groqlint/internal/types"
)

// Processor lints a single file.
type Processor func(LintEngine, string) ([]tt.Issue, error)

// ProgressOutput receives the progress bar drawn while a directory is
// processed. Set it to io.Discard to hide the bar.
var ProgressOutput io.Writer = os.Stderr

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.RunFile(filePath)
}

// ProcessSource lints an in-memory query; issues carry no filename.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	findings, err := engine.RunSource(string(source))
	if err != nil {
		return nil, err
	}
	return tt.NewIssues("", string(source), findings), nil
}

// CachedProcessor wraps processor so that unchanged files reuse the issues
// stored in cache.
func CachedProcessor(cache *internal.Cache, processor Processor) Processor {
	return func(engine LintEngine, filePath string) ([]tt.Issue, error) {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("error reading file: %w", err)
		}
		if issues, ok := cache.Get(filePath, src); ok {
			return issues, nil
		}
		issues, err := processor(engine, filePath)
		if err != nil {
			return nil, err
		}
		cache.Set(filePath, src, issues)
		return issues, nil
	}
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor Processor,
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

// ProcessPath lints path, which is either a query file or a directory
// searched recursively for query files. Files of a directory are processed
// concurrently, at most runtime.NumCPU at a time; issues are returned in
// file name order. A file that cannot be processed is logged and skipped.
// On cancellation the issues gathered so far are returned with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor Processor,
) ([]tt.Issue, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.IsQueryFile(path) {
			return []tt.Issue{}, nil
		}
		return processor(engine, path)
	}

	files, err := CollectQueryFiles(path)
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	results := make([][]tt.Issue, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, filePath := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() { _ = bar.Add(1) }()

			fileIssues, err := processor(engine, filePath)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
				return nil
			}
			results[i] = fileIssues
			return nil
		})
	}
	waitErr := g.Wait()
	_ = bar.Finish()

	issues := []tt.Issue{}
	for _, r := range results {
		issues = append(issues, r...)
	}
	if waitErr != nil {
		return issues, waitErr
	}
	if err := ctx.Err(); err != nil {
		return issues, err
	}
	return issues, nil
}

// CollectQueryFiles returns the query files below root in lexical order.
func CollectQueryFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && internal.IsQueryFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}
