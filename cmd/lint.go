package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/groqlint/formatter"
	"github.com/gnolang/groqlint/internal"
	tt "github.com/gnolang/groqlint/internal/types"
	"github.com/gnolang/groqlint/lint"
)

var (
	ignoreRules    string
	lintJsonOutput bool
	outPath        string
	useCache       bool
	cacheDir       string
	cacheMaxAge    time.Duration
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint query files and directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("please provide file or directory paths")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine, err := lint.New(configPath(), internal.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to initialize lint engine: %w", err)
		}

		ignored := ignoredRuleNames(ignoreRules)
		for _, rule := range ignored {
			engine.IgnoreRule(rule)
		}

		processor := lint.Processor(lint.ProcessFile)
		if useCache {
			cache, err := internal.NewCache(cacheDir, configPath(), ignored...)
			if err != nil {
				return err
			}
			cache.SetMaxAge(cacheMaxAge)
			defer func() {
				if err := cache.Save(); err != nil {
					logger.Warn("Failed to save lint cache", zap.Error(err))
				}
			}()
			processor = lint.CachedProcessor(cache, processor)
		}

		return runNormalLintProcess(ctx, cmd.OutOrStdout(), engine, args, processor)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVar(&useCache, "cache", false, "Reuse results for unchanged files")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", ".groqlint-cache", "Directory of the lint cache")
	lintCmd.Flags().DurationVar(&cacheMaxAge, "cache-max-age", 0, "Discard cached results older than this (0 keeps them)")
}

// ignoredRuleNames splits the --ignore value, dropping blanks.
func ignoredRuleNames(flag string) []string {
	var names []string
	for _, rule := range strings.Split(flag, ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			names = append(names, rule)
		}
	}
	return names
}

func runNormalLintProcess(ctx context.Context, w io.Writer, engine lint.LintEngine, paths []string, processor lint.Processor) error {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, processor)
	if err != nil {
		return err
	}

	if err := printIssues(w, issues, lintJsonOutput, outPath); err != nil {
		return err
	}

	if len(issues) > 0 {
		return errIssuesFound
	}
	return nil
}

func printIssues(w io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if isJson {
		d, err := json.Marshal(issuesByFile)
		if err != nil {
			return fmt.Errorf("error marshalling issues to JSON: %w", err)
		}
		if jsonOutput == "" {
			_, err = fmt.Fprintln(w, string(d))
			return err
		}
		return os.WriteFile(jsonOutput, d, 0o644)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	for _, filename := range sortedFiles {
		sourceCode, err := formatter.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		fmt.Fprint(w, formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
	}
	return nil
}
