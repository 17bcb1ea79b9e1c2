package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/groqlint/formatter"
	"github.com/gnolang/groqlint/internal"
	tt "github.com/gnolang/groqlint/internal/types"
	"github.com/gnolang/groqlint/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-lint query files whenever they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := args
		if len(dirs) == 0 {
			dirs = []string{"."}
		}

		engine, err := lint.New(configPath(), internal.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to initialize lint engine: %w", err)
		}

		out := cmd.OutOrStdout()
		report := func(filename string, issues []tt.Issue) {
			if len(issues) == 0 {
				fmt.Fprintf(out, "%s: no issues\n", filename)
				return
			}
			code, err := formatter.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				return
			}
			fmt.Fprint(out, formatter.GenerateFormattedIssue(issues, code))
		}

		watcher, err := internal.NewWatcher(engine, dirs, report, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		logger.Info("Watching for changes", zap.Strings("dirs", dirs))
		return watcher.Run(ctx)
	},
}
