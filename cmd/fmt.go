package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/groqlint/lint"
)

var (
	fmtWidth int
	fmtWrite bool
	fmtList  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [paths...]",
	Short: "Format query files, or standard input when no path is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, err := resolveWidth(fmtWidth)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			out, err := lint.Format(string(src), width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		}

		var failed bool
		for _, path := range args {
			files, err := queryFiles(path)
			if err != nil {
				return err
			}
			for _, file := range files {
				if err := formatFile(cmd.OutOrStdout(), file, width); err != nil {
					logger.Error("Error formatting file", zap.String("file", file), zap.Error(err))
					failed = true
				}
			}
		}
		if failed {
			return fmt.Errorf("some files could not be formatted")
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().IntVar(&fmtWidth, "width", 0, "Maximum line width (default from the configuration, or 80)")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result to the source file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "List files whose formatting differs")
}

// resolveWidth prefers the flag, then the configuration file.
func resolveWidth(flagWidth int) (int, error) {
	if flagWidth != 0 {
		if flagWidth < 0 {
			return 0, fmt.Errorf("%w: %d", lint.ErrInvalidWidth, flagWidth)
		}
		return flagWidth, nil
	}
	path := configPath()
	if path == "" {
		return 0, nil
	}
	config, err := lint.LoadConfig(path)
	if err != nil {
		return 0, err
	}
	return config.Format.Width, nil
}

func queryFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return lint.CollectQueryFiles(path)
}

func formatFile(w io.Writer, file string, width int) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	out, err := lint.Format(string(src), width)
	if err != nil {
		return err
	}
	out += "\n"
	changed := out != string(src)

	if fmtList && changed {
		fmt.Fprintln(w, file)
	}
	if fmtWrite {
		if !changed {
			return nil
		}
		info, err := os.Stat(file)
		if err != nil {
			return err
		}
		return os.WriteFile(file, []byte(out), info.Mode().Perm())
	}
	if !fmtList {
		fmt.Fprint(w, out)
	}
	return nil
}
