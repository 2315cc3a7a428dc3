package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/logging"
	"github.com/pacer/lison/internal/metrics"
	"github.com/pacer/lison/internal/presentation"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

type checkParams struct {
	format  string
	ignore  []string
	metrics bool
	watch   bool
}

// checkError is the JSON form of one compile error. Lines and columns are
// 1-based.
type checkError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func newCheckCommand() *cobra.Command {
	params := checkParams{}

	cmd := &cobra.Command{
		Use:   "check [path [...]]",
		Short: "Check LISON files for syntax errors",
		Long: `Check LISON files for lexical and syntax errors.

Directories are searched recursively for .lison and .lsn files. Without a path
the document is read from stdin. Nothing is printed when every file compiles;
otherwise the errors are printed and the exit code is 1.

With --watch, the paths are checked again each time a file changes.`,
		PreRunE: func(_ *cobra.Command, args []string) error {
			if params.format != formatPretty && params.format != formatJSON {
				return fmt.Errorf("invalid format %q, expected %q or %q", params.format, formatPretty, formatJSON)
			}

			if params.watch && len(args) == 0 {
				return fmt.Errorf("--watch needs at least one path")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !params.watch {
				return checkPaths(cmd.InOrStdin(), cmd.OutOrStdout(), params, args)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchPaths(ctx, args, func() {
				if err := checkPaths(cmd.InOrStdin(), cmd.OutOrStdout(), params, args); err != nil {
					logging.Get().Debugf("check failed: %v", err)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&params.format, "format", "f", formatPretty, "set output format (pretty, json)")
	cmd.Flags().StringSliceVar(&params.ignore, "ignore", []string{}, "set file and directory names to ignore (e.g. '.*' excludes hidden files)")
	cmd.Flags().BoolVar(&params.metrics, "metrics", false, "print timings and file counts")
	cmd.Flags().BoolVar(&params.watch, "watch", false, "check again whenever a file changes")

	return cmd
}

func checkPaths(stdin io.Reader, out io.Writer, params checkParams, args []string) error {
	files, err := loadPaths(stdin, args, params.ignore)
	if err != nil {
		return err
	}

	m := metrics.NoOp()
	if params.metrics {
		m = metrics.New()
	}

	m.Timer(metrics.Compile).Start()
	results := lison.ParseFilesInWorkspace(files, m)
	m.Timer(metrics.Compile).Stop()

	failed := 0
	var errs []checkError

	for _, name := range sortedNames(results) {
		res := results[name]
		if len(res.Errs) == 0 {
			continue
		}

		failed++

		if params.format == formatPretty {
			presentation.PrintErrors(out, name, res.Errs)
			continue
		}

		for _, e := range res.Errs {
			start := e.GetRange().Start
			errs = append(errs, checkError{
				File:    name,
				Line:    start.Line + 1,
				Column:  start.Character + 1,
				Message: e.GetError(),
			})
		}
	}

	if params.format == formatJSON && failed > 0 {
		if err := presentation.PrintJSON(out, errs); err != nil {
			return err
		}
	}

	if params.metrics {
		presentation.PrintMetrics(out, m.All())
	}

	logging.Get().WithFields(logging.Fields{
		"files":  len(files),
		"failed": failed,
	}).Debug("check done")

	if failed > 0 {
		return exitError{code: 1}
	}

	return nil
}

// watchPaths runs onChange once, then again after every change under paths,
// until ctx is done.
func watchPaths(ctx context.Context, paths []string, onChange func()) error {
	w, err := newWatcher(paths)
	if err != nil {
		return err
	}
	defer w.Close()

	onChange()

	return w.Run(ctx, onChange)
}
