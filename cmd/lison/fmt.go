package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/lison/format"
)

type fmtParams struct {
	overwrite bool
	list      bool
	diff      bool
	fail      bool
}

func newFmtCommand() *cobra.Command {
	params := fmtParams{}

	cmd := &cobra.Command{
		Use:   "fmt [path [...]]",
		Short: "Format LISON files",
		Long: `Format LISON files.

The 'fmt' command prints each file reformatted. Without a path the document is
read from stdin.

With '-w' the files are overwritten instead. With '-d' a diff between the
original and the formatted source is printed. With '-l' only the names of the
files that would change are printed.

With '--fail' the exit code is 2 when a file would be reformatted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return formatStdin(&params, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			files, err := loadPaths(cmd.InOrStdin(), args, nil)
			if err != nil {
				return err
			}

			for _, name := range sortedNames(files) {
				if err := formatFile(&params, cmd.OutOrStdout(), name, files[name]); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&params.overwrite, "write", "w", false, "overwrite the original source file")
	cmd.Flags().BoolVarP(&params.list, "list", "l", false, "list all files who would change when formatted")
	cmd.Flags().BoolVarP(&params.diff, "diff", "d", false, "only display a diff of the changes")
	cmd.Flags().BoolVar(&params.fail, "fail", false, "non zero exit code on reformat")

	return cmd
}

func formatFile(params *fmtParams, out io.Writer, filename string, contents []byte) error {
	formatted, err := format.Source(filename, contents)
	if err != nil {
		return fmt.Errorf("failed to parse LISON source file: %w", err)
	}

	changed := !bytes.Equal(contents, formatted)

	switch {
	case params.list:
		if changed {
			fmt.Fprintln(out, filename)
		}

	case params.diff:
		if changed {
			fmt.Fprint(out, unifiedDiff(filename, contents, formatted))
		}

	case params.overwrite:
		if changed {
			info, err := os.Stat(filename)
			if err != nil {
				return err
			}

			if err := os.WriteFile(filename, formatted, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed writing formatted contents: %w", err)
			}
		}

	default:
		if _, err := out.Write(formatted); err != nil {
			return fmt.Errorf("failed writing formatted contents: %w", err)
		}
	}

	if params.fail && changed {
		fmt.Fprintf(out, "%s: unexpected diff\n", filename)
		return exitError{code: 2}
	}

	return nil
}

// formatStdin formats the document read from r like a file named stdinName.
// There is no file to overwrite.
func formatStdin(params *fmtParams, r io.Reader, w io.Writer) error {
	if params.overwrite {
		return errors.New("'-w' requires a path: cannot overwrite stdin")
	}

	contents, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	return formatFile(params, w, stdinName, contents)
}
