package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/presentation"
)

func newTokensCommand() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <path|->",
		Short: "Print the tokens of a LISON file",
		Long: `Print the tokens of a LISON file, '-' reading stdin.

Positions are 1-based line:column pairs, the end being exclusive. On a lexical
error the tokens read so far are printed, followed by the error.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if outputFormat != formatPretty && outputFormat != formatJSON {
				return fmt.Errorf("invalid format %q, expected %q or %q", outputFormat, formatPretty, formatJSON)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var content []byte
			var err error
			if name == "-" {
				name = stdinName
				content, err = io.ReadAll(cmd.InOrStdin())
			} else {
				content, err = os.ReadFile(name)
			}
			if err != nil {
				return err
			}

			stream, errs := lexer.Tokenize(content)

			if outputFormat == formatJSON {
				if err := presentation.PrintJSON(cmd.OutOrStdout(), presentation.Tokens(stream)); err != nil {
					return err
				}
			} else {
				presentation.PrintTokens(cmd.OutOrStdout(), stream)
			}

			if len(errs) > 0 {
				presentation.PrintErrors(cmd.ErrOrStderr(), name, lison.Errors(errs))
				return exitError{code: 1}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", formatPretty, "set output format (pretty, json)")

	return cmd
}
