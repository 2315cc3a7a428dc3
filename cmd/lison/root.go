package main

import (
	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/logging"
)

type rootParams struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	params := rootParams{}

	root := &cobra.Command{
		Use:   "lison",
		Short: "LISON document and regex toolkit",
		Long: `Check, format and inspect LISON documents.

LISON is a lisp-like data notation:

	(:name 'John' :height 165.4 :cars 1)

Flags can also be set with environment variables: LISON_<COMMAND>_<FLAG> or
LISON_<FLAG>, dashes replaced by underscores.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnvironment(cmd); err != nil {
				return err
			}

			logger := logging.Get()
			logger.SetOutput(cmd.ErrOrStderr())

			if err := logger.SetLevel(params.logLevel); err != nil {
				return err
			}

			return logger.SetFormat(params.logFormat)
		},
	}

	root.PersistentFlags().StringVar(&params.logLevel, "log-level", "info", "set log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&params.logFormat, "log-format", "text", "set log format (text, json)")

	root.AddCommand(
		newCheckCommand(),
		newFmtCommand(),
		newTokensCommand(),
		newRegexCommand(),
		newReplCommand(),
		newVersionCommand(),
	)

	return root
}
