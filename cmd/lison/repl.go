package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/repl"
)

func newReplCommand() *cobra.Command {
	var historyPath string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive prompt",
		Long: `Start an interactive prompt.

Each line is compiled as a LISON document and printed back. Lines starting
with '\' are commands, '\help' lists them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := repl.New(cmd.OutOrStdout(), historyPath, "lison "+version+" (type \\help for commands)")
			if err != nil {
				return err
			}

			r.Loop(cmd.Context())

			return nil
		},
	}

	cmd.Flags().StringVar(&historyPath, "history", defaultHistoryPath(), "set path of the history file")

	return cmd
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lison_history"
	}

	return filepath.Join(home, ".lison_history")
}
