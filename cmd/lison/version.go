package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of lison",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			generateCmdOutput(cmd.OutOrStdout())
		},
	}
}

func generateCmdOutput(out io.Writer) {
	fmt.Fprintln(out, "Version: "+version)
	fmt.Fprintln(out, "Go Version: "+runtime.Version())
	fmt.Fprintln(out, "Platform: "+runtime.GOOS+"/"+runtime.GOARCH)
}
