// Command lison checks, formats and inspects LISON documents and regex
// patterns.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time.
var version = "dev"

// exitError ends the process with code without printing anything more.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	err := newRootCommand().Execute()
	if err == nil {
		return
	}

	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}

	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
