package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacer/lison/internal/regex"
)

type regexParams struct {
	accept bool
	tree   bool
}

func newRegexCommand() *cobra.Command {
	params := regexParams{}

	cmd := &cobra.Command{
		Use:   "regex <pattern> [text [...]]",
		Short: "Compile a pattern and match texts against it",
		Long: `Compile a pattern and match each text against it.

The syntax has literal characters, '|' for alternatives, '*' and '+' for
repetition, parentheses for grouping and the classes \c (letters and
punctuation), \d (digits), \w (space, tab and newline) and \q (quotes). An
operator preceded by '\' is matched literally. Whitespace in the pattern is
ignored.

By default the longest prefix matched is printed. With --accept, 'true' or
'false' tells whether the whole text matched. With --tree the compiled pattern
is printed as a tree.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			re, err := regex.Compile(args[0])
			if err != nil {
				return err
			}

			if params.tree {
				fmt.Fprint(out, re.Tree())
			}

			for _, text := range args[1:] {
				if params.accept {
					fmt.Fprintln(out, re.AcceptString(text))
					continue
				}

				res := re.MatchAt([]byte(text), 0)
				if !res.Ok {
					fmt.Fprintln(out, "no match")
					continue
				}

				fmt.Fprintf(out, "match %q, rest %q\n", text[:res.Rest], text[res.Rest:])
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&params.accept, "accept", false, "require the whole text to match")
	cmd.Flags().BoolVar(&params.tree, "tree", false, "print the compiled pattern tree")

	return cmd
}
