// Package presentation renders compile results for terminals and scripts.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/lexer"
)

const maxValueLen = 40

// Token is the JSON form of a lexer token. Lines and columns are 1-based.
type Token struct {
	Kind  string `json:"kind"`
	Start string `json:"start"`
	End   string `json:"end"`
	Value string `json:"value"`
}

// PrintJSON prints indented json output.
func PrintJSON(w io.Writer, x any) error {
	buf, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(buf))

	return err
}

func Tokens(stream *lexer.StreamToken) []Token {
	out := make([]Token, 0, len(stream.Tokens))
	for _, tok := range stream.Tokens {
		out = append(out, Token{
			Kind:  tok.ID.String(),
			Start: position(tok.Range.Start),
			End:   position(tok.Range.End),
			Value: string(tok.Value),
		})
	}

	return out
}

// PrintTokens writes the token stream as a table.
func PrintTokens(w io.Writer, stream *lexer.StreamToken) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Start", "End", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, tok := range Tokens(stream) {
		table.Append([]string{tok.Kind, tok.Start, tok.End, truncate(strconv.Quote(tok.Value))})
	}

	table.Render()
}

// PrintMetrics writes metric values sorted by name. Histograms are flattened
// into one row per statistic.
func PrintMetrics(w io.Writer, all map[string]any) {
	rows := [][]string{}
	for name, value := range all {
		stats, ok := value.(map[string]any)
		if !ok {
			rows = append(rows, []string{name, fmt.Sprint(value)})
			continue
		}

		for stat, v := range stats {
			rows = append(rows, []string{name + "_" + stat, fmt.Sprint(v)})
		}
	}

	if len(rows) == 0 {
		return
	}

	slices.SortFunc(rows, func(a, b []string) int {
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

// PrintErrors writes one "file:line:col: message" line per error.
func PrintErrors(w io.Writer, filename string, errs lison.Errors) {
	for _, err := range errs {
		fmt.Fprintf(w, "%s:%s\n", filename, lison.FormatError(err))
	}
}

func position(p lexer.Position) string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Character+1)
}

func truncate(s string) string {
	if len(s) <= maxValueLen {
		return s
	}

	return s[:maxValueLen] + "..."
}
