package main

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// unifiedDiff renders a line diff between original and formatted in the
// unified style. Runs of unchanged lines are cut down to diffContext lines
// around changes.
func unifiedDiff(name string, original, formatted []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(original), string(formatted))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line != "" {
				all = append(all, diffLine{op: d.Type, text: strings.TrimSuffix(line, "\n")})
			}
		}
	}

	keep := make([]bool, len(all))
	for i, line := range all {
		if line.op == diffmatchpatch.DiffEqual {
			continue
		}

		for j := max(0, i-diffContext); j <= min(len(all)-1, i+diffContext); j++ {
			keep[j] = true
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s (formatted)\n", name, name)

	skipped := false
	for i, line := range all {
		if !keep[i] {
			skipped = true
			continue
		}

		if skipped {
			sb.WriteString("@@\n")
			skipped = false
		}

		switch line.op {
		case diffmatchpatch.DiffDelete:
			sb.WriteByte('-')
		case diffmatchpatch.DiffInsert:
			sb.WriteByte('+')
		default:
			sb.WriteByte(' ')
		}

		sb.WriteString(line.text)
		sb.WriteByte('\n')
	}

	return sb.String()
}
