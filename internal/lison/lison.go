// Package lison compiles LISON documents.
//
// LISON is a lisp-like data notation. A document is a single value:
//
//	(:name 'John' :height 165.4 :cars 1)
//
// Values are objects (parenthesized lists of values), strings in single
// quotes, 32-bit integers, 32-bit floats and tags (a colon followed by a
// name). Comments are written between '(*' and '*)' and may appear anywhere.
package lison

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/lison/parser"
	"github.com/pacer/lison/internal/logging"
	"github.com/pacer/lison/internal/metrics"
)

type Error = lexer.Error

// Errors is a list of lexer and parser errors. It implements error.
type Errors []Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no error(s)"
	}

	if len(e) == 1 {
		return FormatError(e[0])
	}

	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, FormatError(err))
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(s, "\n"))
}

// FormatError renders err as "line:column: message" with 1-based positions.
func FormatError(err Error) string {
	start := err.GetRange().Start

	return fmt.Sprintf("%d:%d: %s", start.Line+1, start.Character+1, err.GetError())
}

// Compile turns a LISON source into its value tree. Any lexical or syntax
// error makes the whole compilation fail: the returned tree is then <nil> and
// the error is an Errors value.
func Compile(source []byte) (parser.Node, error) {
	root, _, errs := ParseSingleFile(source)
	if len(errs) > 0 {
		return nil, errs
	}

	return root, nil
}

func CompileString(source string) (parser.Node, error) {
	return Compile([]byte(source))
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) parser.Node {
	root, err := CompileString(source)
	if err != nil {
		panic(err.Error())
	}

	return root
}

// ParseSingleFile is Compile for editors: it also hands back the token stream,
// which is available even when the tree is not.
// Syntax errors are not reported when the lexer already failed, since the
// stream is truncated at the first unknown character.
func ParseSingleFile(source []byte) (parser.Node, *lexer.StreamToken, Errors) {
	return ParseSingleFileWithMetrics(source, metrics.NoOp())
}

// ParseSingleFileWithMetrics is ParseSingleFile adding the tokenize and parse
// durations to the timers of m. Calls may share m concurrently.
func ParseSingleFileWithMetrics(source []byte, m metrics.Metrics) (parser.Node, *lexer.StreamToken, Errors) {
	start := time.Now()
	stream, tokenErrs := lexer.Tokenize(source)
	m.Timer(metrics.Tokenize).Add(time.Since(start).Nanoseconds())

	if stream == nil {
		panic("token stream should never be <nil>, even when empty. source = " + string(source))
	}

	if stream.Err != nil {
		logging.Get().Debugf("lexer stopped at %s: %v", stream.Err.Range.Start, stream.Err.Err)
		return nil, stream, Errors(tokenErrs)
	}

	start = time.Now()
	root, parseErrs := parser.Parse(stream)
	m.Timer(metrics.Parse).Add(time.Since(start).Nanoseconds())

	if len(parseErrs) > 0 {
		logging.Get().Debugf("parse failed with %d error(s)", len(parseErrs))
		return nil, stream, Errors(parseErrs)
	}

	return root, stream, nil
}

// FileResult is the outcome of parsing one workspace file.
type FileResult struct {
	FileName string
	Root     parser.Node
	Stream   *lexer.StreamToken
	Errs     Errors
}

// ParseFilesInWorkspace parses all files concurrently. The result holds one
// entry per file, whatever the outcome. A nil m records nothing.
func ParseFilesInWorkspace(workspaceFiles map[string][]byte, m metrics.Metrics) map[string]*FileResult {
	if m == nil {
		m = metrics.NoOp()
	}

	parsed := make(map[string]*FileResult, len(workspaceFiles))
	if len(workspaceFiles) == 0 {
		return parsed
	}

	numWorkers := min(runtime.GOMAXPROCS(0), len(workspaceFiles))

	results := make(chan *FileResult, len(workspaceFiles))
	sem := make(chan struct{}, numWorkers)

	var wg sync.WaitGroup
	for fileName, content := range workspaceFiles {
		wg.Add(1)
		go func(fileName string, content []byte) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			m.Counter(metrics.Files).Incr()
			root, stream, errs := ParseSingleFileWithMetrics(content, m)
			results <- &FileResult{FileName: fileName, Root: root, Stream: stream, Errs: errs}
		}(fileName, content)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		parsed[result.FileName] = result
	}

	if len(workspaceFiles) != len(parsed) {
		panic("number of parsed files do not match the amount present in the workspace")
	}

	return parsed
}
