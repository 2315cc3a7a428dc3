// Package repl implements an interactive prompt for LISON documents and
// regex patterns.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/peterh/liner"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/logging"
	"github.com/pacer/lison/internal/presentation"
	"github.com/pacer/lison/internal/regex"
)

// ErrExit is returned by OneShot for the exit command.
var ErrExit = errors.New("exit")

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 3

type command struct {
	name string
	args string
	help string
}

var builtin = []command{
	{name: "regex", args: "<pattern> [text]", help: "match text against pattern, or print the pattern tree"},
	{name: "accept", args: "<pattern> <text>", help: "report whether pattern matches all of text"},
	{name: "tokens", args: "<source>", help: "print the tokens of a LISON source"},
	{name: "help", help: "print this message"},
	{name: "exit", help: "leave the prompt"},
}

// REPL reads lines from a terminal. A line starting with '\' is a command,
// anything else is compiled as a LISON document and printed back.
type REPL struct {
	output      io.Writer
	regexes     *regex.Cache
	historyPath string
	prompt      string
	banner      string
}

func New(output io.Writer, historyPath string, banner string) (*REPL, error) {
	cache, err := regex.NewCache(regex.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &REPL{
		output:      output,
		regexes:     cache,
		historyPath: historyPath,
		prompt:      "> ",
		banner:      banner,
	}, nil
}

// Loop prompts until the input ends, the user exits or ctx is done.
func (r *REPL) Loop(ctx context.Context) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(r.complete)
	r.loadHistory(line)

	if r.banner != "" {
		fmt.Fprintln(r.output, r.banner)
	}

	for ctx.Err() == nil {
		input, err := line.Prompt(r.prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Fprintln(r.output, "Exiting")
			break
		}

		if err != nil {
			fmt.Fprintln(r.output, "error (fatal):", err)
			break
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		if err := r.OneShot(ctx, input); err != nil {
			if errors.Is(err, ErrExit) {
				break
			}

			fmt.Fprintln(r.output, "error:", err)
		}
	}

	r.saveHistory(line)
}

// OneShot evaluates a single line.
func (r *REPL) OneShot(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, `\`) {
		return r.cmdCompile(line)
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "regex":
		return r.cmdRegex(rest)
	case "accept":
		return r.cmdAccept(rest)
	case "tokens":
		return r.cmdTokens(rest)
	case "help":
		r.cmdHelp()
		return nil
	case "exit":
		return ErrExit
	}

	return unknownCommand(name)
}

func (r *REPL) cmdCompile(source string) error {
	root, err := lison.CompileString(source)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, root)

	return nil
}

// splitPattern separates the pattern from the text following it. A pattern
// holding spaces is written between backquotes.
func splitPattern(args string) (pattern, text string, hasText bool) {
	if strings.HasPrefix(args, "`") {
		if end := strings.IndexByte(args[1:], '`'); end >= 0 {
			rest := args[end+2:]
			return args[1 : end+1], strings.TrimPrefix(rest, " "), rest != ""
		}
	}

	return strings.Cut(args, " ")
}

func (r *REPL) cmdRegex(args string) error {
	pattern, text, ok := splitPattern(args)
	if pattern == "" {
		return errors.New(`usage: \regex <pattern> [text]`)
	}

	re, err := r.regexes.Compile(pattern)
	if err != nil {
		return err
	}

	if !ok {
		fmt.Fprint(r.output, re.Tree())
		return nil
	}

	res := re.MatchAt([]byte(text), 0)
	if !res.Ok {
		fmt.Fprintln(r.output, "no match")
		return nil
	}

	fmt.Fprintf(r.output, "match %q, rest %q\n", text[:res.Rest], text[res.Rest:])

	return nil
}

func (r *REPL) cmdAccept(args string) error {
	pattern, text, ok := splitPattern(args)
	if pattern == "" || !ok {
		return errors.New(`usage: \accept <pattern> <text>`)
	}

	re, err := r.regexes.Compile(pattern)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, re.AcceptString(text))

	return nil
}

func (r *REPL) cmdTokens(source string) error {
	stream, errs := lexer.Tokenize([]byte(source))
	presentation.PrintTokens(r.output, stream)

	if len(errs) > 0 {
		return lison.Errors(errs)
	}

	return nil
}

func (r *REPL) cmdHelp() {
	fmt.Fprintln(r.output, "Enter a LISON document to compile it, or one of:")
	fmt.Fprintln(r.output)

	for _, c := range builtin {
		usage := `\` + c.name
		if c.args != "" {
			usage += " " + c.args
		}

		fmt.Fprintf(r.output, "  %-28s %s\n", usage, c.help)
	}

	fmt.Fprintln(r.output)
	fmt.Fprintln(r.output, "A pattern holding spaces goes between backquotes: \\regex `(ab | ba)*` abbaxy")
}

func (r *REPL) complete(line string) []string {
	if !strings.HasPrefix(line, `\`) {
		return nil
	}

	var out []string
	for _, c := range builtin {
		if strings.HasPrefix(`\`+c.name, line) {
			out = append(out, `\`+c.name)
		}
	}

	return out
}

func unknownCommand(name string) error {
	var closest []string
	best := maxSuggestionDistance + 1

	for _, c := range builtin {
		d := levenshtein.ComputeDistance(name, c.name)
		switch {
		case d < best:
			best = d
			closest = []string{c.name}
		case d == best:
			closest = append(closest, c.name)
		}
	}

	slices.Sort(closest)

	switch len(closest) {
	case 0:
		return fmt.Errorf(`unknown command \%s, type \help for a list`, name)
	case 1:
		return fmt.Errorf(`unknown command \%s, did you mean \%s?`, name, closest[0])
	default:
		return fmt.Errorf(`unknown command \%s, did you mean one of %v?`, name, closest)
	}
}

func (r *REPL) loadHistory(prompt *liner.State) {
	f, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := prompt.ReadHistory(f); err != nil {
		logging.Get().Debugf("could not read history %s: %v", r.historyPath, err)
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}

	f, err := os.Create(r.historyPath)
	if err != nil {
		logging.Get().Warnf("could not save history: %v", err)
		return
	}
	defer f.Close()

	if _, err := prompt.WriteHistory(f); err != nil {
		logging.Get().Warnf("could not save history: %v", err)
	}
}
