package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/regex"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	r, err := New(&buf, "", "")
	if err != nil {
		t.Fatal(err)
	}

	return r, &buf
}

func TestOneShot(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: "(:name   'John' :age 22)", want: "(:name 'John' :age 22)\n"},
		{line: "   ", want: ""},
		{line: `\regex ab+ abbbc`, want: "match \"abbb\", rest \"c\"\n"},
		{line: `\regex a*b xyz`, want: "no match\n"},
		{line: `\regex a|b`, want: "Union {\n  Char {'a'}\n  Char {'b'}\n}\n"},
		{line: `\accept \d+ 123`, want: "true\n"},
		{line: `\accept \d+ 12a`, want: "false\n"},
		{line: "\\regex `(ab | ba)*` abbaxy", want: "match \"abba\", rest \"xy\"\n"},
		{line: "\\accept `(ab | ba)*` abba", want: "true\n"},
		{line: "\\accept `(ab | ba)*` asd", want: "false\n"},
		{line: "\\regex `a | b`", want: "Union {\n  Char {'a'}\n  Char {'b'}\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, buf := newTestREPL(t)

			if err := r.OneShot(context.Background(), tt.line); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOneShot_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{line: `\regx a b`, want: `did you mean \regex?`},
		{line: `\zzzzzzzzz`, want: `type \help`},
		{line: `\regex`, want: "usage"},
		{line: `\accept a`, want: "usage"},
		{line: "\\accept `a b`", want: "usage"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, _ := newTestREPL(t)

			err := r.OneShot(context.Background(), tt.line)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOneShot_CompileError(t *testing.T) {
	r, buf := newTestREPL(t)

	err := r.OneShot(context.Background(), "(:a")

	var errs lison.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("Expected lison.Errors, got %T", err)
	}

	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestOneShot_BadPattern(t *testing.T) {
	r, _ := newTestREPL(t)

	err := r.OneShot(context.Background(), `\regex (a x`)

	var compileErr *regex.CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Expected *regex.CompileError, got %v", err)
	}

	if r.regexes.Len() != 0 {
		t.Errorf("Expected failed patterns not to be cached, got %d entries", r.regexes.Len())
	}
}

func TestOneShot_PatternsAreCached(t *testing.T) {
	r, _ := newTestREPL(t)
	ctx := context.Background()

	for _, line := range []string{`\regex a+ aa`, `\accept a+ aa`, `\regex b x`} {
		if err := r.OneShot(ctx, line); err != nil {
			t.Fatal(err)
		}
	}

	if got := r.regexes.Len(); got != 2 {
		t.Errorf("Expected 2 cached patterns, got %d", got)
	}
}

func TestOneShot_Tokens(t *testing.T) {
	r, buf := newTestREPL(t)

	if err := r.OneShot(context.Background(), `\tokens (1)`); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "Integer") {
		t.Errorf("Expected a token table, got:\n%s", buf.String())
	}
}

func TestOneShot_ExitAndHelp(t *testing.T) {
	r, buf := newTestREPL(t)
	ctx := context.Background()

	if err := r.OneShot(ctx, `\help`); err != nil {
		t.Fatal(err)
	}

	for _, c := range builtin {
		if !strings.Contains(buf.String(), `\`+c.name) {
			t.Errorf("Expected %q in help:\n%s", c.name, buf.String())
		}
	}

	if !strings.Contains(buf.String(), "backquotes") {
		t.Errorf("Expected help on quoting patterns:\n%s", buf.String())
	}

	if err := r.OneShot(ctx, `\exit`); !errors.Is(err, ErrExit) {
		t.Errorf("Expected ErrExit, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	if err := r.OneShot(canceled, "(1)"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	r, _ := newTestREPL(t)

	got := r.complete(`\e`)
	if len(got) != 1 || got[0] != `\exit` {
		t.Errorf(`Expected [\exit], got %v`, got)
	}

	if got := r.complete("(1"); got != nil {
		t.Errorf("Expected no completion, got %v", got)
	}
}
