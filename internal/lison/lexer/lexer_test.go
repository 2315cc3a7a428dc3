package lexer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pacer/lison/internal/lison/testutil"
)

// describe renders tokens as "Kind:value" for compact comparisons.
func describe(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.ID {
		case Eof, LeftParen, RightParen:
			out = append(out, tok.ID.String())
		case Integer:
			out = append(out, fmt.Sprintf("%s:%d", tok.ID, tok.Integer))
		case Float:
			out = append(out, fmt.Sprintf("%s:%g", tok.ID, tok.Float))
		default:
			out = append(out, fmt.Sprintf("%s:%s", tok.ID, tok.Value))
		}
	}

	return out
}

func TestTokenize_EmptyInput(t *testing.T) {
	stream, errs := Tokenize([]byte(""))

	testutil.AssertNoErrors(t, errs)

	if !stream.IsEmpty() {
		t.Errorf("Expected empty stream, got %s", stream)
	}

	if stream.Err != nil {
		t.Errorf("Expected no stream error, got %v", stream.Err)
	}
}

func TestTokenize_Tokens(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "person",
			source: "(:name 'John' :height 165.4 :cars 1)",
			want: []string{
				"LeftParen", "Tag:name", "String:John", "Tag:height", "Float:165.4",
				"Tag:cars", "Integer:1", "RightParen", "Eof",
			},
		},
		{
			name:   "only whitespace",
			source: " \t\n ",
			want:   []string{"Eof"},
		},
		{
			name:   "empty object",
			source: "()",
			want:   []string{"LeftParen", "RightParen", "Eof"},
		},
		{
			name:   "string with spaces and digits",
			source: "'Andrew Sharp 27'",
			want:   []string{"String:Andrew Sharp 27", "Eof"},
		},
		{
			name:   "empty string",
			source: "''",
			want:   []string{"String:", "Eof"},
		},
		{
			name:   "float wins over integer",
			source: "1.5 15",
			want:   []string{"Float:1.5", "Integer:15", "Eof"},
		},
		{
			name:   "tag with punctuation",
			source: ":e-mail",
			want:   []string{"Tag:e-mail", "Eof"},
		},
		{
			name:   "inline comment",
			source: "(:age (*x*) 22)",
			want:   []string{"LeftParen", "Tag:age", "Integer:22", "RightParen", "Eof"},
		},
		{
			name:   "self closing comment",
			source: "(*) 1",
			want:   []string{"Integer:1", "Eof"},
		},
		{
			name:   "stray comment end",
			source: "1 *) 2",
			want:   []string{"Integer:1", "Integer:2", "Eof"},
		},
		{
			name:   "comment swallows invalid bytes",
			source: "(* _#{} *) 3",
			want:   []string{"Integer:3", "Eof"},
		},
		{
			name:   "nested comment start",
			source: "(* (* *) 4",
			want:   []string{"Integer:4", "Eof"},
		},
		{
			name:   "unterminated comment",
			source: "5 (* never closed",
			want:   []string{"Integer:5", "Eof"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, errs := Tokenize([]byte(tt.source))

			testutil.AssertNoErrors(t, errs)

			if diff := cmp.Diff(tt.want, describe(stream.Tokens)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.source, diff)
			}
		})
	}
}

func TestTokenize_CommentsAreEquivalentToNothing(t *testing.T) {
	withComment, errs := Tokenize([]byte("(:age (*x*) 22)"))
	testutil.AssertNoErrors(t, errs)

	without, errs := Tokenize([]byte("(:age 22)"))
	testutil.AssertNoErrors(t, errs)

	if diff := cmp.Diff(describe(without.Tokens), describe(withComment.Tokens)); diff != "" {
		t.Errorf("Comment changed the token stream (-want +got):\n%s", diff)
	}
}

func TestTokenize_CommentsAreRecorded(t *testing.T) {
	source := "(* head *)\n(:a (*) 1)\n(* tail"
	stream, errs := Tokenize([]byte(source))
	testutil.AssertNoErrors(t, errs)

	want := []Comment{
		{
			Range: Range{Start: Position{0, 0}, End: Position{0, 10}},
			Value: []byte("(* head *)"),
		},
		{
			Range: Range{Start: Position{1, 4}, End: Position{1, 7}},
			Value: []byte("(*)"),
		},
		{
			Range: Range{Start: Position{2, 0}, End: Position{2, 7}},
			Value: []byte("(* tail"),
		},
	}

	if diff := cmp.Diff(want, stream.Comments); diff != "" {
		t.Errorf("Comments mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      []string
		wantErr   error
		wantRange Range
	}{
		{
			name:      "bare identifier after object",
			source:    "(:a 1) hello",
			want:      []string{"LeftParen", "Tag:a", "Integer:1", "RightParen", "Eof"},
			wantErr:   ErrUnrecognized,
			wantRange: Range{Start: Position{0, 7}, End: Position{0, 8}},
		},
		{
			name:      "underscore in string",
			source:    "'a_b'",
			want:      []string{"Eof"},
			wantErr:   ErrUnrecognized,
			wantRange: Range{Start: Position{0, 0}, End: Position{0, 1}},
		},
		{
			name:      "trailing dot",
			source:    "1.",
			want:      []string{"Integer:1", "Eof"},
			wantErr:   ErrUnrecognized,
			wantRange: Range{Start: Position{0, 1}, End: Position{0, 2}},
		},
		{
			name:      "carriage return",
			source:    "1\r\n2",
			want:      []string{"Integer:1", "Eof"},
			wantErr:   ErrUnrecognized,
			wantRange: Range{Start: Position{0, 1}, End: Position{0, 2}},
		},
		{
			name:      "integer overflow",
			source:    "(:n 99999999999)",
			want:      []string{"LeftParen", "Tag:n", "Eof"},
			wantErr:   ErrIntegerOverflow,
			wantRange: Range{Start: Position{0, 4}, End: Position{0, 15}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, errs := Tokenize([]byte(tt.source))

			testutil.AssertErrorCount(t, errs, 1)

			if diff := cmp.Diff(tt.want, describe(stream.Tokens)); diff != "" {
				t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
			}

			if stream.Err == nil {
				t.Fatal("Expected stream error to be set")
			}

			if !errors.Is(stream.Err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, stream.Err.Err)
			}

			if stream.Err.Range != tt.wantRange {
				t.Errorf("Expected range %s, got %s", tt.wantRange, stream.Err.Range)
			}

			if errs[0].GetRange() != tt.wantRange {
				t.Errorf("Expected error range %s, got %s", tt.wantRange, errs[0].GetRange())
			}
		})
	}
}

func TestTokenize_Ranges(t *testing.T) {
	source := "(\n  :a 'x y')"
	stream, errs := Tokenize([]byte(source))
	testutil.AssertNoErrors(t, errs)

	want := []Range{
		{Start: Position{0, 0}, End: Position{0, 1}},
		{Start: Position{1, 2}, End: Position{1, 4}},
		{Start: Position{1, 5}, End: Position{1, 10}},
		{Start: Position{1, 10}, End: Position{1, 11}},
		{Start: Position{1, 11}, End: Position{1, 11}},
	}

	got := make([]Range, 0, len(stream.Tokens))
	for _, tok := range stream.Tokens {
		got = append(got, tok.Range)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ranges mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamToken_Source(t *testing.T) {
	stream, errs := Tokenize([]byte("(:name   'John'\n (* c *) :height 165.4)"))
	testutil.AssertNoErrors(t, errs)

	want := "( :name 'John' :height 165.4 )"
	if got := stream.Source(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestStreamToken_PanicsWithoutEof(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for a stream without 'EOF'")
		}
	}()

	stream := StreamToken{Tokens: []Token{{ID: Integer, Value: []byte("1")}}}
	_ = stream.Source()
}

func TestPatterns_Order(t *testing.T) {
	want := []Kind{CommentStart, CommentEnd, LeftParen, RightParen, Whitespace, Float, Integer, String, Tag}

	got := make([]Kind, 0, len(compiledPatterns.tokenPatterns))
	for _, pattern := range compiledPatterns.tokenPatterns {
		got = append(got, pattern.ID)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pattern order mismatch (-want +got):\n%s", diff)
	}

	if Patterns()[Float] != `\d+.\d+` {
		t.Errorf("Unexpected float pattern %q", Patterns()[Float])
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: Position{1, 2}, End: Position{1, 5}}

	tests := []struct {
		pos  Position
		want bool
	}{
		{pos: Position{1, 2}, want: true},
		{pos: Position{1, 4}, want: true},
		{pos: Position{1, 5}, want: false},
		{pos: Position{1, 1}, want: false},
		{pos: Position{0, 3}, want: false},
		{pos: Position{2, 3}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pos.String(), func(t *testing.T) {
			if got := r.Contains(tt.pos); got != tt.want {
				t.Errorf("Expected Contains(%s) = %v, got %v", tt.pos, tt.want, got)
			}
		})
	}
}

func TestPositionIndexConversion(t *testing.T) {
	buffer := []byte("ab\ncd\n\nef")

	for index := 0; index <= len(buffer); index++ {
		pos := ConvertSingleIndexToTextEditorPosition(buffer, index)

		if got := ConvertTextEditorPositionToIndex(buffer, pos); got != index {
			t.Errorf("Index %d -> %s -> %d", index, pos, got)
		}
	}

	if got := ConvertTextEditorPositionToIndex(buffer, Position{0, 40}); got != 2 {
		t.Errorf("Expected clamping to line end (2), got %d", got)
	}
}
