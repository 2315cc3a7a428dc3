package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/lison/testutil"
)

// tokenizeAndParse is a helper that tokenizes source and parses it.
// Returns both lexer errors and parser errors combined.
func tokenizeAndParse(source string) (Node, []lexer.Error) {
	stream, lexerErrs := lexer.Tokenize([]byte(source))
	root, parseErrs := Parse(stream)
	lexerErrs = append(lexerErrs, parseErrs...)
	return root, lexerErrs
}

func mustParse(t *testing.T, source string) Node {
	t.Helper()

	root, errs := tokenizeAndParse(source)
	testutil.AssertNoErrors(t, errs)

	if root == nil {
		t.Fatalf("Expected a tree for %q, got <nil>", source)
	}

	return root
}

func TestParse_Person(t *testing.T) {
	root := mustParse(t, "(:name 'John' :height 165.4 :cars 1)")

	want := NewObject(
		NewTag("name"), NewString("John"),
		NewTag("height"), NewFloat(165.4),
		NewTag("cars"), NewInteger(1),
	)

	if !Equal(want, root) {
		t.Errorf("Expected %s, got %s", want, root)
	}

	obj := root.(*ObjectNode)
	wantKinds := []Kind{KindTag, KindString, KindTag, KindFloat, KindTag, KindInteger}
	for i, child := range obj.Children {
		if child.Kind() != wantKinds[i] {
			t.Errorf("Child %d: expected %s, got %s", i, wantKinds[i], child.Kind())
		}
	}
}

func TestParse_Leaves(t *testing.T) {
	tests := []struct {
		source string
		want   Node
	}{
		{source: "'hello world'", want: NewString("hello world")},
		{source: "42", want: NewInteger(42)},
		{source: "4.20", want: NewFloat(4.2)},
		{source: ":date", want: NewTag("date")},
		{source: "()", want: NewObject()},
		{source: " ( ( ) ) ", want: NewObject(NewObject())},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			root := mustParse(t, tt.source)

			if !Equal(tt.want, root) {
				t.Errorf("Expected %s, got %s", tt.want, root)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "unclosed nested object", source: "(:name 'John' (:nested )", wantErr: ErrMissingRightParen},
		{name: "unclosed object", source: "(1 2", wantErr: ErrMissingRightParen},
		{name: "empty input", source: "", wantErr: ErrExpectedObject},
		{name: "comment only", source: "(* nothing *)", wantErr: ErrExpectedObject},
		{name: "closing paren first", source: ")", wantErr: ErrExpectedObject},
		{name: "two roots", source: "() ()", wantErr: ErrUnexpectedToken},
		{name: "extra closing paren", source: "(1))", wantErr: ErrUnexpectedToken},
		{name: "too deep", source: strings.Repeat("(", MaxDepth+1) + strings.Repeat(")", MaxDepth+1), wantErr: ErrMaxRecursionDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, errs := tokenizeAndParse(tt.source)

			if root != nil {
				t.Errorf("Expected <nil> tree, got %s", root)
			}

			testutil.AssertErrorCount(t, errs, 1)

			var parseErr *ParseError
			if !errors.As(errs[0].(error), &parseErr) {
				t.Fatalf("Expected *ParseError, got %T", errs[0])
			}

			if !errors.Is(parseErr, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, parseErr.Err)
			}
		})
	}
}

func TestParse_MissingParenPointsAtOpening(t *testing.T) {
	_, errs := tokenizeAndParse("(:a\n  (:b 1)")

	testutil.AssertErrorCount(t, errs, 1)
	testutil.AssertErrorContains(t, errs, "opened at 1:1")

	want := lexer.Range{Start: lexer.Position{Line: 1, Character: 8}, End: lexer.Position{Line: 1, Character: 8}}
	if errs[0].GetRange() != want {
		t.Errorf("Expected range %s, got %s", want, errs[0].GetRange())
	}
}

func TestParse_MaxDepthAccepted(t *testing.T) {
	source := strings.Repeat("(", MaxDepth) + strings.Repeat(")", MaxDepth)

	mustParse(t, source)
}

func TestParse_Ranges(t *testing.T) {
	root := mustParse(t, "(:a\n (1 2))")

	want := lexer.Range{Start: lexer.Position{Line: 0, Character: 0}, End: lexer.Position{Line: 1, Character: 7}}
	if root.Range() != want {
		t.Errorf("Expected root range %s, got %s", want, root.Range())
	}

	inner := root.(*ObjectNode).Children[1]
	want = lexer.Range{Start: lexer.Position{Line: 1, Character: 1}, End: lexer.Position{Line: 1, Character: 6}}
	if inner.Range() != want {
		t.Errorf("Expected inner range %s, got %s", want, inner.Range())
	}
}

func TestParse_CommentsAreTransparent(t *testing.T) {
	withComment := mustParse(t, "(:age (*x*) 22)")
	without := mustParse(t, "(:age 22)")

	if !Equal(without, withComment) {
		t.Errorf("Expected %s, got %s", without, withComment)
	}
}

func TestParse_Document(t *testing.T) {
	root := mustParse(t, testutil.Person)

	persons, ok := root.(*ObjectNode).Lookup("persons")
	if !ok {
		t.Fatal("Expected a :persons entry")
	}

	list := persons.(*ObjectNode)
	if len(list.Children) != 2 {
		t.Fatalf("Expected 2 persons, got %d", len(list.Children))
	}

	second := list.Children[1].(*ObjectNode)
	name, _ := second.Lookup("name")
	if !Equal(NewString("Andrew Sharp"), name) {
		t.Errorf("Expected 'Andrew Sharp', got %s", name)
	}

	height, _ := list.Children[0].(*ObjectNode).Lookup("height")
	if !Equal(NewFloat(165.4), height) {
		t.Errorf("Expected 165.4, got %s", height)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{node: NewString("Hello World!"), want: "'Hello World!'"},
		{node: NewTag("date"), want: ":date"},
		{node: NewInteger(69), want: "69"},
		{node: NewFloat(4.2), want: "4.2"},
		{node: NewFloat(3), want: "3.0"},
		{node: NewFloat(0.1), want: "0.1"},
		{node: NewObject(), want: "()"},
		{
			node: NewObject(NewTag("a"), NewObject(NewInteger(1), NewString("x")), NewFloat(2.5)),
			want: "(:a (1 'x') 2.5)",
		},
		{node: NewObject(NewString("John"), NewTag("admin")), want: "('John' :admin )"},
		{node: NewObject(NewObject(NewTag("a"))), want: "((:a ))"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	sources := []string{
		"'John'",
		":name",
		"1",
		"165.4",
		"(:name 'John' :height 165.4 :cars 1)",
		"(() (()) ('a' :b 3 4.5))",
		"(:name 'John' :admin )",
		"(:a) )",
		"((:x ) :y )",
		testutil.Person,
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			first := mustParse(t, source)
			second := mustParse(t, first.String())

			if !Equal(first, second) {
				t.Errorf("Round trip mismatch:\n first: %s\nsecond: %s", first, second)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{name: "string versus tag", a: NewString("x"), b: NewTag("x"), want: false},
		{name: "integer versus float", a: NewInteger(1), b: NewFloat(1), want: false},
		{name: "different lengths", a: NewObject(NewInteger(1)), b: NewObject(), want: false},
		{name: "same nested", a: NewObject(NewObject(NewTag("a"))), b: NewObject(NewObject(NewTag("a"))), want: true},
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "one nil", a: NewObject(), b: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	root := mustParse(t, "(:a (1 (2)) 'b')")

	var kinds []string
	Walk(root, func(n Node) bool {
		kinds = append(kinds, n.Kind().String())
		return true
	})

	want := "Object Tag Object Integer Object Integer String"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	count := 0
	Walk(root, func(n Node) bool {
		count++
		return n == root
	})

	if count != 4 {
		t.Errorf("Expected 4 visited nodes when pruning below root, got %d", count)
	}
}
