package format

import (
	"strings"
	"testing"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/parser"
	"github.com/pacer/lison/internal/lison/testutil"
)

const formattedPerson = `(:persons (
           (* First Person *)
           (:name 'John' (* comments can be anywhere *)
            :age 22
            :height 165.4)
           (* Someone Else *)
           (:name 'Andrew Sharp'
            :age 27
            :height 195
            :workplaces ((:name 'University of Pannonia')))))
`

func TestSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "flat object",
			source: "(:name   'John'\n\n  :age 22)",
			want:   "(:name 'John' :age 22)\n",
		},
		{
			name:   "leaf",
			source: "  42  ",
			want:   "42\n",
		},
		{
			name:   "normalized numbers",
			source: "(007 1.50)",
			want:   "(7 1.5)\n",
		},
		{
			name:   "nested objects",
			source: "(:a (1 2) :b ())",
			want:   "(:a (1 2)\n :b ())\n",
		},
		{
			name:   "consecutive tags",
			source: "(:flag :name 'x' (1))",
			want:   "(:flag\n :name 'x'\n (1))\n",
		},
		{
			name:   "header comment",
			source: "(* header *)\n(1)",
			want:   "(* header *)\n(1)\n",
		},
		{
			name:   "trailing comment after root",
			source: "(1 2)   (* done *)",
			want:   "(1 2) (* done *)\n",
		},
		{
			name:   "comment after root on its own line",
			source: "(1 2)\n\n(* done *)",
			want:   "(1 2)\n(* done *)\n",
		},
		{
			name:   "comment before closing paren",
			source: "(:a 1\n   (* end *))",
			want:   "(:a 1\n (* end *))\n",
		},
		{
			name:   "inline comment breaks the line",
			source: "(:age (*x*) 22)",
			want:   "(:age (*x*)\n 22)\n",
		},
		{
			name:   "unterminated comment",
			source: "(1) (* tail\n\n",
			want:   "(1) (* tail\n",
		},
		{
			name:   "tag before closing paren",
			source: "(:name 'John' :admin )",
			want:   "(:name 'John' :admin )\n",
		},
		{
			name:   "tag holding a paren",
			source: "(:a) )",
			want:   "(:a) )\n",
		},
		{
			name:   "tag ends a split object",
			source: "(:a (1) :end )",
			want:   "(:a (1)\n :end )\n",
		},
		{
			name:   "tag ends a nested object",
			source: "((:x ) (:y (2) :z ))",
			want:   "((:x )\n (:y (2)\n  :z ))\n",
		},
		{
			name:   "document",
			source: testutil.Person,
			want:   formattedPerson,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Source("test.lison", []byte(tt.source))
			if err != nil {
				t.Fatalf("Source returned error: %v", err)
			}

			if string(got) != tt.want {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.want, got)
			}

			again, err := Source("test.lison", got)
			if err != nil {
				t.Fatalf("Formatted output does not compile: %v", err)
			}

			if string(again) != string(got) {
				t.Errorf("Formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", got, again)
			}
		})
	}
}

func TestSource_PreservesValue(t *testing.T) {
	sources := []string{
		testutil.Person,
		"(() (()) ('a' :b 3 4.5))",
		"(:a (* one *) (* two *) 1 :b\n(* three *)\n 2)",
	}

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			got, err := Source("test.lison", []byte(source))
			if err != nil {
				t.Fatalf("Source returned error: %v", err)
			}

			before := lison.MustCompile(source)
			after := lison.MustCompile(string(got))

			if !parser.Equal(before, after) {
				t.Errorf("Formatting changed the value:\nbefore: %s\nafter: %s", before, after)
			}
		})
	}
}

func TestSource_LongObjectIsSplit(t *testing.T) {
	long := strings.Repeat("x", 70)
	source := "(:a '" + long + "' :b 1)"

	got, err := Source("test.lison", []byte(source))
	if err != nil {
		t.Fatalf("Source returned error: %v", err)
	}

	want := "(:a '" + long + "'\n :b 1)\n"
	if string(got) != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestSource_Error(t *testing.T) {
	_, err := Source("broken.lison", []byte("(:a"))
	if err == nil {
		t.Fatal("Expected an error")
	}

	if !strings.HasPrefix(err.Error(), "broken.lison: ") {
		t.Errorf("Expected the file name in the error, got %q", err)
	}
}

func TestNode(t *testing.T) {
	tree := parser.NewObject(
		parser.NewTag("name"), parser.NewString("John"),
		parser.NewTag("cars"), parser.NewObject(parser.NewObject(parser.NewInteger(1))),
	)

	want := "(:name 'John'\n :cars ((1)))\n"
	if got := string(Node(tree)); got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}
