// Package regex compiles and runs the small regular expression language used
// to build the LISON lexer.
//
// Patterns support literal bytes, concatenation, alternation with '|',
// repetition with '*' and '+', grouping with parentheses and four byte
// classes: \c (letters and punctuation), \d (digits), \w (space, tab,
// newline) and \q (quotes). Operators are escaped with a backslash and
// whitespace in a pattern is ignored.
//
// Matching works on bytes, is anchored at the start of the text and is greedy
// without backtracking.
package regex

// Regex is a compiled pattern. It is immutable and safe for concurrent use.
type Regex struct {
	pattern string
	root    Node
}

// Compile parses pattern. On failure it returns a nil *Regex and a
// *CompileError.
func Compile(pattern string) (*Regex, error) {
	root, err := parse(pattern, Tokenize(pattern))
	if err != nil {
		return nil, err
	}

	return &Regex{pattern: pattern, root: root}, nil
}

// MustCompile is like Compile but panics when the pattern is invalid.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err.Error())
	}

	return re
}

// New wraps an already built tree.
func New(root Node) *Regex {
	return &Regex{pattern: nodeString(root), root: root}
}

func (r *Regex) String() string {
	if r == nil {
		return ""
	}

	return r.pattern
}

func (r *Regex) Root() Node {
	if r == nil {
		return nil
	}

	return r.root
}

// Tree renders the compiled tree, one node per line.
func (r *Regex) Tree() string {
	return Tree(r.Root())
}

// Match returns the longest prefix of text matched by r.
func (r *Regex) Match(text []byte) []byte {
	return Match(text, r.Root())
}

func (r *Regex) MatchString(s string) string {
	return s[:len(Match([]byte(s), r.Root()))]
}

// MatchAt applies r at text[pos:].
func (r *Regex) MatchAt(text []byte, pos int) MatchResult {
	return MatchAt(text, pos, r.Root())
}

// Accept reports whether r matches the whole of text.
func (r *Regex) Accept(text []byte) bool {
	return Accept(text, r.Root())
}

func (r *Regex) AcceptString(s string) bool {
	return Accept([]byte(s), r.Root())
}

// MatchSource compiles pattern and matches it against text. An invalid pattern
// yields an empty match.
func MatchSource(text []byte, pattern string) []byte {
	re, err := Compile(pattern)
	if err != nil {
		return text[:0]
	}

	return re.Match(text)
}

// AcceptSource compiles pattern and reports whether it matches all of text.
// An invalid pattern never accepts.
func AcceptSource(text []byte, pattern string) bool {
	re, err := Compile(pattern)
	if err != nil {
		return false
	}

	return re.Accept(text)
}
