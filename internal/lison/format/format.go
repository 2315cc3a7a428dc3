// Package format pretty-prints LISON documents.
//
// An object fits on one line when it holds no non-empty object, carries no
// comment and stays within MaxWidth columns. Otherwise its entries are
// written one per line, aligned one column right of the opening parenthesis.
// An entry is a tag followed by its value, or a lone value. Comments are kept
// where they were: a comment sharing a line with the value before it stays
// on that line, any other comment gets its own line.
package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/lison/parser"
)

// MaxWidth is the column limit for one-line objects.
const MaxWidth = 80

// Source formats a LISON document. The filename is only used in errors.
func Source(filename string, src []byte) ([]byte, error) {
	root, stream, errs := lison.ParseSingleFile(src)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", filename, errs)
	}

	p := newPrinter()
	p.attachComments(stream)
	p.document(root)

	return p.buf.Bytes(), nil
}

// Node formats a value tree, without comments.
func Node(node parser.Node) []byte {
	p := newPrinter()
	p.document(node)

	return p.buf.Bytes()
}

type printer struct {
	buf         bytes.Buffer
	column      int
	lineStart   bool
	needNewline bool
	// the last token written is a tag, which a ')' right after would extend
	afterTag bool

	// index of the next token to print; leaves, '(' and ')' count as one
	index    int
	leading  map[int][]lexer.Comment
	trailing map[int][]lexer.Comment
}

func newPrinter() *printer {
	return &printer{
		lineStart: true,
		leading:   map[int][]lexer.Comment{},
		trailing:  map[int][]lexer.Comment{},
	}
}

// attachComments binds every comment to a token. A comment starting on the
// line where the previous token ends trails that token, any other comment
// leads the next token ('EOF' included).
func (p *printer) attachComments(stream *lexer.StreamToken) {
	tokens := stream.Tokens
	next := 0

	for _, comment := range stream.Comments {
		for next < len(tokens)-1 && tokens[next].Range.Start.Before(comment.Range.End) {
			next++
		}

		if next > 0 && tokens[next-1].Range.End.Line == comment.Range.Start.Line {
			p.trailing[next-1] = append(p.trailing[next-1], comment)
			continue
		}

		p.leading[next] = append(p.leading[next], comment)
	}
}

func (p *printer) document(root parser.Node) {
	p.node(root, 0, "")

	for _, comment := range p.leading[p.index] {
		if !p.lineStart {
			p.newline(0)
		}
		p.writeComment(comment)
	}

	p.buf.WriteByte('\n')
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}

	p.buf.WriteString(s)

	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.column = len(s) - i - 1
	} else {
		p.column += len(s)
	}

	p.lineStart = false
	p.needNewline = false
	p.afterTag = false
}

func (p *printer) writeComment(comment lexer.Comment) {
	text := string(comment.Value)
	if !strings.HasSuffix(text, "*)") {
		// unterminated: it runs to the end of the file
		text = strings.TrimRight(text, " \t\n")
	}

	p.write(text)
}

func (p *printer) newline(indent int) {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat(" ", indent))
	p.column = indent
	p.lineStart = true
	p.needNewline = false
}

// beginToken writes what goes before the next token: the comments leading it,
// then the separator. sep is "", " " or "\n".
func (p *printer) beginToken(indent int, sep string) {
	comments := p.leading[p.index]

	switch {
	case sep == "\n" || p.needNewline || len(comments) > 0:
		if !p.lineStart {
			p.newline(indent)
		}
	default:
		p.write(sep)
	}

	for _, comment := range comments {
		p.writeComment(comment)
		p.newline(indent)
	}
}

// endToken writes the comments trailing the token just printed.
func (p *printer) endToken() {
	comments := p.trailing[p.index]
	for _, comment := range comments {
		p.write(" ")
		p.writeComment(comment)
	}

	if len(comments) > 0 {
		p.needNewline = true
	}

	p.index++
}

func (p *printer) node(n parser.Node, indent int, sep string) {
	obj, ok := n.(*parser.ObjectNode)
	if !ok {
		p.beginToken(indent, sep)
		p.write(n.String())
		p.afterTag = n.Kind() == parser.KindTag
		p.endToken()
		return
	}

	p.beginToken(indent, sep)

	open := p.index
	size := tokenCount(obj)

	if p.fitsOnOneLine(obj, open, size) {
		p.write(obj.String())
		p.index = open + size - 1
		p.endToken()
		return
	}

	inner := p.column + 1
	p.write("(")
	p.endToken()

	for i, entry := range groupEntries(obj.Children) {
		for j, child := range entry {
			childSep := " "
			if j == 0 {
				childSep = "\n"
				if i == 0 {
					childSep = ""
				}
			}

			p.node(child, inner, childSep)
		}
	}

	for _, comment := range p.leading[p.index] {
		if !p.lineStart {
			p.newline(inner)
		}
		p.writeComment(comment)
	}

	if p.afterTag {
		p.write(" ")
	}
	p.write(")")
	p.endToken()
}

func (p *printer) fitsOnOneLine(obj *parser.ObjectNode, open, size int) bool {
	for _, child := range obj.Children {
		if nested, ok := child.(*parser.ObjectNode); ok && len(nested.Children) > 0 {
			return false
		}
	}

	last := open + size - 1
	for i := open; i <= last; i++ {
		if i > open && len(p.leading[i]) > 0 {
			return false
		}

		if i < last && len(p.trailing[i]) > 0 {
			return false
		}
	}

	return p.column+len(obj.String()) <= MaxWidth
}

// tokenCount is the number of tokens n was parsed from.
func tokenCount(n parser.Node) int {
	obj, ok := n.(*parser.ObjectNode)
	if !ok {
		return 1
	}

	count := 2
	for _, child := range obj.Children {
		count += tokenCount(child)
	}

	return count
}

// groupEntries pairs every tag with the non-tag value following it.
func groupEntries(children []parser.Node) [][]parser.Node {
	entries := make([][]parser.Node, 0, len(children))

	for i := 0; i < len(children); {
		if children[i].Kind() == parser.KindTag && i+1 < len(children) &&
			children[i+1].Kind() != parser.KindTag {
			entries = append(entries, children[i:i+2])
			i += 2
			continue
		}

		entries = append(entries, children[i:i+1])
		i++
	}

	return entries
}
