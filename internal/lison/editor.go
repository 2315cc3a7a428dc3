package lison

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/lison/parser"
)

const (
	FoldingKindComment = "comment"
	FoldingKindRegion  = "region"
)

// FoldingRange is a foldable block of lines.
type FoldingRange struct {
	StartLine int
	EndLine   int
	Kind      string
}

// FoldingRanges returns one range per object and per comment spanning more
// than one line, ordered by starting line. root may be <nil>.
func FoldingRanges(root parser.Node, stream *lexer.StreamToken) []FoldingRange {
	ranges := make([]FoldingRange, 0, 10)

	parser.Walk(root, func(node parser.Node) bool {
		if node.Kind() != parser.KindObject {
			return false
		}

		reach := node.Range()
		if reach.End.Line > reach.Start.Line {
			ranges = append(ranges, FoldingRange{
				StartLine: reach.Start.Line,
				EndLine:   reach.End.Line,
				Kind:      FoldingKindRegion,
			})
		}

		return true
	})

	if stream != nil {
		for _, comment := range stream.Comments {
			if comment.Range.End.Line > comment.Range.Start.Line {
				ranges = append(ranges, FoldingRange{
					StartLine: comment.Range.Start.Line,
					EndLine:   comment.Range.End.Line,
					Kind:      FoldingKindComment,
				})
			}
		}
	}

	slices.SortStableFunc(ranges, func(a, b FoldingRange) int {
		return a.StartLine - b.StartLine
	})

	return ranges
}

// NodeAt returns the innermost node whose range contains pos, along with the
// object holding it (<nil> for the root).
func NodeAt(root parser.Node, pos lexer.Position) (node, parent parser.Node) {
	var found, holder parser.Node

	var visit func(n, p parser.Node)
	visit = func(n, p parser.Node) {
		if !n.Range().Contains(pos) {
			return
		}

		found, holder = n, p

		if obj, ok := n.(*parser.ObjectNode); ok {
			for _, child := range obj.Children {
				visit(child, n)
			}
		}
	}

	if root != nil {
		visit(root, nil)
	}

	return found, holder
}

// Hover describes the value under pos. It returns an empty string when pos
// is not over a value.
func Hover(root parser.Node, pos lexer.Position) (string, lexer.Range) {
	node, parent := NodeAt(root, pos)
	if node == nil {
		return "", lexer.Range{}
	}

	var text string

	switch n := node.(type) {
	case *parser.ObjectNode:
		text = fmt.Sprintf("object, %d value(s)", len(n.Children))
		if tags := tagNames(n); len(tags) > 0 {
			text += "\n\ntags: " + strings.Join(tags, ", ")
		}

	case *parser.TagNode:
		text = "tag :" + n.Value
		if obj, ok := parent.(*parser.ObjectNode); ok {
			if value, found := obj.Lookup(n.Value); found && value.Kind() != parser.KindTag {
				text += " = " + value.Kind().String()
			}
		}

	case *parser.StringNode:
		text = fmt.Sprintf("string, %d byte(s)", len(n.Value))

	case *parser.IntegerNode:
		text = "int32 " + n.String()

	case *parser.FloatNode:
		text = "float32 " + n.String()
	}

	return text, node.Range()
}

func tagNames(obj *parser.ObjectNode) []string {
	var names []string
	for _, child := range obj.Children {
		if tag, ok := child.(*parser.TagNode); ok {
			names = append(names, tag.Value)
		}
	}

	return names
}

type SemanticTokenType int

const (
	SemanticComment SemanticTokenType = iota
	SemanticString
	SemanticNumber
	SemanticProperty
)

// SemanticTokenTypeNames is the legend matching SemanticTokenType values.
var SemanticTokenTypeNames = []string{"comment", "string", "number", "property"}

// SemanticToken is a highlighted span lying on a single line.
type SemanticToken struct {
	Range lexer.Range
	Type  SemanticTokenType
}

// SemanticTokens lists highlighted spans in document order. Strings and
// comments spanning several lines are split into one span per line.
func SemanticTokens(stream *lexer.StreamToken) []SemanticToken {
	if stream == nil {
		return nil
	}

	tokens := make([]SemanticToken, 0, len(stream.Tokens)+len(stream.Comments))

	for _, tok := range stream.Tokens {
		switch tok.ID {
		case lexer.String:
			quoted := make([]byte, 0, len(tok.Value)+2)
			quoted = append(quoted, '\'')
			quoted = append(quoted, tok.Value...)
			quoted = append(quoted, '\'')
			tokens = appendLines(tokens, tok.Range.Start, quoted, SemanticString)
		case lexer.Integer, lexer.Float:
			tokens = append(tokens, SemanticToken{Range: tok.Range, Type: SemanticNumber})
		case lexer.Tag:
			tokens = append(tokens, SemanticToken{Range: tok.Range, Type: SemanticProperty})
		}
	}

	for _, comment := range stream.Comments {
		tokens = appendLines(tokens, comment.Range.Start, comment.Value, SemanticComment)
	}

	slices.SortStableFunc(tokens, func(a, b SemanticToken) int {
		if a.Range.Start.Before(b.Range.Start) {
			return -1
		}
		if b.Range.Start.Before(a.Range.Start) {
			return 1
		}
		return 0
	})

	return tokens
}

// appendLines appends one span per non-empty line of text, text starting at
// start.
func appendLines(tokens []SemanticToken, start lexer.Position, text []byte, typ SemanticTokenType) []SemanticToken {
	for i, line := range bytes.Split(text, []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		column := 0
		if i == 0 {
			column = start.Character
		}

		tokens = append(tokens, SemanticToken{
			Range: lexer.Range{
				Start: lexer.Position{Line: start.Line + i, Character: column},
				End:   lexer.Position{Line: start.Line + i, Character: column + len(line)},
			},
			Type: typ,
		})
	}

	return tokens
}
