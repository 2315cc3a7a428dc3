package regex

import (
	"fmt"
	"strings"
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "Character"
	case KindConcat:
		return "Concat"
	case KindUnion:
		return "Union"
	case KindStar:
		return "Star"
	case KindPlus:
		return "Plus"
	case KindCharSet:
		return "CharSet"
	case KindDigitSet:
		return "DigitSet"
	case KindWhitespaceSet:
		return "WhitespaceSet"
	case KindQuoteSet:
		return "QuoteSet"
	case KindWildcard:
		return "Wildcard"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// String renders the node back into pattern syntax. Wildcard has no pattern
// syntax and renders as ".".
func (n CharacterNode) String() string {
	switch n.Char {
	case '(', ')', '*', '|', '+':
		return `\` + string(n.Char)
	}

	return string(n.Char)
}

func (n ConcatNode) String() string {
	return nodeString(n.Left) + nodeString(n.Right)
}

func (n UnionNode) String() string {
	return "(" + nodeString(n.Left) + "|" + nodeString(n.Right) + ")"
}

func (n StarNode) String() string {
	return repetitionString(n.Inner) + "*"
}

func (n PlusNode) String() string {
	return repetitionString(n.Inner) + "+"
}

func (n ClassNode) String() string {
	switch n.Class {
	case KindCharSet:
		return `\c`
	case KindDigitSet:
		return `\d`
	case KindWhitespaceSet:
		return `\w`
	case KindQuoteSet:
		return `\q`
	case KindWildcard:
		return "."
	}

	return n.Class.String()
}

func nodeString(n Node) string {
	if n == nil {
		return ""
	}

	return n.String()
}

func repetitionString(inner Node) string {
	if inner == nil {
		return "()"
	}

	switch inner.Kind() {
	case KindConcat, KindStar, KindPlus:
		return "(" + inner.String() + ")"
	}

	return inner.String()
}

// Tree renders node as an indented tree, one node per line.
func Tree(node Node) string {
	var sb strings.Builder
	writeTree(&sb, node, 0)

	return sb.String()
}

func writeTree(sb *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case nil:
		fmt.Fprintf(sb, "%s<nil>\n", indent)
	case *CharacterNode:
		fmt.Fprintf(sb, "%sChar {%q}\n", indent, n.Char)
	case *ConcatNode:
		fmt.Fprintf(sb, "%sConcat {\n", indent)
		writeTree(sb, n.Left, depth+1)
		writeTree(sb, n.Right, depth+1)
		fmt.Fprintf(sb, "%s}\n", indent)
	case *UnionNode:
		fmt.Fprintf(sb, "%sUnion {\n", indent)
		writeTree(sb, n.Left, depth+1)
		writeTree(sb, n.Right, depth+1)
		fmt.Fprintf(sb, "%s}\n", indent)
	case *StarNode:
		fmt.Fprintf(sb, "%sStar {\n", indent)
		writeTree(sb, n.Inner, depth+1)
		fmt.Fprintf(sb, "%s}\n", indent)
	case *PlusNode:
		fmt.Fprintf(sb, "%sPlus {\n", indent)
		writeTree(sb, n.Inner, depth+1)
		fmt.Fprintf(sb, "%s}\n", indent)
	case *ClassNode:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Class)
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, node.Kind())
	}
}
