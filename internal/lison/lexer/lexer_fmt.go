package lexer

import (
	"fmt"
	"strings"
)

func (k Kind) String() string {
	switch k {
	case CommentStart:
		return "CommentStart"
	case CommentEnd:
		return "CommentEnd"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Whitespace:
		return "Whitespace"
	case Float:
		return "Float"
	case Integer:
		return "Integer"
	case String:
		return "String"
	case Tag:
		return "Tag"
	case Eof:
		return "Eof"
	case NotFound:
		return "NotFound"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (e LexerError) String() string {
	return fmt.Sprintf(
		`{ "Err": "%s", "Range": %s, "Token": %s }`,
		e.Err.Error(),
		e.Range,
		e.Token,
	)
}

func (p Position) String() string {
	return fmt.Sprintf("{ \"Line\": %d, \"Character\": %d }", p.Line, p.Character)
}

func (r Range) String() string {
	return fmt.Sprintf("{ \"Start\": %s, \"End\": %s }", r.Start, r.End)
}

func (t Token) String() string {
	return fmt.Sprintf(
		"{ \"ID\": \"%s\", \"Range\": %s, \"Value\": %q }",
		t.ID,
		t.Range,
		t.Value,
	)
}

func (s StreamToken) String() string {
	return PrettyFormatter(s.Tokens)
}

// PrettyFormatter converts an array of Stringer elements to a formatted string.
func PrettyFormatter[T fmt.Stringer](arr []T) string {
	if len(arr) == 0 {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range arr {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(el.String())
	}
	sb.WriteString("]")

	return sb.String()
}
