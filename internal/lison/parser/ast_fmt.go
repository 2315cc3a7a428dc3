package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func (e ParseError) String() string {
	to := "\"\""
	err := "\"\""

	if e.Err != nil {
		err = e.Err.Error()
		err = strings.ReplaceAll(err, "\"", "'")
	}
	if e.Token != nil {
		to = fmt.Sprint(*e.Token)
	}

	return fmt.Sprintf(`{"Err": "%s", "Range": %s, "Token": %s}`, err, e.Range, to)
}

// String writes the object in LISON syntax with children separated by one space.
func (o ObjectNode) String() string {
	var sb strings.Builder
	writeNode(&sb, &o)

	return sb.String()
}

func (s StringNode) String() string {
	return "'" + s.Value + "'"
}

func (t TagNode) String() string {
	return ":" + t.Value
}

func (i IntegerNode) String() string {
	return strconv.FormatInt(int64(i.Value), 10)
}

// String uses the shortest decimal form that reads back as the same float32.
// A ".0" is appended to whole numbers so the text still lexes as a float.
func (f FloatNode) String() string {
	return FormatFloat(f.Value)
}

func FormatFloat(value float32) string {
	str := strconv.FormatFloat(float64(value), 'f', -1, 32)

	if math.IsInf(float64(value), 0) || math.IsNaN(float64(value)) {
		return str
	}

	if !strings.Contains(str, ".") {
		str += ".0"
	}

	return str
}

func writeNode(sb *strings.Builder, node Node) {
	obj, ok := node.(*ObjectNode)
	if !ok {
		sb.WriteString(node.String())
		return
	}

	sb.WriteByte('(')
	for i, child := range obj.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeNode(sb, child)
	}

	if n := len(obj.Children); n > 0 && obj.Children[n-1].Kind() == KindTag {
		// ')' is a tag character: without the space it would extend the tag
		sb.WriteByte(' ')
	}
	sb.WriteByte(')')
}

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "Object"
	case KindString:
		return "String"
	case KindTag:
		return "Tag"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}
