package parser

import (
	"github.com/pacer/lison/internal/lison/lexer"
)

// Node is a LISON value. The tree is owned by whoever received it from the
// parser; nodes are never shared between parents.
type Node interface {
	Kind() Kind
	Range() lexer.Range
	String() string
}

// ObjectNode is a parenthesized list of values, in source order.
type ObjectNode struct {
	rng      lexer.Range
	Children []Node
}

// StringNode and TagNode hold the same data; they differ only by the way they
// are written ('text' versus :text).
type StringNode struct {
	rng   lexer.Range
	Value string
}

type TagNode struct {
	rng   lexer.Range
	Value string
}

type IntegerNode struct {
	rng   lexer.Range
	Value int32
}

type FloatNode struct {
	rng   lexer.Range
	Value float32
}

func (ObjectNode) Kind() Kind  { return KindObject }
func (StringNode) Kind() Kind  { return KindString }
func (TagNode) Kind() Kind     { return KindTag }
func (IntegerNode) Kind() Kind { return KindInteger }
func (FloatNode) Kind() Kind   { return KindFloat }

func (o ObjectNode) Range() lexer.Range  { return o.rng }
func (s StringNode) Range() lexer.Range  { return s.rng }
func (t TagNode) Range() lexer.Range     { return t.rng }
func (i IntegerNode) Range() lexer.Range { return i.rng }
func (f FloatNode) Range() lexer.Range   { return f.rng }

func NewObject(children ...Node) *ObjectNode {
	return &ObjectNode{Children: children}
}

func NewString(value string) *StringNode {
	return &StringNode{Value: value}
}

func NewTag(value string) *TagNode {
	return &TagNode{Value: value}
}

func NewInteger(value int32) *IntegerNode {
	return &IntegerNode{Value: value}
}

func NewFloat(value float32) *FloatNode {
	return &FloatNode{Value: value}
}

// Append adds child at the end of the object.
func (o *ObjectNode) Append(child Node) {
	if child == nil {
		panic("cannot append <nil> node to an object")
	}

	o.Children = append(o.Children, child)
}

// Lookup returns the value following the first tag named name among the
// direct children of o.
func (o *ObjectNode) Lookup(name string) (Node, bool) {
	for i := 0; i+1 < len(o.Children); i++ {
		tag, ok := o.Children[i].(*TagNode)
		if ok && tag.Value == name {
			return o.Children[i+1], true
		}
	}

	return nil, false
}

// Equal reports whether a and b are structurally identical. Ranges are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case *ObjectNode:
		y, ok := b.(*ObjectNode)
		if !ok || len(x.Children) != len(y.Children) {
			return false
		}

		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}

		return true

	case *StringNode:
		y, ok := b.(*StringNode)
		return ok && x.Value == y.Value

	case *TagNode:
		y, ok := b.(*TagNode)
		return ok && x.Value == y.Value

	case *IntegerNode:
		y, ok := b.(*IntegerNode)
		return ok && x.Value == y.Value

	case *FloatNode:
		y, ok := b.(*FloatNode)
		return ok && x.Value == y.Value
	}

	return false
}

// Walk visits node and its descendants in pre-order. Children of a node are
// skipped when fn returns false for it.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	if obj, ok := node.(*ObjectNode); ok {
		for _, child := range obj.Children {
			Walk(child, fn)
		}
	}
}
