package regex

// Kind identifies the variant of a regex node.
type Kind int

const (
	KindCharacter Kind = iota
	KindConcat
	KindUnion
	KindStar
	KindPlus
	KindCharSet
	KindDigitSet
	KindWhitespaceSet
	KindQuoteSet
	KindWildcard
)

// Node is one vertex of a compiled regex tree. Every node owns its operands;
// trees are never shared between two parents.
type Node interface {
	Kind() Kind
	String() string

	// match tries the node at text[pos:] and reports the offset right after
	// the consumed bytes. On failure the returned offset is pos.
	match(text []byte, pos int) (int, bool)
}

type CharacterNode struct {
	Char byte
}

type ConcatNode struct {
	Left  Node
	Right Node
}

type UnionNode struct {
	Left  Node
	Right Node
}

type StarNode struct {
	Inner Node
}

type PlusNode struct {
	Inner Node
}

// ClassNode matches a single byte belonging to a fixed byte class.
// Class is one of KindCharSet, KindDigitSet, KindWhitespaceSet,
// KindQuoteSet or KindWildcard.
type ClassNode struct {
	Class Kind
}

func (CharacterNode) Kind() Kind { return KindCharacter }
func (ConcatNode) Kind() Kind    { return KindConcat }
func (UnionNode) Kind() Kind     { return KindUnion }
func (StarNode) Kind() Kind      { return KindStar }
func (PlusNode) Kind() Kind      { return KindPlus }
func (c ClassNode) Kind() Kind   { return c.Class }

func Character(c byte) *CharacterNode {
	return &CharacterNode{Char: c}
}

func Concat(left, right Node) *ConcatNode {
	return &ConcatNode{Left: left, Right: right}
}

func Union(left, right Node) *UnionNode {
	return &UnionNode{Left: left, Right: right}
}

func Star(inner Node) *StarNode {
	return &StarNode{Inner: inner}
}

func Plus(inner Node) *PlusNode {
	return &PlusNode{Inner: inner}
}

// CharSet matches ASCII letters and the punctuation . : , ? ; - ! % @ & $ / = ( ) < > [ ]
func CharSet() *ClassNode { return &ClassNode{Class: KindCharSet} }

func DigitSet() *ClassNode { return &ClassNode{Class: KindDigitSet} }

// WhitespaceSet matches space, tab and newline. Carriage return is not part of it.
func WhitespaceSet() *ClassNode { return &ClassNode{Class: KindWhitespaceSet} }

func QuoteSet() *ClassNode { return &ClassNode{Class: KindQuoteSet} }

// Wildcard matches any byte outside of WhitespaceSet.
func Wildcard() *ClassNode { return &ClassNode{Class: KindWildcard} }

// ----------------
// Byte class table
// ----------------

const (
	charSetMembers    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.:,?;-!%@&$/=()<>[]"
	digitSetMembers   = "0123456789"
	whitespaceMembers = " \t\n"
	quoteSetMembers   = "'\"`"
)

var classTables = struct {
	charSet    [256]bool
	digitSet   [256]bool
	whitespace [256]bool
	quoteSet   [256]bool
}{
	charSet:    newByteTable(charSetMembers),
	digitSet:   newByteTable(digitSetMembers),
	whitespace: newByteTable(whitespaceMembers),
	quoteSet:   newByteTable(quoteSetMembers),
}

func newByteTable(members string) [256]bool {
	var table [256]bool
	for i := 0; i < len(members); i++ {
		table[members[i]] = true
	}

	return table
}

// InClass reports whether c belongs to the byte class identified by class.
// It panics when class is not a class kind.
func InClass(class Kind, c byte) bool {
	switch class {
	case KindCharSet:
		return classTables.charSet[c]
	case KindDigitSet:
		return classTables.digitSet[c]
	case KindWhitespaceSet:
		return classTables.whitespace[c]
	case KindQuoteSet:
		return classTables.quoteSet[c]
	case KindWildcard:
		return !classTables.whitespace[c]
	}

	panic("regex: " + class.String() + " is not a byte class")
}

// IsClass reports whether k names one of the byte class leaves.
func (k Kind) IsClass() bool {
	return k >= KindCharSet && k <= KindWildcard
}
