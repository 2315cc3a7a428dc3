package parser

// -----------
// Parser Kind
// -----------

// MaxDepth is the deepest object nesting Parse accepts. Deeper documents fail
// with ErrMaxRecursionDepth even when they are otherwise valid.
const MaxDepth = 512

type Kind int

const (
	KindObject Kind = iota
	KindString
	KindTag
	KindInteger
	KindFloat
)
