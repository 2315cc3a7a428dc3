// Package parser builds LISON value trees from a token stream.
//
// The grammar is
//
//	object := '(' object* ')' | STRING | INTEGER | FLOAT | TAG
//
// Parsing recurses once per nesting level, so objects may nest at most
// MaxDepth levels: a deeper document is rejected with ErrMaxRecursionDepth.
package parser

import (
	"errors"
	"fmt"

	"github.com/pacer/lison/internal/lison/lexer"
)

var (
	ErrExpectedObject    = errors.New("expected an object, a string, a number or a tag")
	ErrUnexpectedToken   = errors.New("unexpected token after the root object")
	ErrMissingRightParen = errors.New("missing closing parenthesis ')'")
	ErrMaxRecursionDepth = errors.New("parser error, reached the max depth authorized")
)

type ParseError struct {
	Err   error
	Range lexer.Range
	Token *lexer.Token
}

func (p ParseError) GetError() string {
	return p.Err.Error()
}

func (p ParseError) GetRange() lexer.Range {
	return p.Range
}

func (p ParseError) Error() string {
	return p.Err.Error()
}

func (p ParseError) Unwrap() error {
	return p.Err
}

type Parser struct {
	stream            *lexer.StreamToken
	indexCurrentToken int
	sizeStream        int

	maxRecursionDepth     int
	currentRecursionDepth int
}

func (p *Parser) Reset(streamOfToken *lexer.StreamToken) {
	p.stream = streamOfToken
	p.sizeStream = len(streamOfToken.Tokens)
	p.indexCurrentToken = 0

	if p.sizeStream < 1 || streamOfToken.Tokens[p.sizeStream-1].ID != lexer.Eof {
		panic("every token stream must be terminated by an 'EOF' token, even an empty one")
	}

	p.maxRecursionDepth = MaxDepth
	p.currentRecursionDepth = 0
}

// ParseObject parses one value at the current token.
//
//	object := '(' list ')' | STRING | INTEGER | FLOAT | TAG
//
// It returns (nil, nil) when the current token cannot start a value, so that
// callers can tell "nothing here" from a malformed object.
func (p *Parser) ParseObject() (Node, *ParseError) {
	token := p.peek()

	switch token.ID {
	case lexer.LeftParen:
		if p.isRecursionMaxDepth() {
			return nil, NewParseError(token, ErrMaxRecursionDepth)
		}

		p.nextToken()
		p.incRecursionDepth()
		defer p.decRecursionDepth()

		object, err := p.parseList()
		if err != nil {
			return nil, err
		}

		closing := p.peek()
		if !p.expect(lexer.RightParen) {
			err := fmt.Errorf(
				"%w for '(' opened at %d:%d",
				ErrMissingRightParen,
				token.Range.Start.Line+1,
				token.Range.Start.Character+1,
			)
			return nil, NewParseError(closing, err)
		}

		object.rng = lexer.Range{Start: token.Range.Start, End: closing.Range.End}

		return object, nil

	case lexer.String:
		p.nextToken()
		return &StringNode{rng: token.Range, Value: string(token.Value)}, nil

	case lexer.Integer:
		p.nextToken()
		return &IntegerNode{rng: token.Range, Value: token.Integer}, nil

	case lexer.Float:
		p.nextToken()
		return &FloatNode{rng: token.Range, Value: token.Float}, nil

	case lexer.Tag:
		p.nextToken()
		return &TagNode{rng: token.Range, Value: string(token.Value)}, nil
	}

	return nil, nil
}

// parseList collects values until one cannot be started.
//
//	list := object*
func (p *Parser) parseList() (*ObjectNode, *ParseError) {
	object := &ObjectNode{}

	for {
		child, err := p.ParseObject()
		if err != nil {
			return nil, err
		}

		if child == nil {
			return object, nil
		}

		object.Children = append(object.Children, child)
	}
}

// Parse reads exactly one value followed by the end of the stream.
// Nothing is returned on failure: the tree is either complete or <nil>.
func Parse(stream *lexer.StreamToken) (Node, []lexer.Error) {
	parser := Parser{}
	parser.Reset(stream)

	root, err := parser.ParseObject()
	if err != nil {
		return nil, []lexer.Error{err}
	}

	if root == nil {
		return nil, []lexer.Error{NewParseError(parser.peek(), ErrExpectedObject)}
	}

	if !parser.accept(lexer.Eof) {
		return nil, []lexer.Error{NewParseError(parser.peek(), ErrUnexpectedToken)}
	}

	return root, nil
}
