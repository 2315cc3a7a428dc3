package parser

import (
	"github.com/pacer/lison/internal/lison/lexer"
)

// peek never runs past the terminal 'EOF' token.
func (p Parser) peek() *lexer.Token {
	index := p.indexCurrentToken

	if index >= p.sizeStream {
		index = p.sizeStream - 1
	}

	return &p.stream.Tokens[index]
}

func (p *Parser) nextToken() {
	if p.indexCurrentToken < p.sizeStream-1 {
		p.indexCurrentToken++
	}
}

func (p Parser) accept(kind lexer.Kind) bool {
	return p.peek().ID == kind
}

func (p *Parser) expect(kind lexer.Kind) bool {
	if p.accept(kind) {
		p.nextToken()

		return true
	}

	return false
}

func (p *Parser) incRecursionDepth() {
	p.currentRecursionDepth++
}

func (p *Parser) decRecursionDepth() {
	p.currentRecursionDepth--
}

func (p Parser) isRecursionMaxDepth() bool {
	return p.currentRecursionDepth >= p.maxRecursionDepth
}

func NewParseError(token *lexer.Token, err error) *ParseError {
	if token == nil {
		panic("token cannot be nil while creating parse error")
	}

	e := &ParseError{
		Err:   err,
		Range: token.Range,
		Token: token,
	}

	return e
}
