package regex

import (
	"errors"
	"fmt"
)

// maxNestingDepth bounds the number of nested groups in a pattern.
const maxNestingDepth = 256

var (
	ErrEmptyPattern      = errors.New("empty pattern")
	ErrExpectedOperand   = errors.New("expected a character, a class or '('")
	ErrMissingRightParen = errors.New("missing closing parenthesis ')'")
	ErrUnexpectedToken   = errors.New("unexpected token")
	ErrNestingTooDeep    = errors.New("groups nested too deeply")
)

// CompileError reports why a pattern failed to compile. Offset is the byte
// position in Pattern of the token the compiler stopped at.
type CompileError struct {
	Pattern string
	Offset  int
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("regex %q: %s at offset %d", e.Pattern, e.Err, e.Offset)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

type parser struct {
	pattern           string
	tokens            []Token
	indexCurrentToken int
	depth             int
}

func (p *parser) peek() *Token {
	if p.indexCurrentToken >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1]
	}

	return &p.tokens[p.indexCurrentToken]
}

func (p *parser) nextToken() {
	if p.indexCurrentToken < len(p.tokens)-1 {
		p.indexCurrentToken++
	}
}

func (p *parser) accept(kind TokenKind) bool {
	return p.peek().ID == kind
}

func (p *parser) expect(kind TokenKind) bool {
	if p.accept(kind) {
		p.nextToken()
		return true
	}

	return false
}

func (p *parser) errorf(err error) *CompileError {
	return &CompileError{
		Pattern: p.pattern,
		Offset:  p.peek().Offset,
		Err:     err,
	}
}

// expression := term ('|' term)*
func (p *parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.expect(TokenBar) {
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = Union(left, right)
	}

	return left, nil
}

// term := factor factor*
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.startsOperand() {
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = Concat(left, right)
	}

	return left, nil
}

// factor := operand ('*' | '+')?
func (p *parser) parseFactor() (Node, error) {
	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	switch {
	case p.expect(TokenStar):
		return Star(operand), nil
	case p.expect(TokenPlus):
		return Plus(operand), nil
	}

	return operand, nil
}

// operand := '(' expression ')' | CHAR | \c | \d | \w | \q
func (p *parser) parseOperand() (Node, error) {
	token := p.peek()

	switch token.ID {
	case TokenLeftParen:
		if p.depth >= maxNestingDepth {
			return nil, p.errorf(ErrNestingTooDeep)
		}

		p.nextToken()
		p.depth++
		inner, err := p.parseExpression()
		p.depth--

		if err != nil {
			return nil, err
		}

		if !p.expect(TokenRightParen) {
			return nil, p.errorf(ErrMissingRightParen)
		}

		return inner, nil

	case TokenCharacter:
		p.nextToken()
		return Character(token.Value), nil

	case TokenCharSet:
		p.nextToken()
		return CharSet(), nil

	case TokenDigitSet:
		p.nextToken()
		return DigitSet(), nil

	case TokenWhitespaceSet:
		p.nextToken()
		return WhitespaceSet(), nil

	case TokenQuoteSet:
		p.nextToken()
		return QuoteSet(), nil
	}

	return nil, p.errorf(ErrExpectedOperand)
}

func (p *parser) startsOperand() bool {
	switch p.peek().ID {
	case TokenLeftParen, TokenCharacter, TokenCharSet, TokenDigitSet,
		TokenWhitespaceSet, TokenQuoteSet:
		return true
	}

	return false
}

// parse compiles the whole token stream; trailing tokens are an error.
func parse(pattern string, tokens []Token) (Node, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].ID != TokenEof {
		panic("regex: token stream must be terminated by an 'Eof' token")
	}

	p := &parser{pattern: pattern, tokens: tokens}

	if p.accept(TokenEof) {
		return nil, p.errorf(ErrEmptyPattern)
	}

	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.accept(TokenEof) {
		return nil, p.errorf(ErrUnexpectedToken)
	}

	return root, nil
}
