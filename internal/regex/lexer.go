package regex

import "fmt"

// TokenKind identifies a token of the pattern language.
type TokenKind int

const (
	TokenLeftParen TokenKind = iota
	TokenRightParen
	TokenStar
	TokenBar
	TokenPlus
	TokenCharSet
	TokenDigitSet
	TokenWhitespaceSet
	TokenQuoteSet
	TokenCharacter
	TokenEof
)

func (k TokenKind) String() string {
	switch k {
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	case TokenStar:
		return "Star"
	case TokenBar:
		return "Bar"
	case TokenPlus:
		return "Plus"
	case TokenCharSet:
		return "CharSet"
	case TokenDigitSet:
		return "DigitSet"
	case TokenWhitespaceSet:
		return "WhitespaceSet"
	case TokenQuoteSet:
		return "QuoteSet"
	case TokenCharacter:
		return "Character"
	case TokenEof:
		return "Eof"
	}

	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexeme of a pattern. Value is only meaningful for
// TokenCharacter. Offset is the byte position of the lexeme in the pattern.
type Token struct {
	ID     TokenKind
	Value  byte
	Offset int
}

func (t Token) String() string {
	if t.ID == TokenCharacter {
		return fmt.Sprintf("{ \"ID\": \"%s\", \"Value\": %q, \"Offset\": %d }", t.ID, t.Value, t.Offset)
	}

	return fmt.Sprintf("{ \"ID\": \"%s\", \"Offset\": %d }", t.ID, t.Offset)
}

// tokenRule recognizes one lexeme with a regex tree of its own.
type tokenRule struct {
	pattern Node
	id      TokenKind
	skip    bool
}

func escaped(c byte) Node {
	return Concat(Character('\\'), Character(c))
}

// tokenRules is ordered by priority: the first rule matching at the current
// offset wins.
var tokenRules = []tokenRule{
	{pattern: escaped('('), id: TokenCharacter},
	{pattern: escaped(')'), id: TokenCharacter},
	{pattern: escaped('*'), id: TokenCharacter},
	{pattern: escaped('|'), id: TokenCharacter},
	{pattern: escaped('+'), id: TokenCharacter},

	{pattern: Character('('), id: TokenLeftParen},
	{pattern: Character(')'), id: TokenRightParen},
	{pattern: Character('*'), id: TokenStar},
	{pattern: Character('|'), id: TokenBar},
	{pattern: Character('+'), id: TokenPlus},

	{pattern: escaped('c'), id: TokenCharSet},
	{pattern: escaped('d'), id: TokenDigitSet},
	{pattern: escaped('w'), id: TokenWhitespaceSet},
	{pattern: escaped('q'), id: TokenQuoteSet},

	{pattern: CharSet(), id: TokenCharacter},
	{pattern: DigitSet(), id: TokenCharacter},
	{pattern: QuoteSet(), id: TokenCharacter},

	{pattern: WhitespaceSet(), skip: true},
}

// Tokenize splits a pattern into tokens. Bytes no rule recognizes (a lone
// backslash, '_', control bytes...) are dropped. The returned slice always
// ends with a TokenEof positioned at len(pattern).
func Tokenize(pattern string) []Token {
	text := []byte(pattern)
	tokens := make([]Token, 0, len(text)+1)

	pos := 0
	for pos < len(text) {
		rule, end, found := matchTokenRule(text, pos)
		if !found {
			pos++
			continue
		}

		if !rule.skip {
			tokens = append(tokens, Token{
				ID:     rule.id,
				Value:  text[end-1],
				Offset: pos,
			})
		}

		pos = end
	}

	tokens = append(tokens, Token{ID: TokenEof, Offset: len(text)})

	return tokens
}

func matchTokenRule(text []byte, pos int) (*tokenRule, int, bool) {
	for i := range tokenRules {
		rule := &tokenRules[i]

		end, ok := matchNode(rule.pattern, text, pos)
		if ok && end > pos {
			return rule, end, true
		}
	}

	return nil, pos, false
}
