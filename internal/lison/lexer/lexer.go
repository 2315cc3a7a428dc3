package lexer

import (
	"bytes"
	"errors"
)

// ----------------------
// Lexer Types definition
// ----------------------

// Position is a 0-based line and byte column inside a source file.
type Position struct {
	Line      int
	Character int
}

// Range spans [Start, End[ in the source.
type Range struct {
	Start Position
	End   Position
}

func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Character < other.Character
}

func (r Range) Contains(pos Position) bool {
	if r.Start.Line > pos.Line {
		return false
	}

	if r.End.Line < pos.Line {
		return false
	}

	if r.Start.Line == pos.Line && pos.Character < r.Start.Character {
		return false
	}

	if r.End.Line == pos.Line && pos.Character >= r.End.Character {
		return false
	}

	return true
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Offset returns a new Position with the character offset by delta.
func (p Position) Offset(delta int) Position {
	return Position{
		Line:      p.Line,
		Character: p.Character + delta,
	}
}

//go:generate stringer -type=Kind
type Kind int

// Comment is the raw text of a '(* ... *)' block, markers included.
type Comment struct {
	Range Range
	Value []byte
}

type StreamToken struct {
	Tokens   []Token
	Comments []Comment
	Err      *LexerError
}

func (s StreamToken) IsEmpty() bool {
	if len(s.Tokens) == 0 {
		panic("token stream must at least have an 'EOF' token")
	}

	return len(s.Tokens) == 1 && s.Tokens[0].ID == Eof
}

// Source renders the tokens back to LISON text, one space between tokens.
func (s StreamToken) Source() string {
	size := len(s.Tokens)

	if size == 0 {
		panic("token stream must at least have an 'EOF' token")
	} else if token := s.Tokens[size-1]; token.ID != Eof {
		panic("token stream must be terminated by an 'EOF' token")
	}

	var buf bytes.Buffer
	for index := range size - 1 { // ignore last #EOF token
		if index > 0 {
			buf.WriteByte(' ')
		}

		tok := s.Tokens[index]
		switch tok.ID {
		case String:
			buf.WriteByte('\'')
			buf.Write(tok.Value)
			buf.WriteByte('\'')
		case Tag:
			buf.WriteByte(':')
			buf.Write(tok.Value)
		default:
			buf.Write(tok.Value)
		}
	}

	return buf.String()
}

// Token is one lexeme. Value holds the text without its surface delimiters
// (no quotes around strings, no colon before tags). Integer and Float carry
// the decoded number for the matching kinds.
type Token struct {
	ID      Kind
	Range   Range
	Value   []byte
	Integer int32
	Float   float32
}

func NewToken(id Kind, reach Range, val []byte) *Token {
	fresh := &Token{
		ID:    id,
		Range: reach,
		Value: val,
	}

	return fresh
}

func CloneToken(old *Token) *Token {
	if old == nil {
		return nil
	}

	fresh := *old
	fresh.Value = bytes.Clone(old.Value)

	return &fresh
}

var (
	ErrUnrecognized    = errors.New("character(s) not recognized")
	ErrIntegerOverflow = errors.New("integer literal out of 32-bit range")
	ErrFloatOverflow   = errors.New("float literal out of 32-bit range")
)

type LexerError struct {
	Err   error
	Range Range
	Token *Token
}

func (l LexerError) GetError() string {
	return l.Err.Error()
}

func (l LexerError) GetRange() Range {
	return l.Range
}

func (l LexerError) Error() string {
	return l.Err.Error()
}

func (l LexerError) Unwrap() error {
	return l.Err
}

type Error interface {
	GetError() string
	GetRange() Range
	String() string
}

// Tokenize the LISON source provided by 'content'.
// Whitespace and comments are not part of the token stream; comments are
// kept aside in StreamToken.Comments. The stream always ends by an 'EOF' token.
// A byte no pattern recognizes stops the tokenizer: the tokens found so far are
// returned along with the error.
func Tokenize(content []byte) (*StreamToken, []Error) {
	tokenHandler := createTokenizer(content)
	tokenHandler.run()

	eof := Token{
		ID:    Eof,
		Value: []byte("#EOF"),
		Range: Range{Start: tokenHandler.position, End: tokenHandler.position},
	}
	tokenHandler.Tokens = append(tokenHandler.Tokens, eof)

	stream := &StreamToken{
		Tokens:   tokenHandler.Tokens,
		Comments: tokenHandler.Comments,
		Err:      tokenHandler.FirstError,
	}

	return stream, tokenHandler.Errs
}
