package lexer

import (
	"strconv"

	"github.com/pacer/lison/internal/logging"
	"github.com/pacer/lison/internal/regex"
)

// compiledPattern holds a pre-compiled regex pattern and its associated token kind.
type compiledPattern struct {
	Regex *regex.Regex
	ID    Kind
}

// compiledPatterns holds all pre-compiled regex patterns used during tokenization.
// They are built once at package load time and never modified afterwards.
var compiledPatterns struct {
	tokenPatterns []compiledPattern
}

func init() {
	compiledPatterns.tokenPatterns = []compiledPattern{
		{
			Regex: regex.MustCompile(`\(\*`),
			ID:    CommentStart,
		},
		{
			Regex: regex.MustCompile(`\*\)`),
			ID:    CommentEnd,
		},
		{
			Regex: regex.MustCompile(`\(`),
			ID:    LeftParen,
		},
		{
			Regex: regex.MustCompile(`\)`),
			ID:    RightParen,
		},
		{
			Regex: regex.MustCompile(`\w`),
			ID:    Whitespace,
		},
		{
			Regex: regex.MustCompile(`\d+.\d+`),
			ID:    Float,
		},
		{
			Regex: regex.MustCompile(`\d+`),
			ID:    Integer,
		},
		{
			Regex: regex.MustCompile(`'(\c|\w|\d)*'`),
			ID:    String,
		},
		{
			Regex: regex.MustCompile(`:(\c|\d)+`),
			ID:    Tag,
		},
	}
}

// Patterns returns the source of the token patterns in matching order.
func Patterns() map[Kind]string {
	patterns := make(map[Kind]string, len(compiledPatterns.tokenPatterns))
	for _, pattern := range compiledPatterns.tokenPatterns {
		patterns[pattern.ID] = pattern.Regex.String()
	}

	return patterns
}

type tokenizer struct {
	Tokens     []Token
	Comments   []Comment
	Errs       []Error
	FirstError *LexerError

	content  []byte
	offset   int
	position Position

	inComment     bool
	commentOffset int
	commentStart  Position
}

func createTokenizer(content []byte) *tokenizer {
	return &tokenizer{content: content}
}

// run scans the whole content. At each offset the first pattern producing a
// non-empty match wins. Inside a comment the scan moves one byte at a time so
// that the closing '*)' is found wherever it sits.
func (t *tokenizer) run() {
	for t.offset < len(t.content) {
		pattern, end := t.matchPattern()

		id := NotFound
		if pattern != nil {
			id = pattern.ID
		}

		switch id {
		case CommentStart:
			if !t.inComment {
				t.inComment = true
				t.commentOffset = t.offset
				t.commentStart = t.position
			}
		case CommentEnd:
			if t.inComment {
				t.inComment = false
				t.advance(end)
				t.closeComment()
				continue
			}
		}

		if t.inComment {
			t.advance(t.offset + 1)
			continue
		}

		switch id {
		case NotFound:
			t.appendError(ErrUnrecognized, t.offset+1)
			return
		case CommentEnd, Whitespace:
			t.advance(end)
			continue
		}

		if !t.appendToken(id, end) {
			return
		}

		t.advance(end)
	}

	if t.inComment {
		t.closeComment()
	}
}

func (t *tokenizer) matchPattern() (*compiledPattern, int) {
	for i := range compiledPatterns.tokenPatterns {
		pattern := &compiledPatterns.tokenPatterns[i]

		res := pattern.Regex.MatchAt(t.content, t.offset)
		if res.Ok && res.Rest > t.offset {
			return pattern, res.Rest
		}
	}

	return nil, t.offset
}

func (t *tokenizer) advance(end int) {
	t.position = advancePosition(t.position, t.content[t.offset:end])
	t.offset = end
}

func (t *tokenizer) rangeTo(end int) Range {
	return Range{
		Start: t.position,
		End:   advancePosition(t.position, t.content[t.offset:end]),
	}
}

func (t *tokenizer) closeComment() {
	t.Comments = append(t.Comments, Comment{
		Range: Range{Start: t.commentStart, End: t.position},
		Value: t.content[t.commentOffset:t.offset],
	})
}

// appendToken decodes the lexeme at [offset, end[ and appends it.
// It returns false when the lexeme cannot be represented.
func (t *tokenizer) appendToken(id Kind, end int) bool {
	text := t.content[t.offset:end]

	to := Token{
		ID:    id,
		Range: t.rangeTo(end),
		Value: trimSuperflousCharacter(text, id),
	}

	switch id {
	case Integer:
		value, err := strconv.ParseInt(string(text), 10, 32)
		if err != nil {
			t.appendError(ErrIntegerOverflow, end)
			return false
		}
		to.Integer = int32(value)

	case Float:
		value, err := strconv.ParseFloat(string(text), 32)
		if err != nil {
			t.appendError(ErrFloatOverflow, end)
			return false
		}
		to.Float = float32(value)
	}

	t.Tokens = append(t.Tokens, to)

	return true
}

func (t *tokenizer) appendError(err error, end int) {
	if err == nil {
		logging.Get().Errorf("tokenizer expected an error but got <nil> at offset %d", t.offset)
		panic("tokenizer expected an error but got <nil> while appending error")
	}

	token := &Token{
		ID:    NotFound,
		Range: t.rangeTo(end),
		Value: t.content[t.offset:end],
	}

	lexErr := &LexerError{
		Err:   err,
		Token: token,
		Range: token.Range,
	}

	t.Errs = append(t.Errs, lexErr)

	if t.FirstError == nil {
		t.FirstError = lexErr
	}
}

func trimSuperflousCharacter(text []byte, id Kind) []byte {
	switch id {
	case String:
		text = text[1 : len(text)-1]
	case Tag:
		text = text[1:]
	}

	return text
}
