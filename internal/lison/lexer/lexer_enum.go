package lexer

// ----------
// Lexer Kind
// ----------

// The order of the token kinds is the order patterns are tried in.
// Comment markers come before parentheses and floats before integers.
const (
	CommentStart Kind = iota
	CommentEnd
	LeftParen
	RightParen
	Whitespace
	Float
	Integer
	String
	Tag
	Eof
	NotFound
)
