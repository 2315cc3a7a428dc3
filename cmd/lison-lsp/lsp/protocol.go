package lsp

import "github.com/pacer/lison/internal/lison"

// LSP protocol constants.
const (
	// JSONRPCVersion is the JSON-RPC protocol version.
	JSONRPCVersion = "2.0"

	// SeverityError indicates an error diagnostic per LSP spec.
	SeverityError = 1

	// TextDocumentSyncFull indicates full document sync mode.
	TextDocumentSyncFull = 1

	// PositionEncodingUTF8 makes columns count bytes, as LISON ranges do.
	PositionEncodingUTF8 = "utf-8"

	ErrorParse          = -32700
	ErrorInvalidRequest = -32600
	ErrorMethodNotFound = -32601
	ErrorInvalidParams  = -32602
)

// LSP method names.
const (
	MethodInitialize         = "initialize"
	MethodInitialized        = "initialized"
	MethodShutdown           = "shutdown"
	MethodExit               = "exit"
	MethodDidOpen            = "textDocument/didOpen"
	MethodDidChange          = "textDocument/didChange"
	MethodDidClose           = "textDocument/didClose"
	MethodHover              = "textDocument/hover"
	MethodFoldingRange       = "textDocument/foldingRange"
	MethodFormatting         = "textDocument/formatting"
	MethodPublishDiagnostics = "textDocument/publishDiagnostics"
	MethodSemanticTokensFull = "textDocument/semanticTokens/full"
)

// SemanticTokenTypes is the legend for token types. Indices are
// lison.SemanticTokenType values.
var SemanticTokenTypes = lison.SemanticTokenTypeNames

// LSP header constants.
const (
	ContentLengthHeader = "Content-Length"
	HeaderDelimiter     = "\r\n\r\n"
	LineDelimiter       = "\r\n"

	// MaxMessageSize bounds a single message body.
	MaxMessageSize = 64 << 20
)
