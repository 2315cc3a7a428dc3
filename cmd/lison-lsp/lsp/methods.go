// Package lsp implements LSP message types and handlers for LISON documents.
//
// Based on https://github.com/yayolande/go-template-lsp (MIT License)
package lsp

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/format"
	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/logging"
)

// ID represents a JSON-RPC request ID that can be either a string or number.
type ID int

func (id *ID) UnmarshalJSON(data []byte) error {
	length := len(data)
	if length >= 2 && data[0] == '"' && data[length-1] == '"' {
		data = data[1 : length-1]
	}

	number, err := strconv.Atoi(string(data))
	if err != nil {
		return errors.New("'ID' expected either a string or an integer")
	}

	*id = ID(number)

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(id))), nil
}

// Envelope holds the fields shared by every incoming message. Id is <nil> for
// notifications.
type Envelope struct {
	JsonRpc string `json:"jsonrpc"`
	Id      *ID    `json:"id"`
	Method  string `json:"method"`
}

// RequestMessage represents a JSON-RPC request.
type RequestMessage[T any] struct {
	JsonRpc string `json:"jsonrpc"`
	Id      ID     `json:"id"`
	Method  string `json:"method"`
	Params  T      `json:"params"`
}

// ResponseMessage represents a JSON-RPC response.
type ResponseMessage[T any] struct {
	JsonRpc string         `json:"jsonrpc"`
	Id      ID             `json:"id"`
	Result  T              `json:"result"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError represents a JSON-RPC error.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NotificationMessage represents a JSON-RPC notification (no response expected).
type NotificationMessage[T any] struct {
	JsonRpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  T      `json:"params"`
}

// InitializeParams holds parameters for the initialize request.
type InitializeParams struct {
	ProcessId    int            `json:"processId"`
	Capabilities map[string]any `json:"capabilities"`
	ClientInfo   struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"clientInfo"`
	RootUri string `json:"rootUri"`
}

// SemanticTokensLegend lists the token types and modifiers used in
// semantic token data.
type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type SemanticTokensOptions struct {
	Legend SemanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
}

// ServerCapabilities describes the capabilities this server supports.
type ServerCapabilities struct {
	PositionEncoding           string                 `json:"positionEncoding"`
	TextDocumentSync           int                    `json:"textDocumentSync"`
	HoverProvider              bool                   `json:"hoverProvider"`
	FoldingRangeProvider       bool                   `json:"foldingRangeProvider"`
	DocumentFormattingProvider bool                   `json:"documentFormattingProvider"`
	SemanticTokensProvider     *SemanticTokensOptions `json:"semanticTokensProvider,omitempty"`
}

// InitializeResult is the response to the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

// PublishDiagnosticsParams holds parameters for publishing diagnostics.
type PublishDiagnosticsParams struct {
	Uri         string       `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Diagnostic represents a diagnostic message.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Message  string `json:"message"`
	Severity int    `json:"severity"`
	Source   string `json:"source"`
}

// Position represents a position in a text document.
type Position struct {
	Line      uint `json:"line"`
	Character uint `json:"character"`
}

// Range represents a range in a text document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextDocumentItem represents a text document.
type TextDocumentItem struct {
	Uri        string `json:"uri"`
	Version    int    `json:"version"`
	LanguageId string `json:"languageId"`
	Text       string `json:"text"`
}

// TextDocumentIdentifier identifies a text document.
type TextDocumentIdentifier struct {
	Uri string `json:"uri"`
}

// TextDocumentPositionParams combines a document identifier with a position.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// MarkupContent represents markup content (markdown or plaintext).
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// TextEdit replaces Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// intToUint safely converts int to uint, returning 0 for negative values.
func intToUint(v int) uint {
	if v < 0 {
		return 0
	}
	return uint(v) //nolint:gosec // bounds checked above
}

// uintToInt safely converts uint to int, clamping to max int for overflow.
func uintToInt(v uint) int {
	const maxInt = int(^uint(0) >> 1)
	if v > uint(maxInt) {
		return maxInt
	}
	return int(v) //nolint:gosec // bounds checked above
}

// ConvertParserRangeToLspRange converts a parser range to an LSP range.
func ConvertParserRangeToLspRange(parserRange lexer.Range) Range {
	return Range{
		Start: convertPosition(parserRange.Start),
		End:   convertPosition(parserRange.End),
	}
}

func convertPosition(p lexer.Position) Position {
	return Position{
		Line:      intToUint(p.Line),
		Character: intToUint(p.Character),
	}
}

func marshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		msg := "error while marshalling response: " + err.Error()
		logging.Get().Error(msg)
		panic(msg)
	}

	return data
}

// ProcessErrorResponse builds an error response for request id.
func ProcessErrorResponse(id ID, code int, message string) []byte {
	return marshal(ResponseMessage[any]{
		JsonRpc: JSONRPCVersion,
		Id:      id,
		Error:   &ResponseError{Code: code, Message: message},
	})
}

func invalidParams(id ID, method string, err error) []byte {
	logging.Get().WithField("method", method).Warnf("invalid params: %v", err)
	return ProcessErrorResponse(id, ErrorInvalidParams, "invalid params for '"+method+"': "+err.Error())
}

// ProcessInitializeRequest handles the initialize request.
func ProcessInitializeRequest(data []byte, lspName, lspVersion string) (response []byte, root string) {
	req := RequestMessage[InitializeParams]{}
	if err := json.Unmarshal(data, &req); err != nil {
		return invalidParams(req.Id, MethodInitialize, err), ""
	}

	res := ResponseMessage[InitializeResult]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
		Result: InitializeResult{
			Capabilities: ServerCapabilities{
				PositionEncoding:           PositionEncodingUTF8,
				TextDocumentSync:           TextDocumentSyncFull,
				HoverProvider:              true,
				FoldingRangeProvider:       true,
				DocumentFormattingProvider: true,
				SemanticTokensProvider: &SemanticTokensOptions{
					Legend: SemanticTokensLegend{
						TokenTypes:     SemanticTokenTypes,
						TokenModifiers: []string{},
					},
					Full: true,
				},
			},
		},
	}

	res.Result.ServerInfo.Name = lspName
	res.Result.ServerInfo.Version = lspVersion

	logging.Get().WithFields(logging.Fields{
		"client":   req.Params.ClientInfo.Name,
		"root_uri": req.Params.RootUri,
	}).Info("initialize")

	return marshal(res), req.Params.RootUri
}

// ProcessShutdownRequest handles the shutdown request.
func ProcessShutdownRequest(requestId ID) []byte {
	return marshal(ResponseMessage[any]{
		JsonRpc: JSONRPCVersion,
		Id:      requestId,
	})
}

// ProcessIllegalRequestAfterShutdown returns an error for requests after shutdown.
func ProcessIllegalRequestAfterShutdown(requestId ID) []byte {
	return ProcessErrorResponse(requestId, ErrorInvalidRequest, "illegal request while server shutting down")
}

// DidOpenTextDocumentParams holds parameters for textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// ProcessDidOpenTextDocumentNotification handles textDocument/didOpen.
func ProcessDidOpenTextDocumentNotification(data []byte) (item TextDocumentItem, err error) {
	request := RequestMessage[DidOpenTextDocumentParams]{}
	if err := json.Unmarshal(data, &request); err != nil {
		return item, err
	}

	return request.Params.TextDocument, nil
}

// TextDocumentContentChangeEvent represents a content change event.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// DidChangeTextDocumentParams holds parameters for textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   TextDocumentItem                 `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// ProcessDidChangeTextDocumentNotification handles textDocument/didChange.
// Only full document sync is supported: the last change holds the text.
func ProcessDidChangeTextDocumentNotification(data []byte) (item TextDocumentItem, err error) {
	var request RequestMessage[DidChangeTextDocumentParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return item, err
	}

	changes := request.Params.ContentChanges
	if len(changes) == 0 {
		return item, errors.New("'contentChanges' field is empty")
	}

	last := changes[len(changes)-1]
	if last.Range != nil {
		return item, errors.New("incremental changes are not supported")
	}

	item = request.Params.TextDocument
	item.Text = last.Text

	return item, nil
}

// DidCloseTextDocumentParams holds parameters for textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// ProcessDidCloseTextDocumentNotification handles textDocument/didClose.
func ProcessDidCloseTextDocumentNotification(data []byte) (uri string, err error) {
	var request RequestMessage[DidCloseTextDocumentParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return "", err
	}

	return request.Params.TextDocument.Uri, nil
}

// ProcessDiagnostics builds the publishDiagnostics notification for uri. A
// <nil> doc clears the diagnostics.
func ProcessDiagnostics(uri string, doc *Document) []byte {
	notification := NotificationMessage[PublishDiagnosticsParams]{
		JsonRpc: JSONRPCVersion,
		Method:  MethodPublishDiagnostics,
		Params: PublishDiagnosticsParams{
			Uri:         uri,
			Diagnostics: []Diagnostic{},
		},
	}

	if doc == nil {
		return marshal(notification)
	}

	version := doc.Version
	notification.Params.Version = &version

	for _, err := range doc.Errs {
		if err == nil {
			msg := "nil should not be in the error list"
			logging.Get().Error(msg)
			panic(msg)
		}

		notification.Params.Diagnostics = append(notification.Params.Diagnostics, Diagnostic{
			Message:  err.GetError(),
			Range:    ConvertParserRangeToLspRange(err.GetRange()),
			Severity: SeverityError,
			Source:   "lison",
		})
	}

	return marshal(notification)
}

// ProcessHoverRequest handles textDocument/hover.
func ProcessHoverRequest(data []byte, docs *Documents) []byte {
	var request RequestMessage[TextDocumentPositionParams]
	if err := json.Unmarshal(data, &request); err != nil {
		return invalidParams(request.Id, MethodHover, err)
	}

	type HoverResult struct {
		Contents MarkupContent `json:"contents"`
		Range    Range         `json:"range"`
	}

	response := ResponseMessage[*HoverResult]{
		JsonRpc: JSONRPCVersion,
		Id:      request.Id,
	}

	doc := docs.Get(request.Params.TextDocument.Uri)
	if doc == nil || doc.Root == nil {
		return marshal(response)
	}

	position := lexer.Position{
		Line:      uintToInt(request.Params.Position.Line),
		Character: uintToInt(request.Params.Position.Character),
	}

	text, reach := lison.Hover(doc.Root, position)
	if text != "" {
		response.Result = &HoverResult{
			Contents: MarkupContent{Kind: "markdown", Value: text},
			Range:    ConvertParserRangeToLspRange(reach),
		}
	}

	return marshal(response)
}

// FoldingRangeParams holds parameters for textDocument/foldingRange.
type FoldingRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// FoldingRangeResult represents a folding range.
type FoldingRangeResult struct {
	StartLine uint   `json:"startLine"`
	EndLine   uint   `json:"endLine"`
	Kind      string `json:"kind"`
}

// ProcessFoldingRangeRequest handles textDocument/foldingRange.
func ProcessFoldingRangeRequest(data []byte, docs *Documents) []byte {
	var req RequestMessage[FoldingRangeParams]
	if err := json.Unmarshal(data, &req); err != nil {
		return invalidParams(req.Id, MethodFoldingRange, err)
	}

	res := ResponseMessage[[]FoldingRangeResult]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
		Result:  []FoldingRangeResult{},
	}

	doc := docs.Get(req.Params.TextDocument.Uri)
	if doc == nil {
		return marshal(res)
	}

	for _, fold := range lison.FoldingRanges(doc.Root, doc.Stream) {
		res.Result = append(res.Result, FoldingRangeResult{
			StartLine: intToUint(fold.StartLine),
			EndLine:   intToUint(fold.EndLine),
			Kind:      fold.Kind,
		})
	}

	return marshal(res)
}

// DocumentFormattingParams holds parameters for textDocument/formatting.
// Formatting options are ignored: the layout is fixed.
type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// ProcessFormattingRequest handles textDocument/formatting. A document that
// does not compile gets a <nil> result.
func ProcessFormattingRequest(data []byte, docs *Documents) []byte {
	var req RequestMessage[DocumentFormattingParams]
	if err := json.Unmarshal(data, &req); err != nil {
		return invalidParams(req.Id, MethodFormatting, err)
	}

	res := ResponseMessage[[]TextEdit]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
	}

	doc := docs.Get(req.Params.TextDocument.Uri)
	if doc == nil || len(doc.Errs) > 0 {
		return marshal(res)
	}

	formatted, err := format.Source(doc.URI, doc.Content)
	if err != nil {
		logging.Get().WithField("uri", doc.URI).Warnf("formatting failed: %v", err)
		return marshal(res)
	}

	res.Result = []TextEdit{}
	if !bytes.Equal(formatted, doc.Content) {
		end := lexer.ConvertSingleIndexToTextEditorPosition(doc.Content, len(doc.Content))
		res.Result = append(res.Result, TextEdit{
			Range:   Range{End: convertPosition(end)},
			NewText: string(formatted),
		})
	}

	return marshal(res)
}

// SemanticTokensParams holds parameters for textDocument/semanticTokens/full.
type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type SemanticTokensResult struct {
	Data []uint `json:"data"`
}

// ProcessSemanticTokensRequest handles textDocument/semanticTokens/full. The
// stream is available even for documents that do not compile.
func ProcessSemanticTokensRequest(data []byte, docs *Documents) []byte {
	var req RequestMessage[SemanticTokensParams]
	if err := json.Unmarshal(data, &req); err != nil {
		return invalidParams(req.Id, MethodSemanticTokensFull, err)
	}

	res := ResponseMessage[SemanticTokensResult]{
		JsonRpc: JSONRPCVersion,
		Id:      req.Id,
		Result:  SemanticTokensResult{Data: []uint{}},
	}

	if doc := docs.Get(req.Params.TextDocument.Uri); doc != nil {
		res.Result.Data = EncodeSemanticTokens(lison.SemanticTokens(doc.Stream))
	}

	return marshal(res)
}

// EncodeSemanticTokens packs tokens as relative five-integer groups: line
// delta, start delta, length, type and modifiers.
func EncodeSemanticTokens(tokens []lison.SemanticToken) []uint {
	data := make([]uint, 0, 5*len(tokens))
	prevLine, prevChar := 0, 0

	for _, tok := range tokens {
		line := tok.Range.Start.Line
		char := tok.Range.Start.Character

		deltaChar := char
		if line == prevLine {
			deltaChar = char - prevChar
		}

		data = append(data,
			intToUint(line-prevLine),
			intToUint(deltaChar),
			intToUint(tok.Range.End.Character-char),
			intToUint(int(tok.Type)),
			0,
		)

		prevLine, prevChar = line, char
	}

	return data
}
