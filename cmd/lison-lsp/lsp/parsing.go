package lsp

// Based on https://github.com/yayolande/go-template-lsp (MIT License)

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"sync"
)

// ReceiveInput creates a scanner that decodes LSP messages from an input stream.
func ReceiveInput(input io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)
	scanner.Split(decode)

	return scanner
}

// Writer sends framed messages. It is safe for concurrent use: the request
// loop and the diagnostics worker share one.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Send encodes response and writes it in one call.
func (w *Writer) Send(response []byte) error {
	framed := Encode(response)

	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.out.Write(framed)

	return err
}

// Encode wraps data with Content-Length header per LSP specification.
func Encode(dataContent []byte) []byte {
	length := strconv.Itoa(len(dataContent))
	dataHeader := []byte(ContentLengthHeader + ": " + length + HeaderDelimiter)
	dataHeader = append(dataHeader, dataContent...)

	return dataHeader
}

// decode is a bufio.SplitFunc that parses LSP messages.
func decode(data []byte, atEOF bool) (advance int, token []byte, err error) {
	indexStartData := bytes.Index(data, []byte(HeaderDelimiter))
	if indexStartData == -1 {
		if atEOF && len(bytes.TrimSpace(data)) > 0 {
			return 0, nil, errors.New("unexpected end of input inside a message header")
		}
		return 0, nil, nil
	}

	contentLength, err := getHeaderContentLength(data[:indexStartData])
	if err != nil {
		return 0, nil, err
	}

	indexStartData += len(HeaderDelimiter)
	indexEndData := indexStartData + contentLength

	if len(data) < indexEndData {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}

	return indexEndData, data[indexStartData:indexEndData], nil
}

// getHeaderContentLength extracts the Content-Length value from LSP headers.
func getHeaderContentLength(data []byte) (int, error) {
	indexHeader := bytes.LastIndex(data, []byte(ContentLengthHeader))
	if indexHeader == -1 {
		return -1, errors.New("unable to find '" + ContentLengthHeader + "' header")
	}

	indexLineSeparator := bytes.Index(data[indexHeader:], []byte(LineDelimiter))
	if indexLineSeparator >= 0 {
		indexLineSeparator += indexHeader
	} else {
		indexLineSeparator = len(data)
	}

	indexKeyValueSeparator := bytes.Index(data[indexHeader:indexLineSeparator], []byte(":"))
	if indexKeyValueSeparator == -1 {
		return -1, errors.New("malformed '" + ContentLengthHeader + "' header: missing ':'")
	}

	indexKeyValueSeparator += indexHeader

	contentLengthString := bytes.TrimSpace(data[indexKeyValueSeparator+1 : indexLineSeparator])

	contentLength, err := strconv.Atoi(string(contentLengthString))
	if err != nil {
		return -1, errors.New("malformed '" + ContentLengthHeader + "' header: value is not an integer")
	}

	if contentLength < 0 {
		return -1, errors.New("'" + ContentLengthHeader + "' cannot be negative")
	}

	if contentLength > MaxMessageSize {
		return -1, errors.New("'" + ContentLengthHeader + "' exceeds the maximum message size")
	}

	return contentLength, nil
}
