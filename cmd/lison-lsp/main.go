// Command lison-lsp provides a Language Server Protocol server for LISON
// documents over stdio.
//
// Based on https://github.com/yayolande/go-template-lsp (MIT License)
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/pacer/lison/cmd/lison-lsp/lsp"
	"github.com/pacer/lison/internal/logging"
	"github.com/pacer/lison/internal/metrics"
)

// version is set by goreleaser at build time.
var version = "dev"

const (
	serverName = "LISON LSP"

	maxLogFileSize = 5_000_000
)

var (
	errExitBeforeShutdown = errors.New("exit received before shutdown")
	errInputClosed        = errors.New("client input closed before exit")
)

func main() {
	versionFlag := pflag.Bool("version", false, "print the LSP version")
	logLevel := pflag.String("log-level", "info", "set log level: debug, info, warn or error")
	logFile := pflag.String("log-file", "", "write logs to this file instead of the user cache dir")
	pflag.Parse()

	if *versionFlag {
		fmt.Printf("%s -- version %s\n", serverName, version)
		os.Exit(0)
	}

	file, err := configureLogging(*logFile, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer file.Close()

	s := newServer(os.Stdout)
	if err := s.Run(os.Stdin); err != nil {
		logging.Get().Errorf("lsp server stopped: %v", err)
		file.Close()
		os.Exit(1)
	}
}

// server answers the requests read by Run. Document state lives in docs;
// diagnostics are sent by a separate goroutine.
type server struct {
	out     *lsp.Writer
	docs    *lsp.Documents
	metrics metrics.Metrics

	mu      sync.Mutex
	pending map[string]struct{}
	notify  chan struct{}

	shuttingDown bool
	rootURI      string
}

func newServer(out io.Writer) *server {
	m := metrics.New()

	return &server{
		out:     lsp.NewWriter(out),
		docs:    lsp.NewDocuments(m),
		metrics: m,
		pending: make(map[string]struct{}),
		notify:  make(chan struct{}, 1),
	}
}

// Run serves messages from in until the client exits. It returns <nil> only
// for an exit following a shutdown request.
func (s *server) Run(in io.Reader) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.publishDiagnostics()
	}()

	defer func() {
		close(s.notify)
		wg.Wait()

		logging.Get().WithFields(logging.Fields{
			"root_uri":   s.rootURI,
			"open_files": s.docs.URIs(),
			"metrics":    s.metrics.All(),
		}).Info("shutting down lsp server")
	}()

	logging.Get().WithFields(logging.Fields{
		"server_name":    serverName,
		"server_version": version,
	}).Info("starting lsp server")

	scanner := lsp.ReceiveInput(in)

	for scanner.Scan() {
		exit, err := s.handle(scanner.Bytes())
		if err != nil {
			return err
		}

		if exit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading client input: %w", err)
	}

	return errInputClosed
}

// handle processes one message. exit reports a well-formed exit notification.
func (s *server) handle(data []byte) (exit bool, err error) {
	var envelope lsp.Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		logging.Get().Warnf("dropping malformed message: %v", err)
		return false, nil
	}

	method := envelope.Method
	isRequest := envelope.Id != nil

	if s.shuttingDown {
		if method == lsp.MethodExit {
			return true, nil
		}

		if isRequest {
			return false, s.out.Send(lsp.ProcessIllegalRequestAfterShutdown(*envelope.Id))
		}

		return false, nil
	}

	start := time.Now()
	defer func() {
		s.metrics.Counter("lsp_" + method).Incr()
		s.metrics.Histogram(metrics.LSPRequest).Update(time.Since(start).Nanoseconds())
	}()

	logging.Get().WithField("method", method).Debug("request")

	var response []byte

	switch method {
	case lsp.MethodInitialize:
		response, s.rootURI = lsp.ProcessInitializeRequest(data, serverName, version)

	case lsp.MethodInitialized:

	case lsp.MethodShutdown:
		s.shuttingDown = true
		if isRequest {
			response = lsp.ProcessShutdownRequest(*envelope.Id)
		}

	case lsp.MethodExit:
		return false, errExitBeforeShutdown

	case lsp.MethodDidOpen:
		item, err := lsp.ProcessDidOpenTextDocumentNotification(data)
		s.updateDocument(method, item, err)

	case lsp.MethodDidChange:
		item, err := lsp.ProcessDidChangeTextDocumentNotification(data)
		s.updateDocument(method, item, err)

	case lsp.MethodDidClose:
		uri, err := lsp.ProcessDidCloseTextDocumentNotification(data)
		if err != nil {
			logging.Get().WithField("method", method).Warnf("invalid params: %v", err)
			break
		}

		s.docs.Remove(uri)
		s.queueDiagnostics(uri)

	case lsp.MethodHover:
		response = lsp.ProcessHoverRequest(data, s.docs)

	case lsp.MethodFoldingRange:
		response = lsp.ProcessFoldingRangeRequest(data, s.docs)

	case lsp.MethodFormatting:
		response = lsp.ProcessFormattingRequest(data, s.docs)

	case lsp.MethodSemanticTokensFull:
		response = lsp.ProcessSemanticTokensRequest(data, s.docs)

	default:
		if isRequest {
			response = lsp.ProcessErrorResponse(*envelope.Id, lsp.ErrorMethodNotFound, "method not found: "+method)
		}
	}

	if isRequest && response != nil {
		return false, s.out.Send(response)
	}

	return false, nil
}

func (s *server) updateDocument(method string, item lsp.TextDocumentItem, err error) {
	if err != nil {
		logging.Get().WithField("method", method).Warnf("invalid params: %v", err)
		return
	}

	doc, changed := s.docs.Update(item.Uri, item.Version, []byte(item.Text))

	logging.Get().WithFields(logging.Fields{
		"uri":     doc.URI,
		"version": doc.Version,
		"changed": changed,
		"errors":  len(doc.Errs),
	}).Debug("document updated")

	s.queueDiagnostics(item.Uri)
}

// queueDiagnostics marks uri for publishing. Several updates arriving before
// the worker wakes up produce a single notification per document.
func (s *server) queueDiagnostics(uri string) {
	s.mu.Lock()
	s.pending[uri] = struct{}{}
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// publishDiagnostics runs until notify is closed.
func (s *server) publishDiagnostics() {
	for range s.notify {
		s.mu.Lock()
		uris := slices.Sorted(maps.Keys(s.pending))
		clear(s.pending)
		s.mu.Unlock()

		for _, uri := range uris {
			notification := lsp.ProcessDiagnostics(uri, s.docs.Get(uri))

			if err := s.out.Send(notification); err != nil {
				logging.Get().WithField("uri", uri).Warnf("unable to publish diagnostics: %v", err)
			}
		}
	}
}

// createLogFile opens path for appending, truncating it once it grows past
// maxLogFileSize. An empty path selects the user cache dir.
func createLogFile(path string) (*os.File, error) {
	if path == "" {
		userCachePath, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("locating log directory: %w", err)
		}

		appCachePath := filepath.Join(userCachePath, "lison-lsp")
		if err := os.MkdirAll(appCachePath, 0o750); err != nil {
			return nil, err
		}

		path = filepath.Join(appCachePath, "lison-lsp.log")
	}

	flags := os.O_APPEND | os.O_CREATE | os.O_WRONLY

	if info, err := os.Stat(path); err == nil && info.Size() >= maxLogFileSize {
		flags = os.O_TRUNC | os.O_CREATE | os.O_WRONLY
	}

	//nolint:gosec // log file path comes from the user or the cache dir
	return os.OpenFile(path, flags, 0o600)
}

func configureLogging(path, level string) (*os.File, error) {
	file, err := createLogFile(path)
	if err != nil {
		return nil, err
	}

	logger := logging.Get()
	logger.SetOutput(file)

	if err := logger.SetFormat("json"); err != nil {
		file.Close()
		return nil, err
	}

	if err := logger.SetLevel(level); err != nil {
		file.Close()
		return nil, err
	}

	return file, nil
}
