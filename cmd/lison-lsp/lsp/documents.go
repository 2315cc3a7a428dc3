package lsp

import (
	"maps"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/pacer/lison/internal/lison"
	"github.com/pacer/lison/internal/lison/lexer"
	"github.com/pacer/lison/internal/lison/parser"
	"github.com/pacer/lison/internal/metrics"
)

// Document is an open file and its compilation. A Document is never modified
// once stored; an update replaces it.
type Document struct {
	URI     string
	Version int
	Content []byte
	Hash    uint64
	Root    parser.Node
	Stream  *lexer.StreamToken
	Errs    lison.Errors
}

// Documents holds the files opened by the editor, keyed by URI.
type Documents struct {
	mu      sync.RWMutex
	docs    map[string]*Document
	metrics metrics.Metrics
}

func NewDocuments(m metrics.Metrics) *Documents {
	if m == nil {
		m = metrics.NoOp()
	}

	return &Documents{
		docs:    make(map[string]*Document),
		metrics: m,
	}
}

// Update stores content for uri and compiles it. Content hashing to the
// same value as the stored one is not compiled again; changed is then false.
func (d *Documents) Update(uri string, version int, content []byte) (doc *Document, changed bool) {
	hash := xxhash.Sum64(content)

	d.mu.RLock()
	old := d.docs[uri]
	d.mu.RUnlock()

	if old != nil && old.Hash == hash {
		doc = &Document{}
		*doc = *old
		doc.Version = version
		d.store(doc)

		return doc, false
	}

	root, stream, errs := lison.ParseSingleFileWithMetrics(content, d.metrics)

	doc = &Document{
		URI:     uri,
		Version: version,
		Content: content,
		Hash:    hash,
		Root:    root,
		Stream:  stream,
		Errs:    errs,
	}
	d.store(doc)

	return doc, true
}

func (d *Documents) store(doc *Document) {
	d.mu.Lock()
	d.docs[doc.URI] = doc
	d.mu.Unlock()
}

// Get returns the document stored for uri, or <nil>.
func (d *Documents) Get(uri string) *Document {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.docs[uri]
}

func (d *Documents) Remove(uri string) {
	d.mu.Lock()
	delete(d.docs, uri)
	d.mu.Unlock()
}

// URIs lists the open documents, sorted.
func (d *Documents) URIs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Sorted(maps.Keys(d.docs))
}
