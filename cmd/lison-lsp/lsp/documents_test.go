package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pacer/lison/internal/metrics"
)

func TestDocuments_Update(t *testing.T) {
	m := metrics.New()
	docs := NewDocuments(m)

	doc, changed := docs.Update("file:///a.lison", 1, []byte("(:a 1)"))
	if !changed || doc.Root == nil || len(doc.Errs) != 0 {
		t.Fatalf("Expected a compiled document, got %+v", doc)
	}

	same, changed := docs.Update("file:///a.lison", 2, []byte("(:a 1)"))
	if changed {
		t.Error("Expected identical content not to be compiled again")
	}

	if same.Version != 2 || same.Root != doc.Root || doc.Version != 1 {
		t.Errorf("Expected a new version sharing the tree, got %+v (previous %+v)", same, doc)
	}

	broken, changed := docs.Update("file:///a.lison", 3, []byte("(:a"))
	if !changed || broken.Root != nil || len(broken.Errs) != 1 {
		t.Errorf("Expected one error, got %+v", broken)
	}

	if got := docs.Get("file:///a.lison"); got != broken {
		t.Errorf("Expected the latest document, got %+v", got)
	}

	all := m.All()
	if _, ok := all["timer_lison_tokenize_ns"]; !ok {
		t.Errorf("Expected tokenize timings, got %v", all)
	}
}

func TestDocuments_Remove(t *testing.T) {
	docs := NewDocuments(nil)

	docs.Update("file:///b.lison", 1, []byte("(1)"))
	docs.Update("file:///a.lison", 1, []byte("(2)"))

	if diff := cmp.Diff([]string{"file:///a.lison", "file:///b.lison"}, docs.URIs()); diff != "" {
		t.Errorf("Unexpected URIs (-want +got):\n%s", diff)
	}

	docs.Remove("file:///a.lison")

	if docs.Get("file:///a.lison") != nil {
		t.Error("Expected the document to be removed")
	}

	if diff := cmp.Diff([]string{"file:///b.lison"}, docs.URIs()); diff != "" {
		t.Errorf("Unexpected URIs (-want +got):\n%s", diff)
	}
}
