package document

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StaticSource serves one fixed HTML document. WaitChange reports false
// immediately: a static document is already settled, so locate calls on it
// never block.
type StaticSource struct {
	doc *goquery.Document
	err error
}

// NewStaticSource parses html once and serves it for every snapshot.
func NewStaticSource(html string) *StaticSource {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	return &StaticSource{doc: doc, err: err}
}

// Snapshot returns the parsed document.
func (s *StaticSource) Snapshot(ctx context.Context) (*goquery.Document, error) {
	if s.err != nil {
		return nil, &SnapshotError{Message: "failed to parse HTML", Cause: s.err}
	}
	return s.doc, nil
}

// WaitChange always reports false; the document never changes.
func (s *StaticSource) WaitChange(ctx context.Context) bool {
	return false
}
