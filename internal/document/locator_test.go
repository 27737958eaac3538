package document

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// renderingSource serves a page sequence, reporting a change for every page
// still unserved.
type renderingSource struct {
	mu    sync.Mutex
	pages []string
	i     int
}

func (s *renderingSource) Snapshot(_ context.Context) (*goquery.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return goquery.NewDocumentFromReader(strings.NewReader(s.pages[s.i]))
}

func (s *renderingSource) WaitChange(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.i < len(s.pages)-1 {
		s.i++
		return true
	}
	return false
}

func TestWaitForAnyImmediateMatch(t *testing.T) {
	src := NewStaticSource(`<html><body><h1>Jane</h1></body></html>`)
	doc, matched, err := WaitForAny(context.Background(), src, []string{"h1"}, WaitOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, "Jane", Text(doc.Find("h1")))
}

func TestWaitForAnyTimeoutIsNotAnError(t *testing.T) {
	src := NewStaticSource(`<html><body><p>no heading</p></body></html>`)
	doc, matched, err := WaitForAny(context.Background(), src, []string{"h1"}, WaitOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, matched)
	assert.NotNil(t, doc, "the last snapshot is still returned for best-effort extraction")
}

func TestWaitForAnyMatchesAfterRender(t *testing.T) {
	src := &renderingSource{pages: []string{
		`<html><body></body></html>`,
		`<html><body><div>still loading</div></body></html>`,
		`<html><body><h1>Jane</h1></body></html>`,
	}}
	doc, matched, err := WaitForAny(context.Background(), src, []string{"h1"}, WaitOptions{Timeout: time.Second})
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Equal(t, "Jane", Text(doc.Find("h1")))
}

func TestWaitForAnyIsRestartable(t *testing.T) {
	// The target only renders after the first call has given up; a second
	// call must start from a fresh snapshot and find it.
	src := &renderingSource{pages: []string{
		`<html><body></body></html>`,
		`<html><body><h1>Jane</h1></body></html>`,
	}}

	_, matched, err := WaitForAny(context.Background(), src, []string{"h2"}, WaitOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, matched)

	_, matched, err = WaitForAny(context.Background(), src, []string{"h1"}, WaitOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.True(t, matched)
}

// settledFailingSource serves one good snapshot, settles immediately, then
// fails every later snapshot.
type settledFailingSource struct {
	calls int
}

func (s *settledFailingSource) Snapshot(_ context.Context) (*goquery.Document, error) {
	s.calls++
	if s.calls > 1 {
		return nil, errors.New("render target gone")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(`<html><body></body></html>`))
}

func (s *settledFailingSource) WaitChange(_ context.Context) bool { return false }

func TestWaitForAnyPropagatesLateSnapshotError(t *testing.T) {
	_, matched, err := WaitForAny(context.Background(), &settledFailingSource{}, []string{"h1"}, WaitOptions{Timeout: 20 * time.Millisecond})
	assert.False(t, matched)
	assert.ErrorContains(t, err, "render target gone")
}

func TestWaitForAnyEmptyElementDoesNotMatch(t *testing.T) {
	src := NewStaticSource(`<html><body><h1>   </h1><h2>Jane</h2></body></html>`)
	_, matched, err := WaitForAny(context.Background(), src, []string{"h1"}, WaitOptions{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)
	assert.False(t, matched, "whitespace-only elements are not matches")
}

func TestFirstMatchHonorsPriorityOrder(t *testing.T) {
	doc := parseDoc(t, `<html><body><h2>Second</h2><h1>First</h1></body></html>`)

	sel := FirstMatchDoc(doc, []string{"h1", "h2"})
	assert.Equal(t, "First", Text(sel))

	sel = FirstMatchDoc(doc, []string{"h3", "h2"})
	assert.Equal(t, "Second", Text(sel))

	assert.Nil(t, FirstMatchDoc(doc, []string{"h4"}))
}

func TestText(t *testing.T) {
	doc := parseDoc(t, "<html><body><p>  a  b \n c  </p></body></html>")
	assert.Equal(t, "a b c", Text(doc.Find("p")))
	assert.Equal(t, "", Text(nil))
}
