// Package document locates facts in a loosely structured, progressively
// rendering HTML document. Callers hand it ordered selector lists; it
// re-tests them against successive document snapshots until a match appears
// or a deadline passes.
package document

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultWaitTimeout bounds how long a locate call waits for the document to
// finish rendering.
const DefaultWaitTimeout = 8 * time.Second

// graceMargin is the final re-test window after the timeout elapses; a locate
// call never blocks meaningfully past Timeout + graceMargin.
const graceMargin = 50 * time.Millisecond

// Source yields successive snapshots of a document that may still be
// rendering. Implementations are the static one-shot source and the chromedp
// live source; tests script their own.
type Source interface {
	// Snapshot parses and returns the current document tree.
	Snapshot(ctx context.Context) (*goquery.Document, error)

	// WaitChange blocks until the document may have changed. It returns
	// false when no further changes will ever arrive (a settled document),
	// or when ctx is done.
	WaitChange(ctx context.Context) bool
}

// Text returns the whitespace-normalized text of a selection, or "" for nil.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// FirstMatch returns the first selector in the list that matches an element
// with non-empty normalized text, searching within root. Returns nil when
// nothing matches.
func FirstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	if root == nil {
		return nil
	}
	for _, s := range selectors {
		found := root.Find(s).First()
		if found.Length() > 0 && Text(found) != "" {
			return found
		}
	}
	return nil
}

// FirstMatchDoc is FirstMatch over a whole document.
func FirstMatchDoc(doc *goquery.Document, selectors []string) *goquery.Selection {
	if doc == nil {
		return nil
	}
	return FirstMatch(doc.Selection, selectors)
}

// WaitOptions configures a WaitForAny call.
type WaitOptions struct {
	// Timeout bounds the wait; zero means DefaultWaitTimeout.
	Timeout time.Duration
}

// WaitForAny waits until any selector in the list matches a non-empty
// element, re-testing on every document change. It returns the snapshot in
// which the match was found, or the last available snapshot with matched ==
// false after the timeout. A timed-out wait is "not found", never an error;
// the error return covers snapshot failures only.
//
// Each call is self-contained: calling again after a miss re-scans from a
// fresh snapshot rather than reusing prior state.
func WaitForAny(ctx context.Context, src Source, selectors []string, opts WaitOptions) (*goquery.Document, bool, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}

	doc, err := src.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}
	if FirstMatchDoc(doc, selectors) != nil {
		return doc, true, nil
	}

	deadline := time.Now().Add(timeout)
	waitCtx, cancel := context.WithDeadline(ctx, deadline.Add(graceMargin))
	defer cancel()

	for {
		if !src.WaitChange(waitCtx) {
			break
		}
		next, err := src.Snapshot(ctx)
		if err != nil {
			return doc, false, err
		}
		doc = next
		if FirstMatchDoc(doc, selectors) != nil {
			return doc, true, nil
		}
		if time.Now().After(deadline) {
			break
		}
	}

	// One last look after the wait settles; late renders land here.
	next, err := src.Snapshot(ctx)
	if err != nil {
		return doc, false, err
	}
	doc = next
	if FirstMatchDoc(doc, selectors) != nil {
		return doc, true, nil
	}
	return doc, false, nil
}
