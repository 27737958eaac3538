package document

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// defaultPollInterval is how often the browser source re-snapshots the live
// page while a locate call is waiting for it to render.
const defaultPollInterval = 250 * time.Millisecond

// BrowserSource snapshots a live page through a headless browser. Profile
// pages render progressively, so successive snapshots differ until the page
// settles; the locator re-tests its selectors on each one.
// Requires Chrome/Chromium to be installed on the system.
type BrowserSource struct {
	browserCtx   context.Context
	cancel       []context.CancelFunc
	pollInterval time.Duration
	verbose      bool
}

// BrowserOptions configures a BrowserSource.
type BrowserOptions struct {
	// NavigateTimeout bounds the initial navigation. Zero means 30s.
	NavigateTimeout time.Duration
	// PollInterval is the delay between live snapshots. Zero means 250ms.
	PollInterval time.Duration
	Verbose      bool
}

// NewBrowserSource starts a headless browser, navigates to url and waits for
// the body element before returning.
func NewBrowserSource(ctx context.Context, url string, opts BrowserOptions) (*BrowserSource, error) {
	navTimeout := opts.NavigateTimeout
	if navTimeout <= 0 {
		navTimeout = 30 * time.Second
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	src := &BrowserSource{
		browserCtx:   browserCtx,
		cancel:       []context.CancelFunc{cancelBrowser, cancelAlloc},
		pollInterval: poll,
		verbose:      opts.Verbose,
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, navTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		src.Close()
		return nil, &SnapshotError{Message: "navigation failed", Cause: err}
	}
	if opts.Verbose {
		log.Printf("[BROWSER] navigated to %s", url)
	}
	return src, nil
}

// Snapshot grabs the current rendered HTML and parses it.
func (s *BrowserSource) Snapshot(ctx context.Context) (*goquery.Document, error) {
	var html string
	if err := chromedp.Run(s.browserCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, &SnapshotError{Message: "failed to read rendered HTML", Cause: err}
	}
	if s.verbose {
		log.Printf("[BROWSER] snapshot: %d bytes", len(html))
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &SnapshotError{Message: "failed to parse rendered HTML", Cause: err}
	}
	return doc, nil
}

// WaitChange sleeps one poll interval. The live page may always change
// again, so it reports true until ctx is done.
func (s *BrowserSource) WaitChange(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.pollInterval):
		return true
	}
}

// Close shuts the browser down.
func (s *BrowserSource) Close() {
	for _, cancel := range s.cancel {
		cancel()
	}
}
