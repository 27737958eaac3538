// Package pipeline orchestrates one note-generation run: pacing, the remote
// call with its retry policy, candidate repair and ranking, and the fallback
// that guarantees at least one variant no matter how the remote side fails.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cooperrobillard/linkedin-note/internal/llm"
	"github.com/cooperrobillard/linkedin-note/internal/prompts"
	"github.com/cooperrobillard/linkedin-note/internal/ranking"
	"github.com/cooperrobillard/linkedin-note/internal/ratelimit"
	"github.com/cooperrobillard/linkedin-note/internal/repair"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// Defaults for one generation run.
const (
	DefaultNumCandidates = 3
	DefaultRemoteTimeout = 15 * time.Second
	DefaultRetryDelay    = 900 * time.Millisecond
)

// Orchestrator runs the generate pipeline. A nil Completer means no
// credential is configured; every run then short-circuits to the template
// fallback without touching the network or the spacer.
type Orchestrator struct {
	Completer llm.Completer
	Spacer    *ratelimit.Spacer
	Polisher  *repair.Polisher

	NumCandidates int
	RemoteTimeout time.Duration
	RetryDelay    time.Duration
	Verbose       bool
}

// NewOrchestrator wires an orchestrator with default knobs.
func NewOrchestrator(completer llm.Completer, spacer *ratelimit.Spacer) *Orchestrator {
	return &Orchestrator{
		Completer:     completer,
		Spacer:        spacer,
		Polisher:      repair.NewPolisher(),
		NumCandidates: DefaultNumCandidates,
		RemoteTimeout: DefaultRemoteTimeout,
		RetryDelay:    DefaultRetryDelay,
	}
}

// Generate runs one request through the full pipeline. The result always
// carries at least one variant; failures surface as a kind plus the template
// fallback, never as a bare error.
func (o *Orchestrator) Generate(ctx context.Context, req *types.GenerationRequest) *types.GenerationResult {
	requestID := uuid.New().String()

	req.UserGuidance = prompts.NormalizeGuidance(req.UserGuidance)
	focus := prompts.DetectFocus(req.UserGuidance)

	if o.Completer == nil {
		if o.Verbose {
			log.Printf("[PIPELINE] request %s: no credential, template fallback", requestID)
		}
		return o.fallback(req, requestID, types.KindNoCredential, "no API key configured", 0)
	}

	prompt := prompts.Build(req)

	if err := o.pace(ctx, requestID); err != nil {
		return o.fallback(req, requestID, types.KindTimeout, "canceled while pacing", 0)
	}

	texts, err := o.complete(ctx, prompt, requestID)
	if err != nil {
		kind, detail, status := classify(err)
		log.Printf("[PIPELINE] request %s: remote call failed (%s): %s", requestID, kind, detail)
		return o.fallback(req, requestID, kind, detail, status)
	}
	if len(texts) == 0 {
		log.Printf("[PIPELINE] request %s: remote call returned no candidates", requestID)
		return o.fallback(req, requestID, types.KindTransportError, "empty completion", 0)
	}

	ranked := ranking.ByFocus(texts, focus, req.ProfileSummary)
	variants := make([]types.Variant, 0, len(ranked))
	for _, text := range ranked {
		variants = append(variants, o.Polisher.Polish(text, req))
	}
	if o.Verbose {
		log.Printf("[PIPELINE] request %s: %d variant(s), focus=%s", requestID, len(variants), focus)
	}
	return &types.GenerationResult{Variants: variants, RequestID: requestID}
}

// pace advances the shared spacing clock for one call attempt and sleeps out
// any remaining gap. Every dispatch goes through here, the rate-limit retry
// included, so the next run spaces itself from the most recent attempt.
func (o *Orchestrator) pace(ctx context.Context, requestID string) error {
	if o.Spacer == nil {
		return nil
	}
	wait := o.Spacer.TryAcquire(time.Now())
	if wait <= 0 {
		return nil
	}
	if o.Verbose {
		log.Printf("[PIPELINE] request %s: pacing wait %s", requestID, wait)
	}
	return sleepCtx(ctx, wait)
}

// complete dispatches the remote call under the per-call timeout, retrying a
// rate-limited call exactly once after the retry delay.
func (o *Orchestrator) complete(ctx context.Context, prompt prompts.Prompt, requestID string) ([]string, error) {
	texts, err := o.completeOnce(ctx, prompt)

	var rle *llm.RateLimitError
	if errors.As(err, &rle) && !rle.QuotaExhausted {
		if serr := sleepCtx(ctx, o.retryDelay()); serr != nil {
			return nil, err
		}
		if serr := o.pace(ctx, requestID); serr != nil {
			return nil, err
		}
		texts, err = o.completeOnce(ctx, prompt)
	}
	return texts, err
}

func (o *Orchestrator) completeOnce(ctx context.Context, prompt prompts.Prompt) ([]string, error) {
	timeout := o.RemoteTimeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	n := o.NumCandidates
	if n < 1 {
		n = DefaultNumCandidates
	}
	return o.Completer.Complete(callCtx, prompt, n)
}

func (o *Orchestrator) retryDelay() time.Duration {
	if o.RetryDelay > 0 {
		return o.RetryDelay
	}
	return DefaultRetryDelay
}

// fallback polishes the deterministic template note so even the failure path
// yields a well-formed variant.
func (o *Orchestrator) fallback(req *types.GenerationRequest, requestID string, kind types.ErrorKind, detail string, status int) *types.GenerationResult {
	variant := o.Polisher.Polish(repair.TemplateNote(req), req)
	return &types.GenerationResult{
		Variants:   []types.Variant{variant},
		Kind:       kind,
		Detail:     detail,
		HTTPStatus: status,
		RequestID:  requestID,
	}
}

// classify maps a remote-call error onto the result kind the caller keys its
// messaging on.
func classify(err error) (types.ErrorKind, string, int) {
	var rle *llm.RateLimitError
	if errors.As(err, &rle) {
		if rle.QuotaExhausted {
			return types.KindQuotaExhausted, "API quota exhausted", http.StatusTooManyRequests
		}
		return types.KindHTTPError, "rate limited after retry", http.StatusTooManyRequests
	}

	var he *llm.HTTPError
	if errors.As(err, &he) {
		return types.KindHTTPError, fmt.Sprintf("endpoint returned %d: %s", he.Status, he.Body), he.Status
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindTimeout, "remote call timed out", 0
	}

	var te *llm.TransportError
	if errors.As(err, &te) {
		if errors.Is(te.Cause, context.DeadlineExceeded) {
			return types.KindTimeout, "remote call timed out", 0
		}
		return types.KindTransportError, te.Cause.Error(), 0
	}
	return types.KindTransportError, err.Error(), 0
}

// sleepCtx sleeps for d or until the context ends, whichever is first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
