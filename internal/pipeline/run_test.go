package pipeline

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooperrobillard/linkedin-note/internal/llm"
	"github.com/cooperrobillard/linkedin-note/internal/prompts"
	"github.com/cooperrobillard/linkedin-note/internal/ratelimit"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

type completion struct {
	texts []string
	err   error
}

// fakeCompleter serves a scripted sequence of completions, repeating the last
// one. An optional gate blocks each call until released.
type fakeCompleter struct {
	mu     sync.Mutex
	script []completion
	calls  int
	gate   chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, _ prompts.Prompt, _ int) ([]string, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.script) {
		i = len(f.script) - 1
	}
	f.calls++
	c := f.script[i]
	return c.texts, c.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func generationRequest() *types.GenerationRequest {
	return &types.GenerationRequest{
		Name:                    "Jane Doe",
		FirstName:               "Jane",
		Company:                 "Acme Corp",
		IncludeCompany:          true,
		CompanyInterestTemplate: "Strong interest in {{company}}.",
		IdentityLine:            "I'm a current Boston College student.",
		Tone:                    types.ToneNeutral,
		DetailHint:              "Software Engineer at Acme Corp",
	}
}

func fastOrchestrator(completer llm.Completer) *Orchestrator {
	o := NewOrchestrator(completer, nil)
	o.RetryDelay = time.Millisecond
	return o
}

func TestGenerateSuccess(t *testing.T) {
	fake := &fakeCompleter{script: []completion{{texts: []string{
		"Hi Jane, your pipeline work is impressive.",
		"Hi Jane, Acme Corp looks like a great team.",
		"Hi Jane, loved your recent post.",
	}}}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	require.False(t, result.Failed())
	assert.Len(t, result.Variants, 3)
	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, 1, fake.callCount())
	for _, v := range result.Variants {
		assert.True(t, strings.HasPrefix(v.Text, "Hi Jane, I'm a current Boston College student."), "got %q", v.Text)
	}
}

func TestGenerateNoCredential(t *testing.T) {
	result := fastOrchestrator(nil).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindNoCredential, result.Kind)
	assert.True(t, result.Failed())
	require.Len(t, result.Variants, 1)
	assert.Contains(t, result.Variants[0].Text, "Acme Corp", "fallback still references the profile")
}

func TestGenerateRetriesRateLimitOnce(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.RateLimitError{Body: "throttled"}},
		{texts: []string{"Hi Jane, great work."}},
	}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.False(t, result.Failed())
	assert.Equal(t, 2, fake.callCount())
}

func TestGenerateRateLimitedTwice(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.RateLimitError{Body: "throttled"}},
	}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindHTTPError, result.Kind)
	assert.Equal(t, http.StatusTooManyRequests, result.HTTPStatus)
	assert.Equal(t, 2, fake.callCount(), "a plain 429 is retried exactly once")
	require.Len(t, result.Variants, 1, "the fallback variant is always present")
}

func TestGenerateQuotaExhaustedDoesNotRetry(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.RateLimitError{Body: "quota", QuotaExhausted: true}},
	}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindQuotaExhausted, result.Kind)
	assert.Equal(t, http.StatusTooManyRequests, result.HTTPStatus)
	assert.Equal(t, 1, fake.callCount(), "quota exhaustion never retries")
}

func TestGenerateHTTPError(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.HTTPError{Status: http.StatusInternalServerError, Body: "boom"}},
	}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindHTTPError, result.Kind)
	assert.Equal(t, http.StatusInternalServerError, result.HTTPStatus)
	assert.Equal(t, 1, fake.callCount())
}

func TestGenerateTransportError(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.TransportError{Cause: errors.New("connection refused")}},
	}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindTransportError, result.Kind)
	assert.Contains(t, result.Detail, "connection refused")
}

func TestGenerateTimeout(t *testing.T) {
	fake := &fakeCompleter{script: []completion{{texts: []string{"late"}}}, gate: make(chan struct{})}

	o := fastOrchestrator(fake)
	o.RemoteTimeout = 10 * time.Millisecond
	result := o.Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindTimeout, result.Kind)
	require.Len(t, result.Variants, 1)
}

func TestGenerateEmptyCompletionFallsBack(t *testing.T) {
	fake := &fakeCompleter{script: []completion{{texts: nil}}}

	result := fastOrchestrator(fake).Generate(context.Background(), generationRequest())

	assert.Equal(t, types.KindTransportError, result.Kind)
	require.Len(t, result.Variants, 1)
}

func TestGenerateNormalizesGuidance(t *testing.T) {
	fake := &fakeCompleter{script: []completion{{texts: []string{"Hi Jane, hello."}}}}
	req := generationRequest()
	req.UserGuidance = "bc alum outreach"

	fastOrchestrator(fake).Generate(context.Background(), req)

	assert.Equal(t, "BC alumni connection (sender is a current BC student) outreach", req.UserGuidance)
}

func TestGenerateRetryAdvancesSpacer(t *testing.T) {
	fake := &fakeCompleter{script: []completion{
		{err: &llm.RateLimitError{Body: "throttled"}},
		{texts: []string{"Hi Jane, great work."}},
	}}
	o := fastOrchestrator(fake)
	o.RetryDelay = 60 * time.Millisecond
	o.Spacer = ratelimit.NewSpacer(50 * time.Millisecond)

	result := o.Generate(context.Background(), generationRequest())
	require.False(t, result.Failed())
	require.Equal(t, 2, fake.callCount())

	// The retry dispatch happened just now, so a fresh acquisition must see
	// most of the gap still outstanding. If only the first attempt advanced
	// the clock, the retry delay alone would have drained it.
	wait := o.Spacer.TryAcquire(time.Now())
	assert.Greater(t, wait, 20*time.Millisecond, "the retry dispatch must advance the spacing clock")
}

func TestGenerateHonorsSpacer(t *testing.T) {
	fake := &fakeCompleter{script: []completion{{texts: []string{"Hi Jane, hello."}}}}
	o := fastOrchestrator(fake)
	o.Spacer = ratelimit.NewSpacer(60 * time.Millisecond)

	start := time.Now()
	o.Generate(context.Background(), generationRequest())
	o.Generate(context.Background(), generationRequest())
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 55*time.Millisecond, "back-to-back runs must be spaced apart")
}
