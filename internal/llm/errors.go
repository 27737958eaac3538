package llm

import "fmt"

// RateLimitError is a 429 from the remote endpoint. QuotaExhausted marks the
// provider code that means the account has no remaining quota, which callers
// present differently from ordinary throttling.
type RateLimitError struct {
	Body           string
	QuotaExhausted bool
}

func (e *RateLimitError) Error() string {
	if e.QuotaExhausted {
		return fmt.Sprintf("remote call rate limited (quota exhausted): %s", e.Body)
	}
	return fmt.Sprintf("remote call rate limited: %s", e.Body)
}

// HTTPError is any other non-2xx response.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("remote call failed with status %d: %s", e.Status, e.Body)
}

// TransportError is a network-level failure: the request never produced an
// HTTP response. An open circuit breaker surfaces here too.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("remote call transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
