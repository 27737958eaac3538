package llm

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects calls after repeated
// transport failures.
var ErrCircuitOpen = errors.New("completion circuit breaker is open")

// newBreaker builds the circuit breaker guarding the remote endpoint. Only
// transport-level failures trip it; HTTP error responses (including 429) are
// application outcomes the orchestrator handles itself and must not poison
// the circuit.
func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "chat-completions",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}
