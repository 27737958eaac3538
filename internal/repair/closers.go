package repair

import "math/rand"

// Closer pools keyed by informality band. The polisher picks within the
// matching pool pseudo-randomly; injecting a seeded source makes the pick
// deterministic in tests.
var (
	closersFormal     = []string{"I would welcome the chance to connect.", "I would appreciate the opportunity to connect."}
	closersNeutral    = []string{"Keen to connect.", "Glad to connect."}
	closersCasual     = []string{"Would be great to connect!", "Keen to connect!"}
	closersVeryCasual = []string{"Let's connect!", "Would love to chat!"}
)

// closerPool maps an informality level (1-10) to its pool. Out-of-range
// levels read as neutral.
func closerPool(informality int) []string {
	switch {
	case informality >= 1 && informality <= 3:
		return closersFormal
	case informality >= 4 && informality <= 6:
		return closersNeutral
	case informality >= 7 && informality <= 8:
		return closersCasual
	case informality >= 9 && informality <= 10:
		return closersVeryCasual
	default:
		return closersNeutral
	}
}

func pickCloser(rng *rand.Rand, informality int) string {
	pool := closerPool(informality)
	return pool[rng.Intn(len(pool))]
}
