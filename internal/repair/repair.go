// Package repair validates and repairs raw candidate notes: it strips
// disallowed claims, removes banned boilerplate, and re-imposes the canonical
// greeting/identity/body/closer structure. The steps run in a fixed order;
// each assumes the previous has run.
package repair

import (
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/cooperrobillard/linkedin-note/internal/extract"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// BannedPhrases are boilerplate closers removed from every candidate via
// literal case-insensitive matching.
var BannedPhrases = []string{
	"so I can learn more",
	"so I can learn more.",
	"so I can learn more about",
	"i'd love to connect and",
	"i would love to connect and",
	"i’d love to connect and",
	"would love to connect and",
	"i'd love to connect",
	"i’d love to connect",
	"connect so I can",
}

var (
	leadingGreetingRe = regexp.MustCompile(`(?i)^\s*(hi|hello|hey)\s+[^,]*,?\s*`)
	leadingJunkRe     = regexp.MustCompile(`^[\s,–—-]+`)

	fellowAlumRe = regexp.MustCompile(`(?i)\bfellow\s+([A-Za-z.&\s]+?)\s+alum(nus|na|ni)?\b`)
	asAlumRe     = regexp.MustCompile(`(?i)\bas\s+(an?\s+)?alum(nus|na|ni)?\b`)
	alumOfRe     = regexp.MustCompile(`(?i)\balum(nus|na|ni)?\s+of\b`)

	schoolEmployerRe = regexp.MustCompile(`(?i)\b(intern(?:ing)?|work(?:ing)?)\s+at\s+[A-Za-z0-9&.,'()\s-]*(?:University|College|School|Institute|Academy)\b([,.;!?])?`)
	schoolInterestRe = regexp.MustCompile(`(?i)\bstrong interest in\s+[A-Za-z0-9&.,'()\s-]*(?:University|College|School|Institute|Academy)\b`)

	connectSpanRe = regexp.MustCompile(`(?is)\b(connect)\b.*\bconnect\b`)

	multiSpaceRe       = regexp.MustCompile(`\s{2,}`)
	spaceBeforePunctRe = regexp.MustCompile(`\s+([,.;!?])`)
	trailingJunkRe     = regexp.MustCompile(`[\s,.–—-]+$`)
	doubleDashRe       = regexp.MustCompile(`—\s*—`)
)

// Polisher repairs raw candidates into finished variants.
type Polisher struct {
	rng *rand.Rand
}

// NewPolisher creates a polisher with a time-seeded random source.
func NewPolisher() *Polisher {
	return NewPolisherWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPolisherWithRand creates a polisher with an injected random source so
// closer selection can be asserted deterministically.
func NewPolisherWithRand(rng *rand.Rand) *Polisher {
	return &Polisher{rng: rng}
}

// Polish runs the full repair pipeline over one raw candidate and returns
// the finished variant. Over-limit text is returned intact with the flag
// set; the caller's counter warns, nothing truncates.
func (p *Polisher) Polish(candidate string, req *types.GenerationRequest) types.Variant {
	s := candidate

	// 1. Drop any greeting the model produced; the canonical one is
	// re-applied at the end.
	s = leadingGreetingRe.ReplaceAllString(s, "")
	s = leadingJunkRe.ReplaceAllString(s, "")

	// 2. Remove identity-line echoes; the canonical assertion is
	// re-inserted once.
	s = stripIdentity(s, req.IdentityLine)

	// 3. The sender is a current student, never an alumnus.
	s = FixAlumniClaims(s)

	// 4. A school is not an employer.
	s = FixSchoolAsEmployer(s)

	// 5-7. Banned boilerplate, repeated "connect", spacing artifacts.
	s = RemoveBannedPhrases(s)
	s = connectSpanRe.ReplaceAllString(s, "$1")
	s = tidy(s)

	// 8. Canonical structure: greeting + identity + one-sentence body +
	// closer.
	body := firstSentence(s)
	if body == "" {
		body = "Good to connect."
	}
	body = ensureTerminal(capitalize(body))

	parts := []string{greeting(req)}
	if req.IdentityLine != "" {
		parts = append(parts, ensureTerminal(req.IdentityLine))
	}
	parts = append(parts, body, pickCloser(p.rng, req.InformalityLevel()))
	final := tidyKeepTerminal(strings.Join(parts, " "))

	// 9. Length is flagged, never enforced by truncation.
	return types.NewVariant(final)
}

// FixAlumniClaims rewrites phrases implying the sender is an alumnus into
// the permitted current-student phrasing.
func FixAlumniClaims(s string) string {
	s = fellowAlumRe.ReplaceAllString(s, "BC student reaching out to alumni")
	s = asAlumRe.ReplaceAllString(s, "as a BC student")
	s = alumOfRe.ReplaceAllString(s, "student at")
	return s
}

// FixSchoolAsEmployer neutralizes phrasing that implies employment at an
// educational institution, preserving sentence-position capitalization and
// trailing punctuation.
func FixSchoolAsEmployer(s string) string {
	s = schoolEmployerRe.ReplaceAllStringFunc(s, func(match string) string {
		sub := schoolEmployerRe.FindStringSubmatch(match)
		verb, punct := sub[1], sub[2]
		replacement := "working with your team"
		if strings.HasPrefix(strings.ToLower(verb), "intern") {
			replacement = "interning with your team"
		}
		if startsUpper(verb) {
			replacement = capitalize(replacement)
		}
		return replacement + punct
	})
	s = schoolInterestRe.ReplaceAllStringFunc(s, func(match string) string {
		if startsUpper(match) {
			return "Strong interest in your team"
		}
		return "strong interest in your team"
	})
	return s
}

var bannedRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(BannedPhrases))
	for i, phrase := range BannedPhrases {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
	}
	return res
}()

// RemoveBannedPhrases deletes every banned phrase, literal and
// case-insensitive.
func RemoveBannedPhrases(s string) string {
	for _, re := range bannedRes {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// stripIdentity removes verbatim occurrences of the identity line, with and
// without its terminal punctuation.
func stripIdentity(s, identity string) string {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return s
	}
	variants := []string{identity}
	if trimmed := strings.TrimRight(identity, ".!?"); trimmed != identity {
		variants = append(variants, trimmed)
	}
	for _, v := range variants {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(v))
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// greeting renders "Hi <first>, " with the "there" default.
func greeting(req *types.GenerationRequest) string {
	name := strings.TrimSpace(req.FirstName)
	if name == "" {
		name = extract.FirstName(req.Name)
	}
	if name == "" {
		name = "there"
	}
	return "Hi " + name + ","
}

// firstSentence reduces multi-sentence text to its first sentence. A
// terminal mark followed by a non-space (decimals, abbreviating initials)
// does not end the sentence.
func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}
	return s
}

// tidy normalizes whitespace and punctuation spacing and trims trailing
// punctuation/dash artifacts.
func tidy(s string) string {
	s = doubleDashRe.ReplaceAllString(s, "—")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = spaceBeforePunctRe.ReplaceAllString(s, "$1")
	s = trailingJunkRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// tidyKeepTerminal is tidy for finished notes: spacing fixes only, the
// closing punctuation stays.
func tidyKeepTerminal(s string) string {
	s = doubleDashRe.ReplaceAllString(s, "—")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = spaceBeforePunctRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

func ensureTerminal(s string) string {
	if s == "" {
		return s
	}
	last := s[len(s)-1]
	if last == '.' || last == '!' || last == '?' {
		return s
	}
	return s + "."
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
