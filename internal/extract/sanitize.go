// Package extract pulls structured facts out of a profile document and
// derives the normalized fields the note pipeline consumes.
package extract

import (
	"regexp"
	"strings"
)

var (
	// Employment-type tokens and everything after them are noise appended to
	// company labels ("Google · Full-time · 2 yrs").
	employmentTypeRe = regexp.MustCompile(`(?i)\b(full[-\s]?time|part[-\s]?time|contract|internship|apprenticeship|self[-\s]?employed|freelance)\b.*$`)

	// Duration expressions, optionally compound ("2 yrs 3 mos").
	durationRe = regexp.MustCompile(`(?i)\b\d+\s*(yrs?|years?|mos?|months?|wks?|weeks?)(\s+\d+\s*(mos?|months?))?\b`)

	bulletGlyphRe = regexp.MustCompile(`[•·]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	nonNameRe     = regexp.MustCompile(`[^\p{L}\p{M}\-'. ]`)
	edgeNonLetter = regexp.MustCompile(`^[^\p{L}\p{M}]+|[^\p{L}\p{M}]+$`)
	tokenTrimRe   = regexp.MustCompile(`^[\p{P}\p{S}]+|[\p{P}\p{S}]+$`)
)

// separatorCutset is the punctuation trimmed from the edges of a sanitized
// company label.
const separatorCutset = " \t,;:·•|/\\-–—"

// Clean collapses all whitespace (including non-breaking spaces) to single
// spaces and trims the result.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// SanitizeCompany strips the noise the source document appends to company
// labels: employment type, durations, bullet glyphs and separator punctuation.
// Adjacent duplicate tokens are collapsed because the document sometimes
// renders the same label twice back to back. The result may be empty; callers
// treat that as "not found" and continue their cascade.
func SanitizeCompany(raw string) string {
	if raw == "" {
		return ""
	}
	out := employmentTypeRe.ReplaceAllString(raw, "")
	out = durationRe.ReplaceAllString(out, "")
	out = bulletGlyphRe.ReplaceAllString(out, " ")
	out = Clean(out)
	out = strings.Trim(out, separatorCutset)
	out = dedupeAdjacentTokens(out)
	if !strings.Contains(out, " ") {
		out = foldRepeatedToken(out)
	}
	// Deduping can leave the surviving token's punctuation dangling.
	out = strings.Trim(out, separatorCutset)
	return Clean(out)
}

// FirstName extracts the leading given name from a full display name. Any
// character outside letters, marks, hyphen, apostrophe, period and space is
// dropped before the first space-delimited token is taken.
func FirstName(full string) string {
	if full == "" {
		return ""
	}
	cleaned := nonNameRe.ReplaceAllString(Clean(full), "")
	first, _, _ := strings.Cut(strings.TrimSpace(cleaned), " ")
	return edgeNonLetter.ReplaceAllString(first, "")
}

// dedupeAdjacentTokens removes immediately repeated tokens, comparing
// case-insensitively and ignoring surrounding punctuation, so "Acme Acme"
// and "Acme, Acme" both collapse to one token.
func dedupeAdjacentTokens(s string) string {
	tokens := strings.Fields(s)
	if len(tokens) < 2 {
		return s
	}
	kept := tokens[:1]
	prev := tokenKey(tokens[0])
	for _, tok := range tokens[1:] {
		key := tokenKey(tok)
		if key != "" && key == prev {
			continue
		}
		kept = append(kept, tok)
		prev = key
	}
	return strings.Join(kept, " ")
}

func tokenKey(tok string) string {
	return strings.ToLower(tokenTrimRe.ReplaceAllString(tok, ""))
}

// foldRepeatedToken collapses a single token that is a whole-string
// repetition of one unit ("GoogleGoogle" -> "Google"). Units shorter than 3
// characters are left alone so legitimate short names ("Coco") survive.
func foldRepeatedToken(tok string) string {
	n := len(tok)
	for unit := 3; unit <= n/2; unit++ {
		if n%unit != 0 {
			continue
		}
		if strings.EqualFold(strings.Repeat(tok[:unit], n/unit), tok) {
			return tok[:unit]
		}
	}
	return tok
}
