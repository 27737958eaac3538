// Package ranking re-orders candidate notes by relevance to the focus the
// user's guidance implied.
package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/prompts"
)

// maxFocusKeywords caps how many summary tokens contribute to the score.
const maxFocusKeywords = 6

// focusLabels maps each focus to the profile-summary labels whose values
// supply its keywords.
var focusLabels = map[prompts.Focus][]string{
	prompts.FocusEducation:  {"school", "degree"},
	prompts.FocusActivity:   {"recent"},
	prompts.FocusExperience: {"project", "current"},
	prompts.FocusSkills:     {"skills"},
}

var keywordSplitRe = regexp.MustCompile(`[,\s]+`)

// ByFocus stably re-orders candidates by keyword overlap with the summary
// section matching the focus; higher overlap first, ties keep their original
// relative order. FocusAuto and an empty matching section leave the order
// untouched.
func ByFocus(candidates []string, focus prompts.Focus, profileSummary string) []string {
	if len(candidates) == 0 || focus == prompts.FocusAuto {
		return candidates
	}
	keywords := focusKeywords(focus, profileSummary)
	if len(keywords) == 0 {
		return candidates
	}

	ranked := make([]string, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return overlapScore(ranked[i], keywords) > overlapScore(ranked[j], keywords)
	})
	return ranked
}

// focusKeywords pulls scoring tokens from the summary segments labeled for
// the focus.
func focusKeywords(focus prompts.Focus, summary string) []string {
	var text strings.Builder
	for _, label := range focusLabels[focus] {
		text.WriteString(summarySection(summary, label))
		text.WriteString(" ")
	}

	var keywords []string
	for _, tok := range keywordSplitRe.Split(strings.ToLower(text.String()), -1) {
		if len(tok) > 2 {
			keywords = append(keywords, tok)
			if len(keywords) == maxFocusKeywords {
				break
			}
		}
	}
	return keywords
}

// summarySection returns the value of a "label: value" segment in the
// " | "-delimited profile summary, or "".
func summarySection(summary, label string) string {
	for _, segment := range strings.Split(summary, "|") {
		name, value, found := strings.Cut(segment, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), label) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func overlapScore(candidate string, keywords []string) int {
	lower := strings.ToLower(candidate)
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
