package repair

import (
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/prompts"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// summaryDetailLabels are the profile-summary labels mined for a fallback
// detail, in priority order. "project" and "current" carry role-at-company
// phrasing already; the rest are used as-is.
var summaryDetailLabels = []string{"project", "current", "recent", "headline"}

// TemplateNote builds a deterministic raw candidate used when the remote
// call fails or no credential is configured. It produces only the body
// material; the polisher re-applies greeting, identity and closer, so the
// body must survive the first-sentence cut as one sentence.
func TemplateNote(req *types.GenerationRequest) string {
	detail := strings.TrimSpace(req.DetailHint)
	if detail == "" {
		detail = PickDetailFromSummary(req.ProfileSummary)
	}

	var clauses []string
	if detail != "" {
		clauses = append(clauses, "Your work on "+strings.TrimRight(detail, ".!?")+" stood out to me")
	}
	if company := prompts.CompanyLine(req); company != "" {
		clauses = append(clauses, strings.TrimRight(company, ".!?"))
	}
	if len(clauses) == 0 {
		return "I'd value the chance to learn from your path."
	}
	return strings.Join(clauses, " — ") + "."
}

// PickDetailFromSummary mines a " | "-delimited profile summary for the most
// specific labeled value available.
func PickDetailFromSummary(summary string) string {
	if strings.TrimSpace(summary) == "" {
		return ""
	}
	for _, label := range summaryDetailLabels {
		for _, segment := range strings.Split(summary, "|") {
			name, value, found := strings.Cut(segment, ":")
			if !found {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(name), label) {
				if v := strings.TrimSpace(value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
