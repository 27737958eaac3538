package extract

import (
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// actionKeywords mark an experience bullet as concrete enough to anchor a
// note when the strict detail variant is enabled.
var actionKeywords = []string{
	"launched", "shipped", "built", "led", "designed", "deployed",
	"developed", "created", "research", "published",
}

// DetailOptions tunes detail selection.
type DetailOptions struct {
	// RequireActionKeyword gates experience bullets on containing an
	// action/impact keyword before they can be chosen.
	RequireActionKeyword bool
}

// detailRule produces one candidate detail or "". Rules are evaluated in
// order; the first non-empty result wins.
type detailRule func(p *types.ExtractedProfile) string

// PickDetail chooses the single concrete fact used both as the generation
// hint and as the fallback-template anchor. Ordering favors current-work
// facts over static facts (school) over generic facts (skills).
func PickDetail(p *types.ExtractedProfile, opts DetailOptions) string {
	rules := []detailRule{
		func(p *types.ExtractedProfile) string {
			if p.Role != "" && p.Company != "" {
				return trimRolePrefix(p.Role) + " at " + p.Company
			}
			return ""
		},
		func(p *types.ExtractedProfile) string {
			b := p.FirstBullet()
			if b == "" {
				return ""
			}
			if opts.RequireActionKeyword && !containsActionKeyword(b) {
				return ""
			}
			return b
		},
		func(p *types.ExtractedProfile) string { return p.FirstActivity() },
		func(p *types.ExtractedProfile) string { return p.Headline },
		func(p *types.ExtractedProfile) string {
			if p.School != "" {
				return "student at " + p.School
			}
			return ""
		},
		func(p *types.ExtractedProfile) string { return p.FirstSkill() },
	}
	return firstNonEmpty(p, rules)
}

func firstNonEmpty(p *types.ExtractedProfile, rules []detailRule) string {
	for _, rule := range rules {
		if v := rule(p); v != "" {
			return v
		}
	}
	return ""
}

// trimRolePrefix drops a bare "student"/"intern" qualifier when a fuller
// role string follows it ("Student Software Engineer" -> "Software Engineer").
func trimRolePrefix(role string) string {
	lower := strings.ToLower(role)
	for _, prefix := range []string{"student ", "intern "} {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(role[len(prefix):])
			if rest != "" {
				return rest
			}
		}
	}
	return role
}

func containsActionKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
