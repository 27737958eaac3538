package extract

import (
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// SummaryCharLimit bounds the serialized profile summary handed to the
// remote call.
const SummaryCharLimit = 1200

// summaryDelimiter joins the labeled segments of a profile summary.
const summaryDelimiter = " | "

// maxSummarySkills caps the skills subset included in the summary.
const maxSummarySkills = 3

// BuildSummary serializes the present profile fields into one bounded text
// block of "label: value" segments in a fixed order. Building twice from the
// same profile yields byte-identical output.
func BuildSummary(p *types.ExtractedProfile) string {
	var parts []string
	if p.Headline != "" {
		parts = append(parts, "headline: "+p.Headline)
	}
	if p.Role != "" && p.Company != "" {
		parts = append(parts, "current: "+p.Role+" at "+p.Company)
	}
	if b := p.FirstBullet(); b != "" {
		parts = append(parts, "project: "+b)
	}
	if a := p.FirstActivity(); a != "" {
		parts = append(parts, "recent: "+a)
	}
	if p.School != "" {
		parts = append(parts, "school: "+p.School)
	}
	if len(p.Skills) > 0 {
		n := min(len(p.Skills), maxSummarySkills)
		parts = append(parts, "skills: "+strings.Join(p.Skills[:n], ", "))
	}
	summary := Clean(strings.Join(parts, summaryDelimiter))
	return truncateRunes(summary, SummaryCharLimit)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
