// Package types defines the shared data structures exchanged between the
// extraction and note-generation stages.
package types

// Limits on the list-valued profile fields. Extraction truncates to these
// bounds so prompt payloads stay small.
const (
	MaxBullets  = 3
	MaxActivity = 3
	MaxSkills   = 5
)

// ExtractedProfile holds the facts pulled from one profile page. Every string
// field is whitespace-normalized and may be empty; empty string is the single
// "not found" sentinel, with no separate null/absent state.
type ExtractedProfile struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`

	// Role and Company describe the current position. Company is
	// post-sanitization; a value that sanitized to empty stays empty.
	Role    string `json:"role"`
	Company string `json:"company"`

	Bullets []string `json:"bullets,omitempty"`

	School    string `json:"school"`
	Degree    string `json:"degree"`
	Education string `json:"education"`

	Activity []string `json:"activity,omitempty"`
	Skills   []string `json:"skills,omitempty"`

	// DetailHint is the single concrete fact chosen by the detail selector,
	// derived once after extraction.
	DetailHint string `json:"detail_hint"`
}

// IsEmpty reports whether extraction found nothing at all.
func (p *ExtractedProfile) IsEmpty() bool {
	return p.Name == "" && p.Headline == "" && p.Role == "" && p.Company == "" &&
		len(p.Bullets) == 0 && p.School == "" && p.Degree == "" && p.Education == "" &&
		len(p.Activity) == 0 && len(p.Skills) == 0
}

// FirstBullet returns the first experience bullet or "".
func (p *ExtractedProfile) FirstBullet() string {
	if len(p.Bullets) > 0 {
		return p.Bullets[0]
	}
	return ""
}

// FirstActivity returns the first activity snippet or "".
func (p *ExtractedProfile) FirstActivity() string {
	if len(p.Activity) > 0 {
		return p.Activity[0]
	}
	return ""
}

// FirstSkill returns the first listed skill or "".
func (p *ExtractedProfile) FirstSkill() string {
	if len(p.Skills) > 0 {
		return p.Skills[0]
	}
	return ""
}
