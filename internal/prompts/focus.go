package prompts

import "regexp"

// Focus is the topical category inferred from free-text user guidance, used
// to re-rank candidates toward the matching profile section.
type Focus string

// Focus categories, in detection order.
const (
	FocusEducation  Focus = "education"
	FocusActivity   Focus = "activity"
	FocusExperience Focus = "experience"
	FocusSkills     Focus = "skills"
	FocusAuto       Focus = "auto"
)

// focusRules pair each category with its keyword pattern; the first match
// wins, so ordering is part of the contract.
var focusRules = []struct {
	focus Focus
	re    *regexp.Regexp
}{
	{FocusEducation, regexp.MustCompile(`(?i)educat|school|university|college|degree|alum`)},
	{FocusActivity, regexp.MustCompile(`(?i)activit|post|recent|announcement`)},
	{FocusExperience, regexp.MustCompile(`(?i)experien|project|bullet|launched|shipped|built|role\b`)},
	{FocusSkills, regexp.MustCompile(`(?i)skill|stack|tech|tools?`)},
}

// DetectFocus classifies user guidance. Empty or unmatched guidance is auto.
func DetectFocus(userGuidance string) Focus {
	if userGuidance == "" {
		return FocusAuto
	}
	for _, rule := range focusRules {
		if rule.re.MatchString(userGuidance) {
			return rule.focus
		}
	}
	return FocusAuto
}

// guidanceAlumRe matches guidance that frames the sender as a BC alum.
var guidanceAlumRe = regexp.MustCompile(`(?i)\bbc\s+alum(nus|na|ni)?\b`)

// NormalizeGuidance rewrites guidance that would push the model toward an
// alumni self-claim; the sender is always a current student.
func NormalizeGuidance(guidance string) string {
	return guidanceAlumRe.ReplaceAllString(guidance, "BC alumni connection (sender is a current BC student)")
}
