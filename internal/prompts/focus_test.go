package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFocus(t *testing.T) {
	tests := []struct {
		name     string
		guidance string
		expected Focus
	}{
		{"Empty guidance", "", FocusAuto},
		{"Unmatched guidance", "keep it short", FocusAuto},
		{"School keyword", "mention their school", FocusEducation},
		{"Alum keyword", "BC alum connection", FocusEducation},
		{"Recent post", "reference their recent post", FocusActivity},
		{"Project keyword", "ask about their project", FocusExperience},
		{"Launched keyword", "mention what they launched", FocusExperience},
		{"Skills keyword", "their tech stack", FocusSkills},
		{"Education wins over skills", "their university tech stack", FocusEducation},
		{"Case-insensitive", "SCHOOL pride", FocusEducation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFocus(tt.guidance))
		})
	}
}

func TestNormalizeGuidance(t *testing.T) {
	assert.Equal(t,
		"BC alumni connection (sender is a current BC student) outreach",
		NormalizeGuidance("bc alum outreach"))
	assert.Equal(t,
		"BC alumni connection (sender is a current BC student)",
		NormalizeGuidance("BC alumnus"))
	assert.Equal(t, "mention their school", NormalizeGuidance("mention their school"))
	assert.Equal(t, "", NormalizeGuidance(""))
}
