package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

func TestPickDetail(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.ExtractedProfile
		opts     DetailOptions
		expected string
	}{
		{
			name: "Role and company win over everything",
			profile: types.ExtractedProfile{
				Role: "Software Engineer", Company: "Acme",
				Bullets: []string{"Built a data pipeline"}, Headline: "Engineer | Builder",
				School: "Boston College", Skills: []string{"Go"},
			},
			expected: "Software Engineer at Acme",
		},
		{
			name: "Student prefix trimmed from role",
			profile: types.ExtractedProfile{
				Role: "Student Software Engineer", Company: "Acme",
			},
			expected: "Software Engineer at Acme",
		},
		{
			name: "Role without company falls through to bullet",
			profile: types.ExtractedProfile{
				Role: "Software Engineer", Bullets: []string{"Built a data pipeline"},
			},
			expected: "Built a data pipeline",
		},
		{
			name: "Bullet gated by action keyword",
			profile: types.ExtractedProfile{
				Bullets:  []string{"Responsible for spreadsheets"},
				Activity: []string{"Posted about ML systems"},
			},
			opts:     DetailOptions{RequireActionKeyword: true},
			expected: "Posted about ML systems",
		},
		{
			name: "Bullet with action keyword passes the gate",
			profile: types.ExtractedProfile{
				Bullets: []string{"Launched the billing service"},
			},
			opts:     DetailOptions{RequireActionKeyword: true},
			expected: "Launched the billing service",
		},
		{
			name:     "Headline before school",
			profile:  types.ExtractedProfile{Headline: "Aspiring PM", School: "Boston College"},
			expected: "Aspiring PM",
		},
		{
			name:     "School renders as student-at",
			profile:  types.ExtractedProfile{School: "Boston College"},
			expected: "student at Boston College",
		},
		{
			name:     "Skill is the last resort",
			profile:  types.ExtractedProfile{Skills: []string{"Go", "SQL"}},
			expected: "Go",
		},
		{
			name:     "Nothing available",
			profile:  types.ExtractedProfile{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PickDetail(&tt.profile, tt.opts))
		})
	}
}

func TestTrimRolePrefix(t *testing.T) {
	assert.Equal(t, "Software Engineer", trimRolePrefix("Student Software Engineer"))
	assert.Equal(t, "Analyst", trimRolePrefix("Intern Analyst"))
	assert.Equal(t, "Student", trimRolePrefix("Student"))
	assert.Equal(t, "Engineer", trimRolePrefix("Engineer"))
}
