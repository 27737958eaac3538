package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cooperrobillard/linkedin-note/internal/config"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

func testSettings() *config.Settings {
	yes := true
	return &config.Settings{
		IdentityLine:    "I'm a current Boston College student.",
		CompanyTemplate: "Strong interest in {{company}}.",
		Tone:            types.ToneNeutral,
		IncludeCompany:  &yes,
	}
}

func TestBuildRequestFromProfile(t *testing.T) {
	profile := &types.ExtractedProfile{
		Name:     "Jane Doe",
		Headline: "Engineer at Acme",
		Role:     "Engineer",
		Company:  "Acme",
		School:   "Boston College",
	}

	req := BuildRequest(profile, testSettings(), "", "")

	assert.Equal(t, "Jane Doe", req.Name)
	assert.Equal(t, "Jane", req.FirstName)
	assert.Equal(t, "Acme", req.Company)
	assert.True(t, req.IncludeCompany)
	assert.Equal(t, "I'm a current Boston College student.", req.IdentityLine)
	assert.Equal(t, types.ToneNeutral, req.Tone)
	assert.Equal(t, "Engineer at Acme", req.DetailHint)
	assert.Contains(t, req.ProfileSummary, "current: Engineer at Acme")
}

func TestBuildRequestCompanyFallsBackToSchool(t *testing.T) {
	profile := &types.ExtractedProfile{Name: "Jane Doe", School: "Boston College"}
	req := BuildRequest(profile, testSettings(), "", "")
	assert.Equal(t, "Boston College", req.Company)
}

func TestBuildRequestCompanyFallsBackToTeam(t *testing.T) {
	req := BuildRequest(&types.ExtractedProfile{Name: "Jane Doe"}, testSettings(), "", "")
	assert.Equal(t, CompanyFallback, req.Company)
}

func TestBuildRequestOverridesBeatSettings(t *testing.T) {
	s := testSettings()
	s.UserGuidance = "remembered guidance"
	s.LastTone = types.ToneFormal

	req := BuildRequest(&types.ExtractedProfile{Name: "Jane Doe"}, s, "fresh guidance", types.ToneFriendly)
	assert.Equal(t, "fresh guidance", req.UserGuidance)
	assert.Equal(t, types.ToneFriendly, req.Tone)
}

func TestBuildRequestFallsBackToRememberedSettings(t *testing.T) {
	s := testSettings()
	s.UserGuidance = "remembered guidance"
	s.LastTone = types.ToneFormal

	req := BuildRequest(&types.ExtractedProfile{Name: "Jane Doe"}, s, "", "")
	assert.Equal(t, "remembered guidance", req.UserGuidance)
	assert.Equal(t, types.ToneFormal, req.Tone)
}

func TestBuildRequestUsesProfileDetailHint(t *testing.T) {
	profile := &types.ExtractedProfile{Name: "Jane Doe", DetailHint: "precomputed detail"}
	req := BuildRequest(profile, testSettings(), "", "")
	assert.Equal(t, "precomputed detail", req.DetailHint)
}
