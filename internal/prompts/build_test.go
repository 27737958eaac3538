package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

func baseRequest() *types.GenerationRequest {
	return &types.GenerationRequest{
		Name:                    "Jane Doe",
		FirstName:               "Jane",
		Company:                 "Acme Corp",
		IncludeCompany:          true,
		CompanyInterestTemplate: "Strong interest in {{company}}.",
		IdentityLine:            "I'm a current Boston College student.",
		Tone:                    types.ToneNeutral,
		ProfileSummary:          "current: Engineer at Acme Corp",
	}
}

func TestCompanyLine(t *testing.T) {
	req := baseRequest()
	assert.Equal(t, "Strong interest in Acme Corp.", CompanyLine(req))

	req.IncludeCompany = false
	assert.Equal(t, "", CompanyLine(req))

	req = baseRequest()
	req.Company = ""
	assert.Equal(t, "", CompanyLine(req))

	req = baseRequest()
	req.CompanyInterestTemplate = ""
	assert.Equal(t, "", CompanyLine(req))
}

func TestBuildIsDeterministic(t *testing.T) {
	a := Build(baseRequest())
	b := Build(baseRequest())
	assert.Equal(t, a.System, b.System)
	assert.Equal(t, a.User, b.User)
}

func TestBuildSystemContents(t *testing.T) {
	prompt := Build(baseRequest())

	assert.Contains(t, prompt.System, `Include verbatim identity line: "I'm a current Boston College student."`)
	assert.Contains(t, prompt.System, "Tone: clear, natural, use contractions.")
	assert.Contains(t, prompt.System, "Strong interest in Acme Corp.")
	assert.NotContains(t, prompt.System, "User guidance")
	assert.NotContains(t, prompt.System, "Detail hint")
}

func TestBuildConditionalLines(t *testing.T) {
	req := baseRequest()
	req.UserGuidance = "mention their school"
	req.DetailHint = "Engineer at Acme Corp"
	req.Tone = types.ToneFormal

	prompt := Build(req)
	assert.Contains(t, prompt.System, "User guidance (must consider): mention their school")
	assert.Contains(t, prompt.System, "Detail hint (prefer referencing this): Engineer at Acme Corp")
	assert.Contains(t, prompt.System, "Tone: concise and professional (still warm).")
}

func TestBuildUnknownToneFallsBackToNeutral(t *testing.T) {
	req := baseRequest()
	req.Tone = types.Tone("sarcastic")
	assert.Contains(t, Build(req).System, "Tone: clear, natural, use contractions.")
}

func TestBuildUserPayload(t *testing.T) {
	prompt := Build(baseRequest())
	assert.JSONEq(t, `{
		"targetName": "Jane Doe",
		"firstName": "Jane",
		"company": "Acme Corp",
		"includeLine": "Strong interest in Acme Corp.",
		"profileSummary": "current: Engineer at Acme Corp"
	}`, prompt.User)
}
