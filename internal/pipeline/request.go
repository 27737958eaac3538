package pipeline

import (
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/config"
	"github.com/cooperrobillard/linkedin-note/internal/extract"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// CompanyFallback is referenced when neither a company nor a school survived
// extraction.
const CompanyFallback = "your team"

// BuildRequest assembles a generation request from an extracted profile and
// the active settings. Guidance and tone are the per-run overrides; empty
// values fall back to what the settings remember.
func BuildRequest(profile *types.ExtractedProfile, settings *config.Settings, guidance string, tone types.Tone) *types.GenerationRequest {
	if tone == "" {
		tone = settings.EffectiveTone()
	}
	if strings.TrimSpace(guidance) == "" {
		guidance = settings.UserGuidance
	}

	company := profile.Company
	if company == "" {
		company = profile.School
	}
	if company == "" {
		company = CompanyFallback
	}

	detail := profile.DetailHint
	if detail == "" {
		detail = extract.PickDetail(profile, extract.DetailOptions{})
	}

	return &types.GenerationRequest{
		Name:                    profile.Name,
		FirstName:               extract.FirstName(profile.Name),
		Company:                 company,
		IncludeCompany:          settings.IncludeCompanyEnabled(),
		CompanyInterestTemplate: settings.CompanyTemplate,
		IdentityLine:            settings.IdentityLine,
		Tone:                    tone,
		UserGuidance:            guidance,
		DetailHint:              detail,
		ProfileSummary:          extract.BuildSummary(profile),
	}
}
