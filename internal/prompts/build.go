// Package prompts assembles the system/user instruction pair for the remote
// text-generation call and classifies user guidance into a topical focus.
package prompts

import (
	"encoding/json"
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// Prompt is the instruction pair for one remote call. Given identical
// inputs, both fields are byte-identical across builds.
type Prompt struct {
	System string
	User   string
}

// CompanyPlaceholder is the substitution slot in the company-interest
// template.
const CompanyPlaceholder = "{{company}}"

// toneLines are the tone directives appended to the system instructions.
var toneLines = map[types.Tone]string{
	types.ToneFriendly: "Tone: friendly, conversational, use contractions.",
	types.ToneNeutral:  "Tone: clear, natural, use contractions.",
	types.ToneFormal:   "Tone: concise and professional (still warm).",
}

// userPayload is the structured fact encoding sent as the user message. The
// field order is fixed so serialization stays byte-stable.
type userPayload struct {
	TargetName     string `json:"targetName"`
	FirstName      string `json:"firstName"`
	Company        string `json:"company"`
	IncludeLine    string `json:"includeLine"`
	ProfileSummary string `json:"profileSummary"`
}

// CompanyLine resolves the company-interest template for a request, or ""
// when the company is absent or excluded.
func CompanyLine(req *types.GenerationRequest) string {
	if !req.IncludeCompany || req.Company == "" || req.CompanyInterestTemplate == "" {
		return ""
	}
	return strings.ReplaceAll(req.CompanyInterestTemplate, CompanyPlaceholder, req.Company)
}

// Build assembles the prompt from fixed rule lines plus the variable
// directives whose sources are non-empty.
func Build(req *types.GenerationRequest) Prompt {
	toneLine, ok := toneLines[req.Tone]
	if !ok {
		toneLine = toneLines[types.ToneNeutral]
	}
	companyLine := CompanyLine(req)

	lines := []string{
		"You write short LinkedIn connection notes for a student.",
		"One sentence, 120–200 characters.",
		"No emojis, no links, no meeting ask.",
		`Include verbatim identity line: "` + req.IdentityLine + `"`,
		"Reference EXACTLY ONE concrete detail from the profile summary.",
		"Open with a personal greeting: “Hi {name}, …”. Use firstName if provided.",
		"Avoid templated closers; vary or omit if forced.",
		toneLine,
	}
	if req.UserGuidance != "" {
		lines = append(lines, "User guidance (must consider): "+req.UserGuidance)
	}
	if req.DetailHint != "" {
		lines = append(lines, "Detail hint (prefer referencing this): "+req.DetailHint)
	}
	if companyLine != "" {
		lines = append(lines, "Company interest line to weave in if natural: "+companyLine)
	}

	payload, _ := json.Marshal(userPayload{
		TargetName:     req.Name,
		FirstName:      req.FirstName,
		Company:        req.Company,
		IncludeLine:    companyLine,
		ProfileSummary: req.ProfileSummary,
	})

	return Prompt{
		System: strings.Join(lines, "\n"),
		User:   string(payload),
	}
}
