package types

// NoteCharLimit is the soft ceiling on a finished note. Variants that exceed
// it are returned intact with OverLimit set; the caller's counter flags them.
const NoteCharLimit = 200

// Tone is the configured voice for generated notes.
type Tone string

// Recognized tone values.
const (
	ToneNeutral  Tone = "neutral"
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
)

// Informality maps a tone to the 1-10 informality scale used by the closer
// pools. Unknown tones read as neutral.
func (t Tone) Informality() int {
	switch t {
	case ToneFormal:
		return 2
	case ToneFriendly:
		return 7
	default:
		return 5
	}
}

// GenerationRequest carries everything one generate call needs. The profile
// is owned by this request; requests are never shared.
type GenerationRequest struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`

	// Company is the interest target, already resolved through the
	// company -> school -> "your team" fallback.
	Company        string `json:"company"`
	IncludeCompany bool   `json:"include_company"`

	// CompanyInterestTemplate contains a single {{company}} placeholder.
	CompanyInterestTemplate string `json:"company_interest_template"`

	IdentityLine string `json:"identity_line"`

	Tone Tone `json:"tone"`
	// Informality overrides the tone mapping when set to 1-10; zero means
	// "derive from Tone".
	Informality int `json:"informality,omitempty"`

	UserGuidance string `json:"user_guidance"`

	DetailHint     string `json:"detail_hint"`
	ProfileSummary string `json:"profile_summary"`
}

// InformalityLevel resolves the effective informality for closer selection.
func (r *GenerationRequest) InformalityLevel() int {
	if r.Informality >= 1 && r.Informality <= 10 {
		return r.Informality
	}
	return r.Tone.Informality()
}

// ErrorKind discriminates generation failure modes for the caller's display
// logic. Every kind still ships at least one fallback variant.
type ErrorKind string

// Generation failure kinds.
const (
	KindNone           ErrorKind = ""
	KindNoCredential   ErrorKind = "NO_CREDENTIAL"
	KindTimeout        ErrorKind = "TIMEOUT"
	KindQuotaExhausted ErrorKind = "RATE_LIMIT_EXHAUSTED_QUOTA"
	KindHTTPError      ErrorKind = "HTTP_ERROR"
	KindTransportError ErrorKind = "TRANSPORT_ERROR"
)

// Variant is one finished candidate note.
type Variant struct {
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
	OverLimit bool   `json:"over_limit"`
}

// NewVariant builds a Variant from finished text.
func NewVariant(text string) Variant {
	n := len([]rune(text))
	return Variant{Text: text, CharCount: n, OverLimit: n > NoteCharLimit}
}

// GenerationResult is what the orchestrator hands back to the caller. The
// variants slice is never empty: a template-derived fallback is always
// present when the remote call failed or returned nothing usable.
type GenerationResult struct {
	Variants []Variant `json:"variants"`

	// Kind is KindNone on success, otherwise the failure mode that forced
	// the fallback path.
	Kind ErrorKind `json:"kind,omitempty"`

	// Detail is a best-effort human-readable description of the failure.
	Detail string `json:"detail,omitempty"`

	// HTTPStatus is set for KindHTTPError and KindQuotaExhausted.
	HTTPStatus int `json:"http_status,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// Failed reports whether the result came from a fallback path.
func (r *GenerationResult) Failed() bool {
	return r.Kind != KindNone
}
