package extract

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/cooperrobillard/linkedin-note/internal/document"
	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// DefaultRetryDelay is how long extraction waits before its single retry when
// the first pass found neither role, company nor headline. Async-rendered
// sections race the extraction call; one bounded retry absorbs that.
const DefaultRetryDelay = 800 * time.Millisecond

// headlineSplitRe splits "<role> at <company>" / "<role> @ <company>".
var headlineSplitRe = regexp.MustCompile(`(?i)^(.*?)\s+(?:at|@)\s+(.*)$`)

// Extractor pulls an ExtractedProfile out of a document source.
type Extractor struct {
	// WaitTimeout bounds the initial wait for the name node to render.
	// Zero means document.DefaultWaitTimeout.
	WaitTimeout time.Duration

	// RetryDelay is the pause before the single whole-extraction retry.
	// Zero means DefaultRetryDelay.
	RetryDelay time.Duration

	Detail  DetailOptions
	Verbose bool
}

// Extract runs the full extraction against src. It never fails because the
// page was missing data: a page with nothing recognizable yields a profile
// with all-empty fields. The error return covers snapshot failures only.
func (e *Extractor) Extract(ctx context.Context, src document.Source) (*types.ExtractedProfile, error) {
	profile, err := e.extractOnce(ctx, src)
	if err != nil {
		return nil, err
	}

	// The headline/experience block renders late on some variants; when all
	// three anchors are missing, wait briefly and re-extract once.
	if profile.Role == "" && profile.Company == "" && profile.Headline == "" {
		delay := e.RetryDelay
		if delay <= 0 {
			delay = DefaultRetryDelay
		}
		select {
		case <-ctx.Done():
			return profile, nil
		case <-time.After(delay):
		}
		retry, err := e.extractOnce(ctx, src)
		if err == nil && (retry.Role != "" || retry.Company != "" || retry.Headline != "") {
			profile = retry
		}
	}

	if e.Verbose {
		log.Printf("[EXTRACT] name=%q role=%q company=%q detail=%q",
			profile.Name, profile.Role, profile.Company, profile.DetailHint)
	}
	return profile, nil
}

func (e *Extractor) extractOnce(ctx context.Context, src document.Source) (*types.ExtractedProfile, error) {
	doc, _, err := document.WaitForAny(ctx, src, nameSelectors, document.WaitOptions{Timeout: e.WaitTimeout})
	if err != nil {
		return nil, err
	}

	p := &types.ExtractedProfile{}
	if doc == nil {
		return p, nil
	}

	p.Name = e.extractName(doc)
	p.Headline = document.Text(document.FirstMatchDoc(doc, headlineSelectors))

	role, companyRaw, bullets := e.extractExperience(doc)
	school, degree := e.extractEducation(doc)
	p.Bullets = bullets
	p.School = school
	p.Degree = degree
	p.Education = joinNonEmpty(degree, school)
	p.Activity = e.extractItems(doc, activitySectionSelectors, activityHeadings, types.MaxActivity)
	p.Skills = e.extractItems(doc, skillsSectionSelectors, skillsHeadings, types.MaxSkills)

	roleFromHeadline, companyFromHeadline := SplitHeadline(p.Headline)

	p.Role = firstNonEmptyString(Clean(role), roleFromHeadline)

	// Company accepts a cascade step only when the raw text survives
	// sanitization; non-empty noise that sanitizes away keeps cascading.
	p.Company = firstNonEmptyString(
		SanitizeCompany(companyRaw),
		SanitizeCompany(companyFromHeadline),
		SanitizeCompany(school),
	)

	p.DetailHint = PickDetail(p, e.Detail)
	return p, nil
}

// extractName cascades from structural selectors to the page title.
func (e *Extractor) extractName(doc *goquery.Document) string {
	if name := document.Text(document.FirstMatchDoc(doc, nameSelectors)); name != "" {
		return name
	}
	return Clean(document.Title(doc))
}

// extractExperience locates the experience section (structural selectors,
// then heading scan), takes its first card, and reads role, raw company and
// bullets from it.
func (e *Extractor) extractExperience(doc *goquery.Document) (role, companyRaw string, bullets []string) {
	section := document.FirstMatchDoc(doc, experienceSectionSelectors)
	if section == nil {
		section = document.SectionByHeading(doc, experienceHeadings)
	}
	if section == nil {
		return "", "", nil
	}

	card := document.FirstMatch(section, experienceCardSelectors)
	if card == nil {
		card = section
	}
	role = document.Text(document.FirstMatch(card, roleSelectors))
	companyRaw = document.Text(document.FirstMatch(card, companySelectors))

	card.Find("li").Each(func(_ int, el *goquery.Selection) {
		if len(bullets) >= types.MaxBullets {
			return
		}
		if txt := document.Text(el); txt != "" {
			bullets = append(bullets, txt)
		}
	})
	return role, companyRaw, bullets
}

func (e *Extractor) extractEducation(doc *goquery.Document) (school, degree string) {
	section := document.FirstMatchDoc(doc, educationSectionSelectors)
	if section == nil {
		section = document.SectionByHeading(doc, educationHeadings)
	}
	if section == nil {
		return "", ""
	}
	school = Clean(document.Text(document.FirstMatch(section, schoolSelectors)))
	degree = Clean(document.Text(document.FirstMatch(section, degreeSelectors)))
	if degree == school {
		degree = ""
	}
	return school, degree
}

func (e *Extractor) extractItems(doc *goquery.Document, sectionSelectors, headings []string, limit int) []string {
	section := document.FirstMatchDoc(doc, sectionSelectors)
	if section == nil {
		section = document.SectionByHeading(doc, headings)
	}
	if section == nil {
		return nil
	}
	return document.ItemTexts(section, [][]string{itemTextSelectors}, limit)
}

// SplitHeadline parses "<text> (at|@) <text>" headlines into a role and a
// sanitized company. A headline without the pattern is all role.
func SplitHeadline(headline string) (role, company string) {
	if headline == "" {
		return "", ""
	}
	if m := headlineSplitRe.FindStringSubmatch(headline); m != nil {
		return Clean(m[1]), SanitizeCompany(m[2])
	}
	return Clean(headline), ""
}

func firstNonEmptyString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + ", " + b
	case a != "":
		return a
	default:
		return b
	}
}
