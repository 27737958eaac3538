package extract

// Selector lists for each logical field, in priority order. The page renders
// several structural variants; earlier entries match the current markup,
// later ones older or A/B variants.

var nameSelectors = []string{
	"h1.text-heading-xlarge",
	"div.pv-text-details__left-panel h1",
	"section.artdeco-card h1",
	"[data-view-name='profile-card'] h1",
	"main h1",
}

var headlineSelectors = []string{
	".pv-text-details__left-panel .text-body-medium",
	"div.inline-show-more-text",
	"[data-view-name='profile-card'] .text-body-medium",
	"section.artdeco-card .text-body-medium",
}

var experienceSectionSelectors = []string{
	"section[id*='experience']",
	"section[data-view-name='profile-experience']",
}

var educationSectionSelectors = []string{
	"section[id*='education']",
	"section[data-view-name='profile-education']",
}

var activitySectionSelectors = []string{
	"section[data-view-name='profile-activities']",
	"section[id*='activity']",
}

var skillsSectionSelectors = []string{
	"section[data-view-name='profile-skills']",
	"section[id*='skills']",
}

// Within-section selectors.

var experienceCardSelectors = []string{"li", "article", "div.pvs-entity"}

var roleSelectors = []string{"span[aria-hidden='true']", "div[dir='ltr'] span"}

var companySelectors = []string{"a[href*='/company/']", "span.t-14.t-normal", "span.t-14"}

var schoolSelectors = []string{"li span[aria-hidden='true']", "a[href*='/school/']"}

var degreeSelectors = []string{"span.t-14.t-normal", "span.pvs-entity__caption-wrapper"}

var itemTextSelectors = []string{"li span[aria-hidden='true']", "li"}

// Heading keyword sets for the secondary heading-text-matched section scan.

var (
	experienceHeadings = []string{"experience"}
	educationHeadings  = []string{"education"}
	activityHeadings   = []string{"activity"}
	skillsHeadings     = []string{"skill"}
)
