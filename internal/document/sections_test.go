package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionByHeading(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<section><h2>About</h2><p>about text</p></section>
<section><div role="heading">Experience</div><p>experience text</p></section>
<section><h2>Education</h2><p>education text</p></section>
</body></html>`)

	sec := SectionByHeading(doc, []string{"experience"})
	assert.Equal(t, "Experience experience text", Text(sec))

	sec = SectionByHeading(doc, []string{"education"})
	assert.Contains(t, Text(sec), "education text")

	assert.Nil(t, SectionByHeading(doc, []string{"skills"}))
	assert.Nil(t, SectionByHeading(doc, nil))
}

func TestSectionByHeadingMatchesCaseInsensitively(t *testing.T) {
	doc := parseDoc(t, `<html><body><section><h3>EXPERIENCE</h3><p>x</p></section></body></html>`)
	assert.NotNil(t, SectionByHeading(doc, []string{"experience"}))
}

func TestItemTexts(t *testing.T) {
	doc := parseDoc(t, `<html><body><section>
<ul>
  <li><span aria-hidden="true">Go</span></li>
  <li><span aria-hidden="true">SQL</span></li>
  <li><span aria-hidden="true">Python</span></li>
</ul>
</section></body></html>`)
	section := doc.Find("section")

	items := ItemTexts(section, [][]string{{"li span[aria-hidden='true']", "li"}}, 2)
	assert.Equal(t, []string{"Go", "SQL"}, items, "limit should cap the items")

	items = ItemTexts(section, [][]string{{"em", "li"}}, 5)
	assert.Equal(t, []string{"Go", "SQL", "Python"}, items, "later selectors apply when earlier ones miss")

	assert.Nil(t, ItemTexts(nil, [][]string{{"li"}}, 3))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"Pipe suffix stripped", "<head><title>Jane Doe | LinkedIn</title></head>", "Jane Doe"},
		{"Dash suffix stripped", "<head><title>Jane Doe - LinkedIn</title></head>", "Jane Doe"},
		{"No suffix", "<head><title>Jane Doe</title></head>", "Jane Doe"},
		{"No title", "<head></head>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Title(parseDoc(t, tt.html)))
		})
	}
}
