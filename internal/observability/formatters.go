// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.ExtractedProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(profile.Name)))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", orDash(profile.Headline)))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", orDash(profile.Role)))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", orDash(profile.Company)))
	sb.WriteString(fmt.Sprintf("School:   %s\n", orDash(profile.School)))
	sb.WriteString(fmt.Sprintf("Degree:   %s\n", orDash(profile.Degree)))

	if len(profile.Bullets) > 0 {
		sb.WriteString("\nExperience Bullets:\n")
		count := min(len(profile.Bullets), maxItemsToShow)
		for i := 0; i < count; i++ {
			bullet := profile.Bullets[i]
			if len(bullet) > 50 {
				bullet = bullet[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", bullet))
		}
	}

	if len(profile.Activity) > 0 {
		sb.WriteString("\nRecent Activity:\n")
		count := min(len(profile.Activity), 3)
		for i := 0; i < count; i++ {
			item := profile.Activity[i]
			if len(item) > 50 {
				item = item[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
	}

	if len(profile.Skills) > 0 {
		skills := strings.Join(profile.Skills, ", ")
		if len(skills) > 50 {
			skills = skills[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("\nSkills:   %s\n", skills))
	}

	if profile.DetailHint != "" {
		sb.WriteString(fmt.Sprintf("\nDetail:   %s\n", profile.DetailHint))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPrompt outputs the assembled system/user instruction pair.
func (p *Printer) PrintPrompt(system, user string) {
	var sb strings.Builder
	sb.WriteString("System:\n")
	for _, line := range strings.Split(system, "\n") {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}
	sb.WriteString("\nUser:\n")
	sb.WriteString(fmt.Sprintf("  %s", user))

	p.printBox("PROMPT", sb.String())
}

// PrintResult outputs the generated variants with their character counters,
// plus the failure kind when the run took a fallback path.
func (p *Printer) PrintResult(result *types.GenerationResult) {
	if result == nil || len(result.Variants) == 0 {
		return
	}

	var sb strings.Builder
	if result.Failed() {
		sb.WriteString(fmt.Sprintf("⚠ %s: %s\n\n", result.Kind, result.Detail))
	}

	for i, v := range result.Variants {
		counter := fmt.Sprintf("%d/%d", v.CharCount, types.NoteCharLimit)
		if v.OverLimit {
			counter += " OVER"
		}
		sb.WriteString(fmt.Sprintf("#%d  [%s]\n", i+1, counter))
		for _, line := range wrap(v.Text, boxWidth-8) {
			sb.WriteString(fmt.Sprintf("    %s\n", line))
		}
		if i < len(result.Variants)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GENERATED NOTES", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// wrap splits text into lines of at most width characters on word
// boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
