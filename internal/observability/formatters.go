// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-pathfinder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
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

// printBox prints a formatted box with a title and content. Long lines are
// wrapped at word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits line into pieces of at most width runes, keeping its leading
// indentation on continuation lines.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
	if len(indent) >= width/2 {
		indent = ""
	}
	var (
		out     []string
		current = indent
	)
	for _, word := range strings.Fields(line) {
		for len([]rune(indent+word)) > width {
			// a single word wider than the box is hard-split
			runes := []rune(word)
			cut := width - len([]rune(indent))
			if strings.TrimSpace(current) != "" {
				out = append(out, current)
			}
			out = append(out, indent+string(runes[:cut]))
			word = string(runes[cut:])
			current = indent
		}
		switch {
		case strings.TrimSpace(current) == "":
			current = indent + word
		case len([]rune(current+" "+word)) > width:
			out = append(out, current)
			current = indent + word
		default:
			current += " " + word
		}
	}
	if strings.TrimSpace(current) != "" {
		out = append(out, current)
	}
	return out
}

// PrintProfile outputs the profile a recommendation was computed for.
func (p *Printer) PrintProfile(label string, profile types.Profile) {
	var sb strings.Builder

	if label != "" {
		sb.WriteString(fmt.Sprintf("Student:  %s\n", label))
	}
	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", strings.Join(profile.Skills, ", ")))
	} else {
		sb.WriteString("Skills:   (none)\n")
	}

	resume := strings.TrimSpace(profile.ResumeText)
	if len([]rune(resume)) > 200 {
		resume = string([]rune(resume)[:197]) + "..."
	}
	if resume != "" {
		sb.WriteString(fmt.Sprintf("Resume:   %s\n", resume))
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the predicted role and each proposed move.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Predicted current role: %s\n", types.PredictedCurrentRole(recs)))

	if len(recs) == 0 {
		sb.WriteString("\nNo recommendations could be generated.")
		p.printBox("CAREER PATHS", sb.String())
		return
	}

	for i, rec := range recs {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, strings.Join(rec.Path, " → ")))
		if rec.TargetRole() != "" {
			if len(rec.SkillGap) == 0 {
				sb.WriteString("    Skill gap: none\n")
			} else {
				sb.WriteString(fmt.Sprintf("    Skill gap (%d): %s\n", len(rec.SkillGap), strings.Join(rec.SkillGap, ", ")))
			}
		}
		if text := strings.TrimSpace(rec.RecommendationText); text != "" {
			for _, para := range strings.Split(text, "\n") {
				if strings.TrimSpace(para) == "" {
					continue
				}
				sb.WriteString(fmt.Sprintf("    %s\n", strings.TrimSpace(para)))
			}
		}
	}

	p.printBox("CAREER PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoles outputs the roles of a graph with their next steps.
func (p *Printer) PrintRoles(roles []types.RoleSummary) {
	if len(roles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total roles: %d\n", len(roles)))

	for _, role := range roles {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("• %s\n", role.Title))

		skills := role.Skills
		more := 0
		if len(skills) > maxItemsToShow {
			more = len(skills) - maxItemsToShow
			skills = skills[:maxItemsToShow]
		}
		line := strings.Join(skills, ", ")
		if more > 0 {
			line += fmt.Sprintf(" ... and %d more", more)
		}
		sb.WriteString(fmt.Sprintf("    Skills: %s\n", line))

		if len(role.Successors) == 0 {
			sb.WriteString("    Next:   (terminal)\n")
		} else {
			sb.WriteString(fmt.Sprintf("    Next:   %s\n", strings.Join(role.Successors, ", ")))
		}
	}

	p.printBox("ROLE GRAPH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGraphStats outputs a one-box summary of a validated graph definition.
func (p *Printer) PrintGraphStats(source string, roles, transitions, terminal int) {
	content := fmt.Sprintf("Source:       %s\nRoles:        %d\nTransitions:  %d\nTerminal:     %d",
		source, roles, transitions, terminal)
	p.printBox("ROLE GRAPH OK", content)
}
