// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jatin/yojana-sahayak/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
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

// PrintProfile outputs a human-readable summary of the extracted user
// profile.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Age:      %s\n", formatAge(profile.Age)))
	sb.WriteString(fmt.Sprintf("Gender:   %s\n", orDash(profile.Gender)))
	sb.WriteString(fmt.Sprintf("State:    %s\n", orDash(profile.State)))
	sb.WriteString(fmt.Sprintf("Income:   %s\n", formatIncome(profile.Income)))
	sb.WriteString(fmt.Sprintf("Tags:     %s\n", orDash(strings.Join(profile.Tags, ", "))))
	if len(profile.Needs) > 0 {
		sb.WriteString(fmt.Sprintf("Needs:    %s\n", strings.Join(profile.Needs, ", ")))
	}

	p.printBox("EXTRACTED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the ranked shortlist with scores.
func (p *Printer) PrintRecommendations(rec *types.Recommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mode:   %s\n", rec.Mode))
	if rec.Hint != "" {
		sb.WriteString(fmt.Sprintf("Hint:   %s\n", rec.Hint))
	}
	sb.WriteString("\n")

	count := min(len(rec.Items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := rec.Items[i]
		sb.WriteString(fmt.Sprintf("%2d. [%6.1f] %s\n", i+1, item.Score, item.Scheme.SchemeName))
		if item.Reason != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", item.Reason))
		}
	}
	if len(rec.Items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.Items)-maxItemsToShow))
	}
	if len(rec.Items) == 0 {
		sb.WriteString("(no recommendations)\n")
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

func formatAge(age *int) string {
	if age == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *age)
}

func formatIncome(income *int64) string {
	switch {
	case income == nil:
		return "—"
	case *income == types.IncomeBPL:
		return "BPL"
	default:
		return fmt.Sprintf("₹%d", *income)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
