package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fingerprinter/fingerprinter/internal/domain"
)

// ErrorMarker replaces the score of a URL that could not be fetched or parsed.
const ErrorMarker = "ERROR"

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	urlStyle      = lipgloss.NewStyle().Foreground(fg)
)

const scoreWidth = 9

// RenderTable formats one row per URL under a "Score  URL" header, in input order.
// With verbose set, each scored URL is followed by its per-category outcome.
func RenderTable(results []domain.URLResult, verbose bool) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(padRight("Score", scoreWidth)))
	b.WriteString(headerStyle.Render("URL"))
	b.WriteString("\n")

	for _, r := range results {
		renderRow(&b, r)
		if verbose && r.Score != nil {
			for _, c := range r.Score.Categories {
				renderCategory(&b, c)
			}
		}
	}
	return b.String()
}

func renderRow(b *strings.Builder, r domain.URLResult) {
	if r.Err != nil {
		b.WriteString(errorTagStyle.Render(padRight(ErrorMarker, scoreWidth)))
		b.WriteString(urlStyle.Render(r.URL))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(r.Err.Error()))
		b.WriteString("\n")
		return
	}

	score := padRight(r.Score.String(), scoreWidth)
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(scoreColor(*r.Score)).Render(score))
	b.WriteString(urlStyle.Render(r.URL))
	b.WriteString("\n")
}

func renderCategory(b *strings.Builder, c domain.CategoryResult) {
	name := padRight(string(c.Category), 8)
	if !c.Matched {
		fmt.Fprintf(b, "  %s %s %s\n",
			failStyle.Render("○"),
			dimStyle.Render(name),
			faintStyle.Render("no match"),
		)
		return
	}

	label := ""
	if c.Rule != nil && c.Rule.Key != "" {
		label = c.Rule.Key + ": "
	}
	fmt.Fprintf(b, "  %s %s %s\n",
		passStyle.Render("●"),
		titleStyle.Render(name),
		dimStyle.Render(label+c.Evidence),
	)
}

func scoreColor(s domain.ScoreResult) lipgloss.Color {
	switch {
	case s.Total == 0:
		return dim
	case s.Matched == s.Total:
		return success
	case s.Matched*2 >= s.Total:
		return warning
	case s.Matched > 0:
		return lipgloss.Color("#FB923C") // orange
	default:
		return danger
	}
}

// RenderRules lists the effective rule set and its provenance.
func RenderRules(report *domain.RulesReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rules"))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(report.Rules.Source))
	if report.Revision != "" {
		rev := report.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		b.WriteString(faintStyle.Render("@" + rev))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")

	for _, cat := range domain.Categories {
		rules := report.Rules.Rules(cat)
		if len(rules) == 0 {
			fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(string(cat), 8)), faintStyle.Render("not configured"))
			continue
		}
		for _, r := range rules {
			key := r.Key
			if key != "" {
				key += " "
			}
			fmt.Fprintf(&b, "  %s %s%s\n",
				headerStyle.Render(padRight(string(cat), 8)),
				titleStyle.Render(key),
				dimStyle.Render(r.Pattern),
			)
		}
	}
	fmt.Fprintf(&b, "\n  %s\n", dimStyle.Render(fmt.Sprintf("%d categories configured", report.Rules.Len())))
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
