package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ReportStyle renders bucket headers: the year bold, the week faint.
type ReportStyle struct {
	year lipgloss.Style
	week lipgloss.Style
}

func NewReportStyle(w io.Writer, mode ColorMode) ReportStyle {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return ReportStyle{
		year: r.NewStyle().Bold(true),
		week: r.NewStyle().Faint(true),
	}
}

func (s ReportStyle) Header(r Report) string {
	return s.year.Render(r.Year) + "/" + s.week.Render(r.Week)
}

// WriteReports prints each report as a header line followed by one
// tab-indented line per entry.
func WriteReports(w io.Writer, reports []Report, style ReportStyle) error {
	for _, report := range reports {
		if _, err := fmt.Fprintln(w, style.Header(report)); err != nil {
			return err
		}
		for _, entry := range report.Entries {
			if _, err := fmt.Fprintf(w, "\t%s\n", entry.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
