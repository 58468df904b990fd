package attribution

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/deeponelabs/deepone-go/internal/domain"
)

// Report is what a CLI command wants shown: a list of records and, when
// known, whether the first session is still pending.
type Report struct {
	Title        string
	Records      []domain.AttributionRecord
	FirstSession *bool
}

type RenderOptions struct {
	Now time.Time
}

func renderView(report Report, opts RenderOptions, s styles) string {
	title := report.Title
	if title == "" {
		title = "Attribution"
	}

	lines := []string{s.title.Render(title)}
	if report.FirstSession != nil {
		lines = append(lines, s.header.Render(fmt.Sprintf("first session pending: %t", *report.FirstSession)))
	}
	lines = append(lines, s.header.Render(fmt.Sprintf("records: %d", len(report.Records))))

	if len(report.Records) == 0 {
		lines = append(lines, s.empty.Render("No attribution records."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range report.Records {
		lines = append(lines, s.section.Render(renderRecord(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRecord(record domain.AttributionRecord, opts RenderOptions, s styles) string {
	headline := []string{s.source.Render(sourceLabel(record.Source()))}
	if record.IsFirstSession() {
		headline = append(headline, " ", s.first.Render("first session"))
	} else {
		headline = append(headline, " ", s.returning.Render("returning"))
	}
	if captured := formatCaptured(record.CapturedAt(), opts.Now); captured != "" {
		headline = append(headline, " ", s.meta.Render("("+captured+")"))
	}

	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, headline...)}

	if origin, ok := record.OriginURL(); ok {
		parts = append(parts, field("url", origin, s))
	} else {
		parts = append(parts, s.empty.Render("no link"))
	}
	if host, ok := record.RouteHost(); ok {
		parts = append(parts, field("host", host, s))
	}
	if path, ok := record.RoutePath(); ok {
		parts = append(parts, field("path", path, s))
	}

	marketing := record.Marketing()
	for _, key := range sortedKeys(marketing) {
		parts = append(parts, field(key, marketing[key], s))
	}

	custom := record.CustomParameters()
	for _, key := range sortedKeys(custom) {
		parts = append(parts, field("param "+key, fmt.Sprint(custom[key]), s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func field(key, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", s.value.Render(value))
}

func sourceLabel(source domain.RecordSource) string {
	if source == "" {
		return "unknown"
	}

	return string(source)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func formatCaptured(capturedAt, now time.Time) string {
	if capturedAt.IsZero() {
		return ""
	}
	if now.IsZero() {
		return capturedAt.Format(time.RFC3339)
	}

	elapsed := now.Sub(capturedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(math.Floor(elapsed.Minutes())), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(math.Floor(elapsed.Hours())), "hour") + " ago"
	default:
		return capturedAt.Format("15:04 on 02 Jan")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
