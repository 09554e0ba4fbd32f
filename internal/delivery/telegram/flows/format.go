package flows

import (
	"fmt"
	"html"
	"strings"

	"ktm-hours/internal/app/service"
	"ktm-hours/internal/domain"
)

// FormatSummaries renders weekly summaries as an HTML <pre> block.
func FormatSummaries(summaries []service.WeeklySummary) string {
	var b strings.Builder
	b.WriteString("<pre>")
	for i, ws := range summaries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", html.EscapeString(ws.Employee))
		for _, d := range domain.Week {
			fmt.Fprintf(&b, "%-12s %6.2f hrs\n", d, ws.DayHours(d))
		}
		fmt.Fprintf(&b, "%-12s %6.2f hrs\n", "Weekly Total", ws.Total)
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatShift describes one saved shift and its worked hours.
func FormatShift(rec domain.ShiftRecord) string {
	return fmt.Sprintf("%s, %s: %s to %s, break %.2f hrs, worked %.2f hrs",
		rec.Employee, rec.Day, rec.Start, rec.End, rec.Break, rec.WorkedHours())
}
