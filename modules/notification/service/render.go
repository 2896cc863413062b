package service

import (
	"fmt"
	"strings"

	openingsentity "court-watcher/modules/openings/entity"
)

// renderOpeningHTML renders one opening line:
// date, time range, court, one or two booking links.
func renderOpeningHTML(o openingsentity.Opening) string {
	date := o.Datetime.Format("Mon Jan 02")
	startTime := o.Datetime.Format("03:04PM")
	endTime := o.End().Format("03:04PM")

	details := fmt.Sprintf("%s, %s - %s on Court %d", date, startTime, endTime, o.Court)
	detailsHTML := fmt.Sprintf("<div style='display:inline-block;'> %s </div>", details)

	bookingHTML := ""
	if len(o.URLs) > 0 {
		bookingHTML = fmt.Sprintf("<a href='%s'>book here</a>", o.URLs[0])
	}
	if len(o.URLs) == 2 {
		bookingHTML += fmt.Sprintf(" and <a href='%s'>here</a>", o.URLs[1])
	}

	return fmt.Sprintf("<div> %s => %s </div>", detailsHTML, bookingHTML)
}

// renderEmailHTML renders the full notification body for one subscriber.
func renderEmailHTML(openings []openingsentity.Opening, unsubscribeURL string) string {
	lines := make([]string, 0, len(openings))
	for _, o := range openings {
		lines = append(lines, renderOpeningHTML(o))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n<div style=\"margin-top: 24px;\"> xoxo </div>")
	sb.WriteString(fmt.Sprintf("\n<div style=\"margin-top: 12px;\"><a href=\"%s\"> unsubscribe </a></div>", unsubscribeURL))
	return sb.String()
}
