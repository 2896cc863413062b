package service

import (
	"strconv"
	"strings"
	"time"

	"court-watcher/core/logger"
	openingsentity "court-watcher/modules/openings/entity"

	"github.com/PuerkitoBio/goquery"
)

// ParseSessionSlots extracts half-hour slots from one widget HTML fragment.
// The fragment holds one block per court; the block label ends in the court
// number. Court 1 is reserved in the source system and never bookable. Time
// labels off the half-hour grid belong to taster slots the widget sometimes
// injects and are dropped.
func ParseSessionSlots(fragment string, date time.Time) []openingsentity.HalfHourSlot {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		logger.Warn("Parser:ParseSessionSlots:BadFragment", "error", err)
		return nil
	}

	var slots []openingsentity.HalfHourSlot
	doc.Find("div.healcode-trainer").Each(func(_ int, courtDiv *goquery.Selection) {
		label := strings.ReplaceAll(courtDiv.Find("div.trainer-label").Text(), " ", "")
		if label == "" {
			return
		}

		court, err := strconv.Atoi(label[len(label)-1:])
		if err != nil {
			logger.Warn("Parser:ParseSessionSlots:BadCourtLabel", "label", label)
			return
		}
		if court == 1 {
			return
		}

		courtDiv.Find("span.appointment.button").Each(func(_ int, timeSpan *goquery.Selection) {
			text := strings.ReplaceAll(timeSpan.Text(), " ", "")
			if !strings.Contains(text, ":00") && !strings.Contains(text, ":30") {
				return
			}

			t, err := time.Parse("3:04PM", strings.ToUpper(text))
			if err != nil {
				logger.Warn("Parser:ParseSessionSlots:BadTimeLabel", "time", text)
				return
			}

			slots = append(slots, openingsentity.HalfHourSlot{
				Court:    court,
				Datetime: time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()),
			})
		})
	})
	return slots
}
