package service

import (
	"sort"
	"time"

	"court-watcher/modules/openings/entity"
)

// Aggregate derives bookable openings from the raw half-hour slots of one
// scan. Candidate starts form a 30-minute grid from the top of seriesStart's
// hour through horizonEnd; for each (court, start) the longest contiguous
// coverage wins: a start covered for 3 hours is emitted once with length 3,
// never additionally as a 2-hour or 1-hour opening.
//
// An n-hour coverage at start requires a slot at start, start+1h, ...,
// start+(n-1)h, all on the same minute offset (:00 or :30) and court. Slots
// need not be sorted; duplicates are harmless.
func Aggregate(slots []entity.HalfHourSlot, seriesStart time.Time, horizonEnd time.Time) []entity.Opening {
	byCourt := make(map[int]map[int64]struct{})
	for _, slot := range slots {
		times, ok := byCourt[slot.Court]
		if !ok {
			times = make(map[int64]struct{})
			byCourt[slot.Court] = times
		}
		times[slot.Datetime.Unix()] = struct{}{}
	}

	courts := make([]int, 0, len(byCourt))
	for court := range byCourt {
		courts = append(courts, court)
	}
	sort.Ints(courts)

	gridStart := seriesStart.Truncate(time.Hour)

	var openings []entity.Opening
	for start := gridStart; !start.After(horizonEnd); start = start.Add(30 * time.Minute) {
		for _, court := range courts {
			times := byCourt[court]
			length := coverageAt(times, start)
			if length == 0 {
				continue
			}
			openings = append(openings, entity.NewOpening(court, start, length))
		}
	}
	return openings
}

// coverageAt returns the longest hour coverage (3, 2, 1) starting at start,
// or 0 when no slot exists there.
func coverageAt(times map[int64]struct{}, start time.Time) int {
	has := func(t time.Time) bool {
		_, ok := times[t.Unix()]
		return ok
	}

	if !has(start) {
		return 0
	}
	if has(start.Add(time.Hour)) {
		if has(start.Add(2 * time.Hour)) {
			return 3
		}
		return 2
	}
	return 1
}
