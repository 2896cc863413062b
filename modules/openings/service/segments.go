package service

import (
	"fmt"
	"net/url"
	"sort"
	"time"

	"court-watcher/core/constants"
	"court-watcher/core/errors"
	"court-watcher/modules/openings/entity"
)

// SessionBoundaryMap partitions the day into the provider's scheduling
// buckets. Keys are exclusive upper-bound hours; an hour belongs to the first
// boundary strictly greater than it. Each bucket maps rental length in hours
// to the provider's session type id.
type SessionBoundaryMap map[int]map[int]int

// The provider runs different session blocks on weekends.
var (
	WeekdaySessionIDs = SessionBoundaryMap{
		14: {1: 14, 2: 15, 3: 16},
		18: {1: 5, 2: 7, 3: 8},
		22: {1: 18, 2: 19, 3: 20},
		24: {1: 1128, 2: 1130},
	}

	WeekendSessionIDs = SessionBoundaryMap{
		8:  {1: 35, 2: 36, 3: 37},
		19: {1: 25, 2: 26, 3: 27},
		24: {1: 29, 2: 30, 3: 32},
	}
)

// FetchSessionGroups lists the session type ids queried per scan day; the
// widget partitions its calendar the same way it partitions bookings.
var (
	WeekdayFetchSessionGroups = []int{14, 5, 18, 1128}
	WeekendFetchSessionGroups = []int{35, 25, 29}
)

// segment is the portion of an opening inside a single boundary bucket.
type segment struct {
	boundary int
	hours    int
	start    time.Time
}

// boundaries returns the map's upper-bound hours in ascending order.
func (m SessionBoundaryMap) boundaries() []int {
	bs := make([]int, 0, len(m))
	for b := range m {
		bs = append(bs, b)
	}
	sort.Ints(bs)
	return bs
}

// split walks forward one hour at a time from start for hourLength hours and
// groups consecutive hours by the boundary bucket they fall into. Hour-of-day
// ignores the half-hour minute offset, matching the provider's bucketing.
func (m SessionBoundaryMap) split(start time.Time, hourLength int) ([]segment, error) {
	bs := m.boundaries()

	var segments []segment
	for i := 0; i < hourLength; i++ {
		hour := start.Hour() + i

		boundary := -1
		for _, b := range bs {
			if hour < b {
				boundary = b
				break
			}
		}
		if boundary == -1 {
			return nil, fmt.Errorf("hour %d falls outside every session boundary", hour)
		}

		if n := len(segments); n > 0 && segments[n-1].boundary == boundary {
			segments[n-1].hours++
			continue
		}
		segments = append(segments, segment{
			boundary: boundary,
			hours:    1,
			start:    start.Add(time.Duration(i) * time.Hour),
		})
	}
	return segments, nil
}

// URLBuilder renders booking deep links for openings. Boundary maps are
// injected so tests can supply alternates.
type URLBuilder struct {
	weekday     SessionBoundaryMap
	weekend     SessionBoundaryMap
	cartBaseURL string
	staffOffset int
}

func NewURLBuilder(siteID string) *URLBuilder {
	return &URLBuilder{
		weekday:     WeekdaySessionIDs,
		weekend:     WeekendSessionIDs,
		cartBaseURL: fmt.Sprintf(constants.CartBaseURL, siteID),
		staffOffset: constants.CourtStaffIDOffset,
	}
}

// NewURLBuilderWithMaps is the fully injectable constructor used by tests.
func NewURLBuilderWithMaps(siteID string, weekday, weekend SessionBoundaryMap) *URLBuilder {
	b := NewURLBuilder(siteID)
	b.weekday = weekday
	b.weekend = weekend
	return b
}

// BookingURLs returns one deep link per segment of the opening, first segment
// first. An opening spans at most two buckets, so the result holds one or two
// URLs. A bucket with no session id for the segment's length is a
// configuration error; the caller must drop the opening rather than emit a
// broken link.
func (b *URLBuilder) BookingURLs(o entity.Opening) ([]string, *errors.AppError) {
	boundaryMap := b.weekday
	if o.IsWeekend() {
		boundaryMap = b.weekend
	}

	segments, err := boundaryMap.split(o.Datetime, o.HourLength)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrConfiguration,
			fmt.Sprintf("no session boundary for opening at %s on court %d", o.Datetime.Format("2006-01-02 15:04"), o.Court), err)
	}

	urls := make([]string, 0, len(segments))
	for _, seg := range segments {
		sessionID, ok := boundaryMap[seg.boundary][seg.hours]
		if !ok {
			return nil, errors.NewAppError(errors.ErrConfiguration,
				fmt.Sprintf("no session id for %d-hour segment in boundary %d (court %d, start %s)",
					seg.hours, seg.boundary, o.Court, o.Datetime.Format("2006-01-02 15:04")), nil)
		}
		urls = append(urls, b.segmentURL(o.Court, seg, sessionID))
	}
	return urls, nil
}

// segmentURL builds one cart deep link. The raw query is parsed and
// re-encoded once so embedded spaces and '#' end up encoded exactly once.
func (b *URLBuilder) segmentURL(court int, seg segment, sessionID int) string {
	label := seg.start.Format("Mon Jan 02 03:04 PM")
	iso := seg.start.Format("2006-01-02T15:04:05")

	rawQuery := fmt.Sprintf(
		"item[info]=%s&item[mbo_location_id]=%d&item[name]=%d Hour Rental with Tennis Court #%d&item[session_type_id]=%d&item[staff_id]=%d&item[start_date_time]=%s+00:00&item[type]=Appointment&source=appointment_v0",
		label, constants.MboLocationID, seg.hours, court, sessionID, court+b.staffOffset, iso)

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// The query is built from formatted constants; ParseQuery only fails
		// on malformed percent escapes, which cannot appear here.
		return b.cartBaseURL + rawQuery
	}
	return b.cartBaseURL + values.Encode()
}
