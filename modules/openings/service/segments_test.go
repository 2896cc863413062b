package service_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"court-watcher/core/errors"
	"court-watcher/modules/openings/entity"
	"court-watcher/modules/openings/service"

	"github.com/stretchr/testify/require"
)

var saturday = monday.AddDate(0, 0, 5)

func satAt(hour, minute int) time.Time {
	return saturday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func queryOf(t *testing.T, rawURL string) url.Values {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query()
}

func TestBookingURLs_SingleBoundaryRangeYieldsOneURL(t *testing.T) {
	t.Parallel()

	b := service.NewURLBuilder("19060")

	// Monday 14:00-16:00 sits entirely inside the 18 o'clock weekday bucket.
	urls, appErr := b.BookingURLs(entity.NewOpening(2, at(14, 0), 2))
	require.Nil(t, appErr)
	require.Len(t, urls, 1)

	q := queryOf(t, urls[0])
	require.Equal(t, "7", q.Get("item[session_type_id]"))
	require.Equal(t, "5", q.Get("item[staff_id]")) // court 2 + offset 3
	require.Equal(t, "1", q.Get("item[mbo_location_id]"))
	require.Equal(t, "2 Hour Rental with Tennis Court #2", q.Get("item[name]"))
	require.Equal(t, "2025-01-06T14:00:00 00:00", q.Get("item[start_date_time]"))
	require.Equal(t, "Appointment", q.Get("item[type]"))
	require.Equal(t, "appointment_v0", q.Get("source"))
}

func TestBookingURLs_WeekendBoundaryStraddleYieldsTwoURLs(t *testing.T) {
	t.Parallel()

	b := service.NewURLBuilder("19060")

	// Saturday 07:00-09:00: hour 7 falls in the 8 o'clock bucket, hour 8 in
	// the 19 o'clock bucket. Two one-hour segments, two URLs.
	urls, appErr := b.BookingURLs(entity.NewOpening(3, satAt(7, 0), 2))
	require.Nil(t, appErr)
	require.Len(t, urls, 2)

	first := queryOf(t, urls[0])
	require.Equal(t, "35", first.Get("item[session_type_id]"))
	require.Equal(t, "1 Hour Rental with Tennis Court #3", first.Get("item[name]"))
	require.Equal(t, "2025-01-11T07:00:00 00:00", first.Get("item[start_date_time]"))

	// The second segment starts right after the hours the first consumed.
	second := queryOf(t, urls[1])
	require.Equal(t, "25", second.Get("item[session_type_id]"))
	require.Equal(t, "2025-01-11T08:00:00 00:00", second.Get("item[start_date_time]"))
	require.True(t, strings.HasPrefix(second.Get("item[info]"), "Sat Jan 11"))
}

func TestBookingURLs_WeekdayStraddleSplitsUnevenly(t *testing.T) {
	t.Parallel()

	b := service.NewURLBuilder("19060")

	// Monday 13:00-16:00: hour 13 in the 14 bucket, hours 14-15 in the 18
	// bucket. A one-hour segment then a two-hour segment.
	urls, appErr := b.BookingURLs(entity.NewOpening(4, at(13, 0), 3))
	require.Nil(t, appErr)
	require.Len(t, urls, 2)

	first := queryOf(t, urls[0])
	require.Equal(t, "14", first.Get("item[session_type_id]"))
	require.Equal(t, "1 Hour Rental with Tennis Court #4", first.Get("item[name]"))

	second := queryOf(t, urls[1])
	require.Equal(t, "7", second.Get("item[session_type_id]"))
	require.Equal(t, "2 Hour Rental with Tennis Court #4", second.Get("item[name]"))
	require.Equal(t, "2025-01-06T14:00:00 00:00", second.Get("item[start_date_time]"))
}

func TestBookingURLs_MissingSessionIDIsConfigurationError(t *testing.T) {
	t.Parallel()

	// A bucket that only knows one-hour rentals cannot serve a two-hour
	// segment.
	partial := service.SessionBoundaryMap{24: {1: 100}}
	b := service.NewURLBuilderWithMaps("19060", partial, partial)

	urls, appErr := b.BookingURLs(entity.NewOpening(2, at(10, 0), 2))
	require.Nil(t, urls)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrConfiguration, appErr.Code)
}

func TestBookingURLs_HourPastEveryBoundaryIsConfigurationError(t *testing.T) {
	t.Parallel()

	b := service.NewURLBuilder("19060")

	// Monday 23:00-02:00 walks past the last weekday boundary (24).
	urls, appErr := b.BookingURLs(entity.NewOpening(2, at(23, 0), 3))
	require.Nil(t, urls)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrConfiguration, appErr.Code)
}

func TestBookingURLs_QueryEncodedExactlyOnce(t *testing.T) {
	t.Parallel()

	b := service.NewURLBuilder("19060")

	urls, appErr := b.BookingURLs(entity.NewOpening(2, at(14, 0), 1))
	require.Nil(t, appErr)
	require.Len(t, urls, 1)

	// '#' and spaces inside values must be percent-encoded, never double
	// encoded.
	require.Contains(t, urls[0], "%23")
	require.NotContains(t, urls[0], "%2523")
	require.NotContains(t, urls[0], " ")
	require.True(t, strings.HasPrefix(urls[0], "https://cart.mindbodyonline.com/sites/19060/cart/add_booking?"))
}
