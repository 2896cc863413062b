package service_test

import (
	"testing"
	"time"

	"court-watcher/modules/openings/entity"
	"court-watcher/modules/openings/service"

	"github.com/stretchr/testify/require"
)

// monday is an arbitrary Monday used as the scan day in these tests.
var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func slot(court int, hour, minute int) entity.HalfHourSlot {
	return entity.HalfHourSlot{
		Court:    court,
		Datetime: monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
	}
}

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestAggregate_LongestCoverageWins(t *testing.T) {
	t.Parallel()

	// Court 2 is free 14:00-16:30: half-hour slots on every grid point.
	slots := []entity.HalfHourSlot{
		slot(2, 14, 0), slot(2, 14, 30),
		slot(2, 15, 0), slot(2, 15, 30),
		slot(2, 16, 0),
	}

	openings := service.Aggregate(slots, at(13, 0), monday.AddDate(0, 0, 1))

	byStart := make(map[string]entity.Opening)
	for _, o := range openings {
		key := o.Datetime.Format("15:04")
		_, dup := byStart[key]
		require.Falsef(t, dup, "two openings emitted for court 2 at %s", key)
		byStart[key] = o
	}

	// 14:00 anchors 14:00/15:00/16:00 all exist: one 3-hour opening, no
	// separate 2-hour or 1-hour emission for the same start.
	require.Equal(t, 3, byStart["14:00"].HourLength)
	// 14:30 anchors 14:30/15:30 exist, 16:30 does not.
	require.Equal(t, 2, byStart["14:30"].HourLength)
	// 15:00 anchors 15:00/16:00 exist.
	require.Equal(t, 2, byStart["15:00"].HourLength)
	require.Equal(t, 1, byStart["15:30"].HourLength)
	require.Equal(t, 1, byStart["16:00"].HourLength)
	require.Len(t, openings, 5)
}

func TestAggregate_DerivedFields(t *testing.T) {
	t.Parallel()

	openings := service.Aggregate([]entity.HalfHourSlot{slot(4, 9, 30)}, at(9, 0), monday.AddDate(0, 0, 1))

	require.Len(t, openings, 1)
	o := openings[0]
	require.Equal(t, 4, o.Court)
	require.Equal(t, 1, o.Weekday) // Monday
	require.Equal(t, 9.5, o.StartHour)
	require.Equal(t, 10.5, o.EndHour)
	require.Equal(t, o.StartHour+float64(o.HourLength), o.EndHour)
}

func TestAggregate_CoverageRequiresSameMinuteOffset(t *testing.T) {
	t.Parallel()

	// 14:00 and 15:30 do not chain: the +1h anchor for 14:00 is 15:00.
	slots := []entity.HalfHourSlot{slot(2, 14, 0), slot(2, 15, 30)}

	openings := service.Aggregate(slots, at(14, 0), monday.AddDate(0, 0, 1))

	require.Len(t, openings, 2)
	for _, o := range openings {
		require.Equal(t, 1, o.HourLength)
	}
}

func TestAggregate_SeparateCourtsDoNotChain(t *testing.T) {
	t.Parallel()

	slots := []entity.HalfHourSlot{slot(2, 14, 0), slot(3, 15, 0)}

	openings := service.Aggregate(slots, at(14, 0), monday.AddDate(0, 0, 1))

	require.Len(t, openings, 2)
	for _, o := range openings {
		require.Equal(t, 1, o.HourLength)
	}
}

func TestAggregate_UnsortedSlotsAndDuplicates(t *testing.T) {
	t.Parallel()

	sorted := []entity.HalfHourSlot{
		slot(2, 14, 0), slot(2, 15, 0), slot(2, 16, 0),
	}
	shuffled := []entity.HalfHourSlot{
		slot(2, 16, 0), slot(2, 14, 0), slot(2, 15, 0), slot(2, 14, 0),
	}

	a := service.Aggregate(sorted, at(14, 0), monday.AddDate(0, 0, 1))
	b := service.Aggregate(shuffled, at(14, 0), monday.AddDate(0, 0, 1))

	require.Equal(t, a, b)
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	slots := []entity.HalfHourSlot{
		slot(2, 14, 0), slot(2, 14, 30), slot(2, 15, 0),
		slot(3, 9, 0), slot(5, 20, 30),
	}

	first := service.Aggregate(slots, at(8, 0), monday.AddDate(0, 0, 1))
	second := service.Aggregate(slots, at(8, 0), monday.AddDate(0, 0, 1))

	require.Equal(t, first, second)
}

func TestAggregate_GridStartsAtTopOfHour(t *testing.T) {
	t.Parallel()

	// A slot before the series start is never a candidate start.
	slots := []entity.HalfHourSlot{slot(2, 13, 30), slot(2, 14, 0)}

	openings := service.Aggregate(slots, at(14, 10), monday.AddDate(0, 0, 1))

	require.Len(t, openings, 1)
	require.Equal(t, at(14, 0), openings[0].Datetime)
}
