package service_test

import (
	"testing"
	"time"

	"court-watcher/modules/notification/service"
	openingsentity "court-watcher/modules/openings/entity"
	subscriptionentity "court-watcher/modules/subscription/entity"

	"github.com/stretchr/testify/require"
)

// Monday 2025-01-06 00:00 UTC.
var monday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func opening(court int, start time.Time, hours int) openingsentity.Opening {
	return openingsentity.NewOpening(court, start, hours)
}

func subscription(email string, weekdays []int64, minStart, maxEnd float64, hours int) subscriptionentity.Subscription {
	return subscriptionentity.Subscription{
		Email:        email,
		Weekdays:     weekdays,
		MinStartHour: minStart,
		MaxEndHour:   maxEnd,
		HourLength:   hours,
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	weekdayEvenings := subscription("a@b.com", []int64{1, 2, 3, 4, 5}, 17, 22, 2)

	tests := []struct {
		name    string
		opening openingsentity.Opening
		want    bool
	}{
		{"inside filter", opening(2, monday.Add(18*time.Hour), 2), true},
		{"exact bounds", opening(2, monday.Add(17*time.Hour), 2), true},
		{"wrong duration", opening(2, monday.Add(18*time.Hour), 1), false},
		{"starts too early", opening(2, monday.Add(16*time.Hour+30*time.Minute), 2), false},
		{"ends too late", opening(2, monday.Add(20*time.Hour+30*time.Minute), 2), false},
		{"weekend excluded", opening(2, monday.AddDate(0, 0, 5).Add(18*time.Hour), 2), false},
		{"beyond one week out", opening(2, monday.AddDate(0, 0, 8).Add(18*time.Hour), 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, service.Matches(tt.opening, weekdayEvenings, monday))
		})
	}
}

func TestMatches_WideningFilterNeverLosesMatches(t *testing.T) {
	t.Parallel()

	narrow := subscription("a@b.com", []int64{1}, 17, 21, 2)
	widened := subscription("a@b.com", []int64{1, 2, 3, 4, 5, 6, 7}, 8, 24, 2)

	openings := []openingsentity.Opening{
		opening(2, monday.Add(17*time.Hour), 2),
		opening(2, monday.Add(18*time.Hour+30*time.Minute), 2),
		opening(3, monday.Add(9*time.Hour), 2),
		opening(3, monday.AddDate(0, 0, 5).Add(18*time.Hour), 2),
		opening(2, monday.Add(18*time.Hour), 1),
	}

	narrowMatches := 0
	for _, o := range openings {
		if !service.Matches(o, narrow, monday) {
			continue
		}
		narrowMatches++
		require.True(t, service.Matches(o, widened, monday),
			"court %d at %s matched the narrow filter but not the widened one", o.Court, o.Datetime)
	}
	require.Greater(t, narrowMatches, 0)
}

func TestMatchOpenings_GroupsPerSubscriber(t *testing.T) {
	t.Parallel()

	openings := []openingsentity.Opening{
		opening(3, monday.Add(19*time.Hour), 2),
		opening(2, monday.Add(18*time.Hour), 2),
		opening(2, monday.Add(9*time.Hour), 1),
	}
	subs := []subscriptionentity.Subscription{
		subscription("evening@b.com", []int64{1}, 17, 22, 2),
		subscription("morning@b.com", []int64{1}, 8, 12, 1),
		subscription("none@b.com", []int64{6, 7}, 8, 22, 2),
	}

	matched := service.MatchOpenings(openings, subs, monday)

	require.Len(t, matched, 2)
	require.NotContains(t, matched, "none@b.com")

	evening := matched["evening@b.com"]
	require.Len(t, evening, 2)
	// Sorted by start time even though input order differed.
	require.Equal(t, 2, evening[0].Court)
	require.Equal(t, 3, evening[1].Court)

	require.Len(t, matched["morning@b.com"], 1)
}

func TestMatchOpenings_OverlappingFiltersDedupe(t *testing.T) {
	t.Parallel()

	openings := []openingsentity.Opening{opening(2, monday.Add(18*time.Hour), 2)}
	subs := []subscriptionentity.Subscription{
		subscription("a@b.com", []int64{1, 2}, 17, 22, 2),
		subscription("a@b.com", []int64{1}, 8, 22, 2),
	}

	matched := service.MatchOpenings(openings, subs, monday)
	require.Len(t, matched["a@b.com"], 1)
}

func TestMatchOpenings_SameStartSortsByCourt(t *testing.T) {
	t.Parallel()

	openings := []openingsentity.Opening{
		opening(4, monday.Add(18*time.Hour), 2),
		opening(2, monday.Add(18*time.Hour), 2),
	}
	subs := []subscriptionentity.Subscription{
		subscription("a@b.com", []int64{1}, 8, 22, 2),
	}

	matched := service.MatchOpenings(openings, subs, monday)
	require.Len(t, matched["a@b.com"], 2)
	require.Equal(t, 2, matched["a@b.com"][0].Court)
	require.Equal(t, 4, matched["a@b.com"][1].Court)
}
