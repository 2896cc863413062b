package service

import (
	"sort"
	"time"

	"court-watcher/core/constants"
	openingsentity "court-watcher/modules/openings/entity"
	subscriptionentity "court-watcher/modules/subscription/entity"
)

// Matches reports whether the opening satisfies the subscription filter and
// starts within the notification window of now. Duration must match exactly;
// the opening's time range must sit inside the filter's range.
func Matches(o openingsentity.Opening, s subscriptionentity.Subscription, now time.Time) bool {
	if o.HourLength != s.HourLength {
		return false
	}
	if !s.MatchesWeekday(o.Weekday) {
		return false
	}
	if o.StartHour < s.MinStartHour {
		return false
	}
	if o.EndHour > s.MaxEndHour {
		return false
	}
	return !o.Datetime.After(now.Add(constants.NotificationWindow))
}

// MatchOpenings groups matching openings per subscriber email. A subscriber
// with several filters sees each opening at most once. Openings per
// subscriber are sorted by start time, then court.
func MatchOpenings(
	openings []openingsentity.Opening,
	subscriptions []subscriptionentity.Subscription,
	now time.Time,
) map[string][]openingsentity.Opening {
	matched := make(map[string][]openingsentity.Opening)
	seen := make(map[string]map[string]struct{})

	for _, sub := range subscriptions {
		for _, opening := range openings {
			if !Matches(opening, sub, now) {
				continue
			}
			if _, ok := seen[sub.Email]; !ok {
				seen[sub.Email] = make(map[string]struct{})
			}
			key := opening.Key()
			if _, ok := seen[sub.Email][key]; ok {
				continue
			}
			seen[sub.Email][key] = struct{}{}
			matched[sub.Email] = append(matched[sub.Email], opening)
		}
	}

	for email := range matched {
		group := matched[email]
		sort.Slice(group, func(i, j int) bool {
			if !group[i].Datetime.Equal(group[j].Datetime) {
				return group[i].Datetime.Before(group[j].Datetime)
			}
			return group[i].Court < group[j].Court
		})
	}
	return matched
}
