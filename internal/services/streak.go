package services

import "time"

// StreakCalculator counts consecutive calendar days with at least one
// recorded attempt, ending at (and including) the reference day.
type StreakCalculator struct{}

func NewStreakCalculator() *StreakCalculator {
	return &StreakCalculator{}
}

// ComputeStreak dedupes the supplied timestamps to UTC calendar days, then
// walks backward from the reference day. A single missing day terminates the
// streak; no gaps are tolerated.
func (s *StreakCalculator) ComputeStreak(practiceDates []time.Time, reference time.Time) int {
	if len(practiceDates) == 0 {
		return 0
	}

	days := make(map[time.Time]struct{}, len(practiceDates))
	for _, t := range practiceDates {
		days[calendarDay(t)] = struct{}{}
	}

	streak := 0
	day := calendarDay(reference)
	for {
		if _, ok := days[day.AddDate(0, 0, -streak)]; !ok {
			break
		}
		streak++
	}
	return streak
}

func calendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
