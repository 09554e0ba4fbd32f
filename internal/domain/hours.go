package domain

// ComputeWorkedHours returns the hours between start and end minus the break.
//
// An end that is not strictly after start is read as the next day, so equal
// times give a full 24 hours before the break. The result never goes below
// zero. A nil start or end means the field was not filled in and yields 0.
func ComputeWorkedHours(start, end *TimeOfDay, breakHours float64) float64 {
	if start == nil || end == nil {
		return 0
	}
	elapsed := end.MinuteOfDay() - start.MinuteOfDay()
	if elapsed <= 0 {
		elapsed += minutesPerDay
	}
	hours := float64(elapsed)/60 - breakHours
	if hours < 0 {
		return 0
	}
	return hours
}
