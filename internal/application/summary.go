package application

import "github.com/example/hrms-lite/internal/validation"

// Tally folds grouped status counts into present and absent totals. Statuses
// other than Present and Absent are skipped.
func Tally(counts []StatusCount) (present, absent int) {
	for _, c := range counts {
		switch c.Status {
		case validation.StatusPresent:
			present += c.Count
		case validation.StatusAbsent:
			absent += c.Count
		}
	}
	return present, absent
}

// NewSummary derives the headcount for date from the employee total and the
// grouped status counts.
func NewSummary(date string, totalEmployees int, counts []StatusCount) Summary {
	present, absent := Tally(counts)
	return Summary{
		Date:           date,
		TotalEmployees: totalEmployees,
		Present:        present,
		Absent:         absent,
		NotMarked:      totalEmployees - (present + absent),
	}
}
