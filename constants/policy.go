package constants

// Attendance policy. These values are intentionally kept as named constants:
// the preview thresholds differ from the deactivation threshold (3 vs 6) and
// must stay separate until the product decides which one is authoritative.
const (
	// Days after the last approved check-in during which a student is not
	// counted as absent.
	GraceDays = 3

	// Sessions a student is expected to attend per week.
	ExpectedSessionsPerWeek = 3

	// Consecutive absences that put a student in "warning".
	WarningThreshold = 4

	// Consecutive absences at which a student is deactivated. Also the cap
	// applied to the computed absence count.
	DeactivationThreshold = 6

	// Sessions expected per month; baseline for the frequency percentage.
	MonthlyExpectedSessions = 8

	// Monthly frequency (percent) below which a student is "low_frequency".
	LowFrequencyCutoff = 50

	// Risk preview buckets (stricter than the deactivation run).
	PreviewWarningThreshold  = 2
	PreviewCriticalThreshold = 3
)
