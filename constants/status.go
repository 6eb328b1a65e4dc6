package constants

// User roles
const (
	RoleAdmin      = 1
	RoleInstructor = 2
	RoleStudent    = 3
)

// Check-in status
const (
	CheckInStatusPending  = "pending"
	CheckInStatusApproved = "approved"
	CheckInStatusRejected = "rejected"
)

// Absence/risk status
const (
	AbsenceStatusActive       = "active"
	AbsenceStatusWarning      = "warning"
	AbsenceStatusAtRisk       = "at_risk"
	AbsenceStatusLowFrequency = "low_frequency"
)

// Risk preview buckets
const (
	RiskBucketSafe     = "safe"
	RiskBucketWarning  = "warning"
	RiskBucketCritical = "critical"
)

// Belts (faixas)
var Belts = []string{"branca", "azul", "roxa", "marrom", "preta"}
