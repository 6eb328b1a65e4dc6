package dto

import "time"

// MonthlyStats resume os check-ins do mês corrente.
type MonthlyStats struct {
	Approved          int `json:"approved"`
	Pending           int `json:"pending"`
	Rejected          int `json:"rejected"`
	Frequency         int `json:"frequency"`
	ExpectedTrainings int `json:"expectedTrainings"`
}

// AbsenceStats é sempre recalculado a partir do histórico; nunca persistido.
type AbsenceStats struct {
	ConsecutiveAbsences  int     `json:"consecutiveAbsences"`
	LastCheckIn          *string `json:"lastCheckIn"`
	DaysSinceLastCheckIn *int    `json:"daysSinceLastCheckIn"`
}

type StudentAbsenceView struct {
	StudentID     uint         `json:"studentId"`
	StudentName   string       `json:"studentName"`
	Belt          string       `json:"belt"`
	Degree        int          `json:"degree"`
	Active        bool         `json:"active"`
	MonthlyStats  MonthlyStats `json:"monthlyStats"`
	AbsenceStats  AbsenceStats `json:"absenceStats"`
	Status        string       `json:"status"`
	StatusMessage string       `json:"statusMessage"`
}

type AbsenceSummary struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Warning      int `json:"warning"`
	AtRisk       int `json:"atRisk"`
	LowFrequency int `json:"lowFrequency"`
}

type BulkAbsenceView struct {
	Summary  AbsenceSummary       `json:"summary"`
	Students []StudentAbsenceView `json:"students"`
}

// StudentRiskInfo é a linha por aluno do preview e do relatório de execução.
type StudentRiskInfo struct {
	ID                   uint    `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Belt                 string  `json:"belt"`
	ConsecutiveAbsences  int     `json:"consecutiveAbsences"`
	LastCheckIn          *string `json:"lastCheckIn"`
	DaysSinceLastCheckIn *int    `json:"daysSinceLastCheckIn"`
}

type RiskPreviewSummary struct {
	TotalStudents int `json:"totalStudents"`
	Safe          int `json:"safe"`
	Warning       int `json:"warning"`
	Critical      int `json:"critical"`
}

type RiskAnalysis struct {
	Safe     []StudentRiskInfo `json:"safe"`
	Warning  []StudentRiskInfo `json:"warning"`
	Critical []StudentRiskInfo `json:"critical"`
}

type RiskPreview struct {
	Summary      RiskPreviewSummary `json:"summary"`
	RiskAnalysis RiskAnalysis       `json:"riskAnalysis"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}

type DeactivationSummary struct {
	TotalActiveStudents int `json:"totalActiveStudents"`
	StudentsDeactivated int `json:"studentsDeactivated"`
	StudentsAtRisk      int `json:"studentsAtRisk"`
}

type DeactivationReport struct {
	Message             string              `json:"message"`
	Summary             DeactivationSummary `json:"summary"`
	DeactivatedStudents []StudentRiskInfo   `json:"deactivatedStudents"`
	StudentsAtRisk      []StudentRiskInfo   `json:"studentsAtRisk"`
	ExecutedBy          string              `json:"executedBy"`
	ExecutedAt          time.Time           `json:"executedAt"`
}

// ManualDeactivationResult devolve o aluno atualizado junto com as
// estatísticas que justificaram a desativação.
type ManualDeactivationResult struct {
	Student      UserResponse `json:"student"`
	AbsenceStats AbsenceStats `json:"absenceStats"`
}
