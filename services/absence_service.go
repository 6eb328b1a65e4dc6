package services

import (
	"fmt"
	"math"
	"time"

	"academy/constants"
	"academy/dto"
	"academy/models"
)

// truncateToDay normaliza um instante para a data de calendário (sem hora).
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LastApprovedCheckIn retorna a data do último check-in aprovado, ou nil se o
// aluno não tem nenhum check-in aprovado. Apenas registros aprovados ancoram a
// última presença; pendentes e rejeitados contam como ausência.
func LastApprovedCheckIn(records []models.CheckInRecord) *time.Time {
	var last *time.Time
	for i := range records {
		if records[i].Status != constants.CheckInStatusApproved {
			continue
		}
		d := truncateToDay(records[i].Date)
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return last
}

// DaysSince conta dias de calendário completos entre a data informada e hoje.
func DaysSince(date time.Time, now time.Time) int {
	days := int(truncateToDay(now).Sub(truncateToDay(date)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ConsecutiveAbsences calcula as faltas consecutivas de um aluno a partir do
// histórico bruto de check-ins.
//
// Aluno sem nenhum check-in aprovado (ex.: recém matriculado) tem zero faltas;
// dentro da janela de tolerância de 3 dias também. Fora dela, projeta as
// sessões esperadas desde a última presença (3 por semana) e limita ao teto de
// desativação para contas dormentes não produzirem números sem sentido.
func ConsecutiveAbsences(records []models.CheckInRecord, now time.Time) int {
	last := LastApprovedCheckIn(records)
	if last == nil {
		return 0
	}

	daysSince := DaysSince(*last, now)
	if daysSince <= constants.GraceDays {
		return 0
	}

	weeksSince := float64(daysSince) / 7
	expected := int(weeksSince * constants.ExpectedSessionsPerWeek)
	if expected > constants.DeactivationThreshold {
		return constants.DeactivationThreshold
	}
	return expected
}

// CalcMonthlyStats agrega os check-ins do mês de calendário corrente.
func CalcMonthlyStats(records []models.CheckInRecord, now time.Time) dto.MonthlyStats {
	stats := dto.MonthlyStats{
		ExpectedTrainings: constants.MonthlyExpectedSessions,
	}

	currentMonth := now.Format("2006-01")
	for i := range records {
		if records[i].Date.Format("2006-01") != currentMonth {
			continue
		}
		switch records[i].Status {
		case constants.CheckInStatusApproved:
			stats.Approved++
		case constants.CheckInStatusPending:
			stats.Pending++
		case constants.CheckInStatusRejected:
			stats.Rejected++
		}
	}

	frequency := int(math.Round(float64(stats.Approved) / constants.MonthlyExpectedSessions * 100))
	if frequency > 100 {
		frequency = 100
	}
	stats.Frequency = frequency

	return stats
}

// ClassifyRisk combina faltas consecutivas e frequência mensal no status do
// aluno. A ordem das condições é a prioridade da política: risco de
// desativação vence atenção, que vence frequência baixa.
func ClassifyRisk(consecutiveAbsences int, monthlyFrequency int) (string, string) {
	switch {
	case consecutiveAbsences >= constants.DeactivationThreshold:
		return constants.AbsenceStatusAtRisk,
			fmt.Sprintf("%d faltas consecutivas - Risco de desativação", consecutiveAbsences)
	case consecutiveAbsences >= constants.WarningThreshold:
		return constants.AbsenceStatusWarning,
			fmt.Sprintf("%d faltas consecutivas - Atenção necessária", consecutiveAbsences)
	case monthlyFrequency < constants.LowFrequencyCutoff:
		return constants.AbsenceStatusLowFrequency, "Frequência baixa este mês"
	default:
		return constants.AbsenceStatusActive, "Aluno ativo"
	}
}

// CalcAbsenceStats monta o bloco de estatísticas de ausência de um aluno.
func CalcAbsenceStats(records []models.CheckInRecord, now time.Time) dto.AbsenceStats {
	stats := dto.AbsenceStats{
		ConsecutiveAbsences: ConsecutiveAbsences(records, now),
	}

	if last := LastApprovedCheckIn(records); last != nil {
		lastStr := last.Format("2006-01-02")
		days := DaysSince(*last, now)
		stats.LastCheckIn = &lastStr
		stats.DaysSinceLastCheckIn = &days
	}

	return stats
}

// BuildAbsenceView calcula a visão completa de ausência de um aluno. Tudo é
// derivado do histórico e do relógio; nada aqui é persistido.
func BuildAbsenceView(student models.User, now time.Time) dto.StudentAbsenceView {
	monthly := CalcMonthlyStats(student.CheckIns, now)
	absence := CalcAbsenceStats(student.CheckIns, now)
	status, message := ClassifyRisk(absence.ConsecutiveAbsences, monthly.Frequency)

	return dto.StudentAbsenceView{
		StudentID:     student.ID,
		StudentName:   student.Name,
		Belt:          student.Belt,
		Degree:        student.Degree,
		Active:        student.Active,
		MonthlyStats:  monthly,
		AbsenceStats:  absence,
		Status:        status,
		StatusMessage: message,
	}
}

// BuildRiskInfo monta a linha por aluno usada no preview e no relatório de
// desativação.
func BuildRiskInfo(student models.User, now time.Time) dto.StudentRiskInfo {
	absence := CalcAbsenceStats(student.CheckIns, now)
	return dto.StudentRiskInfo{
		ID:                   student.ID,
		Name:                 student.Name,
		Email:                student.Email,
		Belt:                 student.Belt,
		ConsecutiveAbsences:  absence.ConsecutiveAbsences,
		LastCheckIn:          absence.LastCheckIn,
		DaysSinceLastCheckIn: absence.DaysSinceLastCheckIn,
	}
}
