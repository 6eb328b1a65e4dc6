package services

import (
	"errors"
	"time"

	"academy/constants"
	"academy/dto"
	apperrors "academy/errors"
	"academy/models"
	"academy/services/logger"
	"academy/services/notification"

	"gorm.io/gorm"
)

// StudentStore é o contrato de persistência da política de desativação.
type StudentStore interface {
	// ListActiveStudents retorna todos os alunos ativos com o histórico de
	// check-ins carregado.
	ListActiveStudents() ([]models.User, error)
	FindStudent(id uint) (*models.User, error)
	SetStudentActive(id uint, active bool) error
}

type DeactivationService struct {
	store    StudentStore
	logger   logger.Logger
	notifier notification.Service
}

type DeactivationServiceOptions struct {
	Store    StudentStore
	Logger   logger.Logger
	Notifier notification.Service
}

func NewDeactivationService(opts DeactivationServiceOptions) *DeactivationService {
	return &DeactivationService{
		store:    opts.Store,
		logger:   opts.Logger,
		notifier: opts.Notifier,
	}
}

// PreviewRisk classifica todos os alunos ativos nos buckets do preview sem
// alterar nada. Os limiares aqui (crítico a partir de 3) são deliberadamente
// mais rígidos que o limiar de desativação (6); ver DESIGN.md.
func (s *DeactivationService) PreviewRisk(now time.Time) (*dto.RiskPreview, error) {
	students, err := s.store.ListActiveStudents()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar alunos ativos", err)
	}

	preview := &dto.RiskPreview{
		RiskAnalysis: dto.RiskAnalysis{
			Safe:     []dto.StudentRiskInfo{},
			Warning:  []dto.StudentRiskInfo{},
			Critical: []dto.StudentRiskInfo{},
		},
		GeneratedAt: now,
	}

	for _, student := range students {
		info := BuildRiskInfo(student, now)
		switch {
		case info.ConsecutiveAbsences >= constants.PreviewCriticalThreshold:
			preview.RiskAnalysis.Critical = append(preview.RiskAnalysis.Critical, info)
		case info.ConsecutiveAbsences >= constants.PreviewWarningThreshold:
			preview.RiskAnalysis.Warning = append(preview.RiskAnalysis.Warning, info)
		default:
			preview.RiskAnalysis.Safe = append(preview.RiskAnalysis.Safe, info)
		}
	}

	preview.Summary = dto.RiskPreviewSummary{
		TotalStudents: len(students),
		Safe:          len(preview.RiskAnalysis.Safe),
		Warning:       len(preview.RiskAnalysis.Warning),
		Critical:      len(preview.RiskAnalysis.Critical),
	}

	return preview, nil
}

// Execute roda a política de desativação sobre todos os alunos ativos.
// Alunos com faltas no limiar são desativados um a um, em melhor esforço: a
// falha em um aluno é registrada e não interrompe os demais. Sucesso parcial
// é um resultado válido e reportado.
func (s *DeactivationService) Execute(executedBy string, now time.Time) (*dto.DeactivationReport, error) {
	students, err := s.store.ListActiveStudents()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar alunos ativos", err)
	}

	deactivated := []dto.StudentRiskInfo{}
	atRisk := []dto.StudentRiskInfo{}

	for _, student := range students {
		info := BuildRiskInfo(student, now)

		switch {
		case info.ConsecutiveAbsences >= constants.DeactivationThreshold:
			if err := s.store.SetStudentActive(student.ID, false); err != nil {
				s.logger.Error("falha ao desativar aluno %d: %v", student.ID, err)
				continue
			}
			s.logger.Info("aluno %d desativado com %d faltas consecutivas",
				student.ID, info.ConsecutiveAbsences)
			deactivated = append(deactivated, info)
		case info.ConsecutiveAbsences >= constants.WarningThreshold:
			atRisk = append(atRisk, info)
		}
	}

	report := &dto.DeactivationReport{
		Message: "Rodada de desativação concluída",
		Summary: dto.DeactivationSummary{
			TotalActiveStudents: len(students),
			StudentsDeactivated: len(deactivated),
			StudentsAtRisk:      len(atRisk),
		},
		DeactivatedStudents: deactivated,
		StudentsAtRisk:      atRisk,
		ExecutedBy:          executedBy,
		ExecutedAt:          now,
	}

	if s.notifier != nil {
		notice := notification.NewDeactivationNoticeBuilder(executedBy, len(deactivated), len(atRisk)).Build()
		if err := s.notifier.SendMessage(notice); err != nil {
			s.logger.Error("falha ao enviar aviso de desativação: %v", err)
		}
	}

	return report, nil
}

// DeactivateStudent desativa manualmente um único aluno. A contagem de faltas
// é recalculada na hora; abaixo do limiar a operação é recusada — não dá para
// forçar uma desativação que a política não justifica.
func (s *DeactivationService) DeactivateStudent(studentID uint, now time.Time) (*models.User, dto.AbsenceStats, error) {
	student, err := s.store.FindStudent(studentID)
	if err != nil {
		return nil, dto.AbsenceStats{}, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar aluno", err)
	}
	if student == nil {
		return nil, dto.AbsenceStats{}, apperrors.NewAppError(apperrors.ErrCodeUserNotFound,
			"Aluno não encontrado", apperrors.ErrUserNotFound)
	}

	stats := CalcAbsenceStats(student.CheckIns, now)
	if stats.ConsecutiveAbsences < constants.DeactivationThreshold {
		return nil, stats, apperrors.NewAppError(apperrors.ErrCodePolicyPrecondition,
			"Aluno está abaixo do limiar de desativação", apperrors.ErrBelowThreshold)
	}

	if err := s.store.SetStudentActive(student.ID, false); err != nil {
		return nil, stats, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao desativar aluno", err)
	}
	student.Active = false

	s.logger.Info("aluno %d desativado manualmente com %d faltas consecutivas",
		student.ID, stats.ConsecutiveAbsences)

	return student, stats, nil
}

// DeactivationAdapter expõe a rodada de desativação no contrato que o job
// agendado consome.
type DeactivationAdapter struct {
	service *DeactivationService
}

func NewDeactivationAdapter(service *DeactivationService) *DeactivationAdapter {
	return &DeactivationAdapter{service: service}
}

func (a *DeactivationAdapter) RunDeactivation(executedBy string, now time.Time) error {
	_, err := a.service.Execute(executedBy, now)
	return err
}

// GormStudentStore implementa StudentStore sobre o banco.
type GormStudentStore struct {
	DB *gorm.DB
}

func NewGormStudentStore(db *gorm.DB) *GormStudentStore {
	return &GormStudentStore{DB: db}
}

func (s *GormStudentStore) ListActiveStudents() ([]models.User, error) {
	var students []models.User
	err := s.DB.Preload("CheckIns").
		Where("role = ? AND active = ?", constants.RoleStudent, true).
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (s *GormStudentStore) FindStudent(id uint) (*models.User, error) {
	var student models.User
	err := s.DB.Preload("CheckIns").
		Where("id = ? AND role = ?", id, constants.RoleStudent).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *GormStudentStore) SetStudentActive(id uint, active bool) error {
	return s.DB.Model(&models.User{}).Where("id = ?", id).
		Update("active", active).Error
}
