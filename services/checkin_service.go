package services

import (
	"errors"
	"time"

	"academy/constants"
	apperrors "academy/errors"
	"academy/models"
	"academy/services/logger"

	"gorm.io/gorm"
)

// CheckInStore é o contrato mínimo de persistência que o gate de check-in
// consome. A implementação real fica sobre o gorm; os testes usam um fake.
type CheckInStore interface {
	FindByStudentAndDate(studentID uint, date time.Time) (*models.CheckInRecord, error)
	Create(record *models.CheckInRecord) error
	FindPendingByID(id uint) (*models.CheckInRecord, error)
	UpdateStatus(record *models.CheckInRecord) error
	ListByStudent(studentID uint) ([]models.CheckInRecord, error)
}

type CheckInService struct {
	store  CheckInStore
	logger logger.Logger
}

type CheckInServiceOptions struct {
	Store  CheckInStore
	Logger logger.Logger
}

func NewCheckInService(opts CheckInServiceOptions) *CheckInService {
	return &CheckInService{
		store:  opts.Store,
		logger: opts.Logger,
	}
}

// Submit registra o check-in pendente do dia para um aluno. Um por aluno por
// dia de calendário; a segunda tentativa falha.
func (s *CheckInService) Submit(student models.User, now time.Time) (*models.CheckInRecord, error) {
	if student.Role != constants.RoleStudent {
		return nil, apperrors.NewAppError(apperrors.ErrCodeForbidden,
			"Apenas alunos podem fazer check-in", nil)
	}

	if !student.Active {
		return nil, apperrors.NewAppError(apperrors.ErrCodeAccountInactive,
			"Sua conta está desativada. Procure seu instrutor para reativá-la", nil)
	}

	today := truncateToDay(now)

	existing, err := s.store.FindByStudentAndDate(student.ID, today)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar check-ins", err)
	}
	if existing != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDuplicateCheckIn,
			"Aluno já fez check-in hoje", apperrors.ErrDuplicateCheckIn)
	}

	record := &models.CheckInRecord{
		StudentID: student.ID,
		Date:      today,
		Status:    constants.CheckInStatusPending,
	}
	if err := s.store.Create(record); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao registrar check-in", err)
	}

	s.logger.Info("check-in registrado: aluno %d em %s", student.ID, today.Format("2006-01-02"))
	return record, nil
}

// Review aprova ou rejeita um check-in pendente. A transição acontece uma
// única vez: registros já processados (ou inexistentes) retornam not found.
func (s *CheckInService) Review(checkInID uint, status string, reviewerID uint, now time.Time) (*models.CheckInRecord, error) {
	if status != constants.CheckInStatusApproved && status != constants.CheckInStatusRejected {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidStatus,
			"Status deve ser approved ou rejected", apperrors.ErrInvalidStatus)
	}

	record, err := s.store.FindPendingByID(checkInID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar check-in", err)
	}
	if record == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeCheckInNotFound,
			"Check-in pendente não encontrado", apperrors.ErrCheckInNotFound)
	}

	approvedAt := now
	record.Status = status
	record.ApprovedBy = &reviewerID
	record.ApprovedAt = &approvedAt

	if err := s.store.UpdateStatus(record); err != nil {
		// outro revisor pode ter processado o registro entre a leitura e o
		// update guardado; a segunda transição não acontece
		if errors.Is(err, apperrors.ErrCheckInNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeCheckInNotFound,
				"Check-in pendente não encontrado", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao atualizar check-in", err)
	}

	s.logger.Info("check-in %d %s por %d", checkInID, status, reviewerID)
	return record, nil
}

// History lista o histórico completo de check-ins de um aluno.
func (s *CheckInService) History(studentID uint) ([]models.CheckInRecord, error) {
	records, err := s.store.ListByStudent(studentID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError,
			"Erro ao consultar check-ins", err)
	}
	return records, nil
}

// GormCheckInStore implementa CheckInStore sobre o banco.
type GormCheckInStore struct {
	DB *gorm.DB
}

func NewGormCheckInStore(db *gorm.DB) *GormCheckInStore {
	return &GormCheckInStore{DB: db}
}

func (s *GormCheckInStore) FindByStudentAndDate(studentID uint, date time.Time) (*models.CheckInRecord, error) {
	var record models.CheckInRecord
	err := s.DB.Where("student_id = ? AND DATE(date) = ?", studentID, date.Format("2006-01-02")).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GormCheckInStore) Create(record *models.CheckInRecord) error {
	return s.DB.Create(record).Error
}

func (s *GormCheckInStore) FindPendingByID(id uint) (*models.CheckInRecord, error) {
	var record models.CheckInRecord
	err := s.DB.Where("id = ? AND status = ?", id, constants.CheckInStatusPending).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GormCheckInStore) UpdateStatus(record *models.CheckInRecord) error {
	tx := s.DB.Model(&models.CheckInRecord{}).
		Where("id = ? AND status = ?", record.ID, constants.CheckInStatusPending).
		Updates(map[string]interface{}{
			"status":      record.Status,
			"approved_by": record.ApprovedBy,
			"approved_at": record.ApprovedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return apperrors.ErrCheckInNotFound
	}
	return nil
}

func (s *GormCheckInStore) ListByStudent(studentID uint) ([]models.CheckInRecord, error) {
	var records []models.CheckInRecord
	if err := s.DB.Where("student_id = ?", studentID).Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
