package services

import (
	"testing"
	"time"

	"academy/constants"
	apperrors "academy/errors"
	"academy/models"
	"academy/services/logger"
)

// fakeCheckInStore guarda os registros em memória para os testes do gate.
type fakeCheckInStore struct {
	records []models.CheckInRecord
	nextID  uint
}

func newFakeCheckInStore() *fakeCheckInStore {
	return &fakeCheckInStore{nextID: 1}
}

func (f *fakeCheckInStore) FindByStudentAndDate(studentID uint, date time.Time) (*models.CheckInRecord, error) {
	for i := range f.records {
		if f.records[i].StudentID == studentID && f.records[i].Date.Equal(date) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCheckInStore) Create(record *models.CheckInRecord) error {
	record.ID = f.nextID
	f.nextID++
	record.CreatedAt = time.Now()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeCheckInStore) FindPendingByID(id uint) (*models.CheckInRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].Status == constants.CheckInStatusPending {
			copied := f.records[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCheckInStore) UpdateStatus(record *models.CheckInRecord) error {
	for i := range f.records {
		if f.records[i].ID == record.ID && f.records[i].Status == constants.CheckInStatusPending {
			f.records[i].Status = record.Status
			f.records[i].ApprovedBy = record.ApprovedBy
			f.records[i].ApprovedAt = record.ApprovedAt
			return nil
		}
	}
	// como no banco: o update guardado por status não atinge nenhuma linha
	return apperrors.ErrCheckInNotFound
}

func (f *fakeCheckInStore) ListByStudent(studentID uint) ([]models.CheckInRecord, error) {
	var out []models.CheckInRecord
	for i := range f.records {
		if f.records[i].StudentID == studentID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func newTestCheckInService(store CheckInStore) *CheckInService {
	return NewCheckInService(CheckInServiceOptions{
		Store:  store,
		Logger: logger.NewDefaultLogger(logger.ErrorLevel),
	})
}

func activeStudent(id uint) models.User {
	student := models.User{
		Name:   "Aluno Teste",
		Role:   constants.RoleStudent,
		Active: true,
	}
	student.ID = id
	return student
}

func TestSubmitCreatesPendingRecord(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)

	now := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)

	record, err := service.Submit(activeStudent(1), now)
	if err != nil {
		t.Fatalf("Submit() retornou erro inesperado: %v", err)
	}

	if record.Status != constants.CheckInStatusPending {
		t.Errorf("Status = %s, esperado %s", record.Status, constants.CheckInStatusPending)
	}
	if !record.Date.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, esperado a data truncada do dia", record.Date)
	}
	if record.StudentID != 1 {
		t.Errorf("StudentID = %d, esperado 1", record.StudentID)
	}
}

func TestSubmitRejectsSecondCheckInSameDay(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)

	morning := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 20, 19, 0, 0, 0, time.UTC)

	if _, err := service.Submit(activeStudent(1), morning); err != nil {
		t.Fatalf("primeiro Submit() falhou: %v", err)
	}

	_, err := service.Submit(activeStudent(1), evening)
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeDuplicateCheckIn {
		t.Fatalf("segundo Submit() = %v, esperado erro de check-in duplicado", err)
	}
	if appErr.Message != "Aluno já fez check-in hoje" {
		t.Errorf("mensagem = %q", appErr.Message)
	}

	// no dia seguinte o aluno pode de novo
	nextDay := time.Date(2026, 8, 21, 8, 0, 0, 0, time.UTC)
	if _, err := service.Submit(activeStudent(1), nextDay); err != nil {
		t.Errorf("Submit() no dia seguinte falhou: %v", err)
	}
}

func TestSubmitOnlyForActiveStudents(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	t.Run("instrutor nao faz check-in", func(t *testing.T) {
		instructor := activeStudent(2)
		instructor.Role = constants.RoleInstructor

		_, err := service.Submit(instructor, now)
		appErr := apperrors.GetAppError(err)
		if appErr == nil || appErr.Code != apperrors.ErrCodeForbidden {
			t.Fatalf("Submit() = %v, esperado acesso negado", err)
		}
	})

	t.Run("conta desativada e bloqueada", func(t *testing.T) {
		inactive := activeStudent(3)
		inactive.Active = false

		_, err := service.Submit(inactive, now)
		appErr := apperrors.GetAppError(err)
		if appErr == nil || appErr.Code != apperrors.ErrCodeAccountInactive {
			t.Fatalf("Submit() = %v, esperado conta desativada", err)
		}
	})
}

func TestReviewTransitionsOnce(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	record, err := service.Submit(activeStudent(1), now)
	if err != nil {
		t.Fatalf("Submit() falhou: %v", err)
	}

	reviewTime := now.Add(2 * time.Hour)
	reviewed, err := service.Review(record.ID, constants.CheckInStatusApproved, 9, reviewTime)
	if err != nil {
		t.Fatalf("Review() falhou: %v", err)
	}

	if reviewed.Status != constants.CheckInStatusApproved {
		t.Errorf("Status = %s, esperado approved", reviewed.Status)
	}
	if reviewed.ApprovedBy == nil || *reviewed.ApprovedBy != 9 {
		t.Errorf("ApprovedBy = %v, esperado 9", reviewed.ApprovedBy)
	}
	if reviewed.ApprovedAt == nil || !reviewed.ApprovedAt.Equal(reviewTime) {
		t.Errorf("ApprovedAt = %v, esperado %v", reviewed.ApprovedAt, reviewTime)
	}

	// segunda revisão do mesmo registro não encontra mais um pendente
	_, err = service.Review(record.ID, constants.CheckInStatusRejected, 9, reviewTime)
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeCheckInNotFound {
		t.Fatalf("segunda Review() = %v, esperado pendente não encontrado", err)
	}
}

// raceReviewStore simula outro revisor processando o registro entre a leitura
// do pendente e o update guardado.
type raceReviewStore struct {
	*fakeCheckInStore
	otherReviewerID uint
}

func (s *raceReviewStore) FindPendingByID(id uint) (*models.CheckInRecord, error) {
	record, err := s.fakeCheckInStore.FindPendingByID(id)
	if record != nil {
		when := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
		other := *record
		other.Status = constants.CheckInStatusApproved
		other.ApprovedBy = &s.otherReviewerID
		other.ApprovedAt = &when
		if err := s.fakeCheckInStore.UpdateStatus(&other); err != nil {
			return nil, err
		}
	}
	return record, err
}

func TestReviewLosesRaceToConcurrentReviewer(t *testing.T) {
	base := newFakeCheckInStore()
	store := &raceReviewStore{fakeCheckInStore: base, otherReviewerID: 8}
	service := newTestCheckInService(store)
	now := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)

	record, err := newTestCheckInService(base).Submit(activeStudent(1), now)
	if err != nil {
		t.Fatalf("Submit() falhou: %v", err)
	}

	_, err = service.Review(record.ID, constants.CheckInStatusRejected, 9, now.Add(time.Hour))
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeCheckInNotFound {
		t.Fatalf("Review() = %v, esperado pendente não encontrado", err)
	}

	// a transição do primeiro revisor permanece intacta
	stored := base.records[0]
	if stored.Status != constants.CheckInStatusApproved {
		t.Errorf("Status = %s, esperado approved", stored.Status)
	}
	if stored.ApprovedBy == nil || *stored.ApprovedBy != 8 {
		t.Errorf("ApprovedBy = %v, esperado 8", stored.ApprovedBy)
	}
}

func TestReviewValidatesStatus(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)

	_, err := service.Review(1, "cancelled", 9, time.Now())
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeInvalidStatus {
		t.Fatalf("Review() = %v, esperado status inválido", err)
	}
}

func TestReviewUnknownCheckIn(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)

	_, err := service.Review(42, constants.CheckInStatusApproved, 9, time.Now())
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeCheckInNotFound {
		t.Fatalf("Review() = %v, esperado pendente não encontrado", err)
	}
}

func TestHistoryReturnsStudentRecords(t *testing.T) {
	store := newFakeCheckInStore()
	service := newTestCheckInService(store)

	day1 := time.Date(2026, 8, 18, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 19, 8, 0, 0, 0, time.UTC)

	if _, err := service.Submit(activeStudent(1), day1); err != nil {
		t.Fatalf("Submit() falhou: %v", err)
	}
	if _, err := service.Submit(activeStudent(1), day2); err != nil {
		t.Fatalf("Submit() falhou: %v", err)
	}
	if _, err := service.Submit(activeStudent(2), day1); err != nil {
		t.Fatalf("Submit() falhou: %v", err)
	}

	records, err := service.History(1)
	if err != nil {
		t.Fatalf("History() falhou: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("History() retornou %d registros, esperado 2", len(records))
	}
}
