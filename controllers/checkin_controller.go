package controllers

import (
	"time"

	"academy/constants"
	"academy/dto"
	"academy/errors"
	"academy/models"
	"academy/response"
	"academy/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CheckInController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Service *services.CheckInService
}

func NewCheckInController(db *gorm.DB, redisCli *redis.Client, service *services.CheckInService) CheckInController {
	return CheckInController{
		DB:      db,
		Redis:   redisCli,
		Service: service,
	}
}

// respondAppError traduz um AppError para o status HTTP correspondente.
func respondAppError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeForbidden:
		response.Forbidden(c)
	case errors.ErrCodeAccountInactive:
		response.ForbiddenWithMessage(c, appErr.Message)
	case errors.ErrCodeUserNotFound, errors.ErrCodeCheckInNotFound, errors.ErrCodeDBNotFound:
		response.NotFoundWithMessage(c, appErr.Message)
	case errors.ErrCodeDBError:
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

func checkInToResponse(record models.CheckInRecord) dto.CheckInResponse {
	return dto.CheckInResponse{
		ID:         record.ID,
		StudentID:  record.StudentID,
		Date:       record.Date.Format("2006-01-02"),
		Status:     record.Status,
		ApprovedBy: record.ApprovedBy,
		ApprovedAt: record.ApprovedAt,
		CreatedAt:  record.CreatedAt,
	}
}

// CheckIn registra o check-in do dia para o aluno autenticado.
func (ct CheckInController) CheckIn(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var student models.User
	if err := ct.DB.First(&student, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	record, err := ct.Service.Submit(student, time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}

	invalidateUserCaches(ct.Redis)

	response.Success(c, checkInToResponse(*record))
}

// UpdateCheckInStatus aprova ou rejeita um check-in pendente.
func (ct CheckInController) UpdateCheckInStatus(c *gin.Context) {
	var req dto.CheckInStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reviewerID := c.GetUint("userID")

	record, err := ct.Service.Review(req.CheckInID, req.Status, reviewerID, time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}

	invalidateUserCaches(ct.Redis)

	response.Success(c, checkInToResponse(*record))
}

// GetMyCheckIns lista o histórico de check-ins do usuário autenticado.
func (ct CheckInController) GetMyCheckIns(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	records, err := ct.Service.History(currentUserID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	history := make([]dto.CheckInResponse, 0, len(records))
	for _, record := range records {
		history = append(history, checkInToResponse(record))
	}

	response.SuccessWithTotal(c, history, len(history))
}

// GetPendingCheckIns lista a fila de aprovação do instrutor.
func (ct CheckInController) GetPendingCheckIns(c *gin.Context) {
	var rows []dto.PendingCheckIn

	err := ct.DB.Model(&models.CheckInRecord{}).
		Select("check_in_records.id, check_in_records.student_id, users.name AS student_name, users.belt, to_char(check_in_records.date, 'YYYY-MM-DD') AS date, check_in_records.created_at").
		Joins("JOIN users ON users.id = check_in_records.student_id").
		Where("check_in_records.status = ?", constants.CheckInStatusPending).
		Order("check_in_records.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithTotal(c, rows, len(rows))
}

// GetCheckInCalendar devolve os check-ins de um aluno em um mês, para montar o
// calendário de presença. Aceita ?month=2006-01; o padrão é o mês corrente.
func (ct CheckInController) GetCheckInCalendar(c *gin.Context) {
	currentUserID := c.GetUint("userID")
	currentUserRole := c.GetInt("userRole")

	studentID := currentUserID
	if idStr := c.Query("studentId"); idStr != "" {
		// Aluno só enxerga o próprio calendário.
		if currentUserRole == constants.RoleStudent {
			response.Forbidden(c)
			return
		}
		var target models.User
		if err := ct.DB.Where("id = ? AND role = ?", idStr, constants.RoleStudent).First(&target).Error; err != nil {
			response.NotFound(c)
			return
		}
		studentID = target.ID
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		response.BadRequest(c, "Mês inválido. Use o formato AAAA-MM")
		return
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	var records []models.CheckInRecord
	if err := ct.DB.Where("student_id = ? AND date >= ? AND date < ?", studentID, monthStart, monthEnd).
		Order("date ASC").Find(&records).Error; err != nil {
		response.ServerError(c)
		return
	}

	days := make([]dto.CheckInResponse, 0, len(records))
	for _, record := range records {
		days = append(days, checkInToResponse(record))
	}

	response.Success(c, gin.H{
		"month": month,
		"days":  days,
	})
}
