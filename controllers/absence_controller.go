package controllers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"academy/config"
	"academy/constants"
	"academy/dto"
	"academy/models"
	"academy/response"
	"academy/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// absenceReportCacheKey inclui a data corrente: o relatório é derivado do
// relógio e um cache de ontem não pode atravessar a virada do dia.
func absenceReportCacheKey(now time.Time) string {
	return "absences:report:" + now.Format("2006-01-02")
}

// executorDisplayName identifica quem disparou a rodada no relatório. Quando o
// nome não está disponível, fica o id autenticado, nunca um rótulo genérico.
func executorDisplayName(executor *models.User, err error, userID uint) string {
	if err != nil || executor.Name == "" {
		return fmt.Sprintf("usuário %d", userID)
	}
	return executor.Name
}

type AbsenceController struct {
	DB           *gorm.DB
	Redis        *redis.Client
	Deactivation *services.DeactivationService
}

func NewAbsenceController(db *gorm.DB, redisCli *redis.Client, deactivation *services.DeactivationService) AbsenceController {
	return AbsenceController{
		DB:           db,
		Redis:        redisCli,
		Deactivation: deactivation,
	}
}

// GetStudentAbsences devolve a visão de ausência de um aluno. Aluno só
// consulta a si mesmo; instrutor e admin consultam qualquer um.
func (a AbsenceController) GetStudentAbsences(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	currentUserID := c.GetUint("userID")
	currentUserRole := c.GetInt("userRole")

	if currentUserRole == constants.RoleStudent && uint(id) != currentUserID {
		response.Forbidden(c)
		return
	}

	var student models.User
	if err := a.DB.Preload("CheckIns").
		Where("id = ? AND role = ?", id, constants.RoleStudent).
		First(&student).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, services.BuildAbsenceView(student, time.Now()))
}

// GetAllAbsences monta o relatório de ausência de todos os alunos ativos, com
// o sumário por status. O relatório é derivado do relógio, então o cache é
// curto.
func (a AbsenceController) GetAllAbsences(c *gin.Context) {
	now := time.Now()
	cacheKey := absenceReportCacheKey(now)

	var report dto.BulkAbsenceView
	if err := services.GetFromRedis(config.Ctx, a.Redis, cacheKey, &report); err == nil && report.Summary.Total > 0 {
		response.Success(c, report)
		return
	}

	var students []models.User
	if err := a.DB.Preload("CheckIns").
		Where("role = ? AND active = ?", constants.RoleStudent, true).
		Find(&students).Error; err != nil {
		response.ServerError(c)
		return
	}

	report.Students = make([]dto.StudentAbsenceView, 0, len(students))

	for _, student := range students {
		view := services.BuildAbsenceView(student, now)
		report.Students = append(report.Students, view)

		switch view.Status {
		case constants.AbsenceStatusActive:
			report.Summary.Active++
		case constants.AbsenceStatusWarning:
			report.Summary.Warning++
		case constants.AbsenceStatusAtRisk:
			report.Summary.AtRisk++
		case constants.AbsenceStatusLowFrequency:
			report.Summary.LowFrequency++
		}
	}
	report.Summary.Total = len(students)

	if err := services.SetToRedis(config.Ctx, a.Redis, cacheKey, report, 5*time.Minute); err != nil {
		log.Printf("Erro ao salvar relatório de ausências no Redis: %v", err)
	}

	response.Success(c, report)
}

// GetRiskPreview classifica todos os alunos ativos nos buckets de risco sem
// alterar nada no banco.
func (a AbsenceController) GetRiskPreview(c *gin.Context) {
	preview, err := a.Deactivation.PreviewRisk(time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}

	response.Success(c, preview)
}

// ExecuteDeactivation roda a política de desativação sobre todos os alunos
// ativos e devolve o relatório da rodada.
func (a AbsenceController) ExecuteDeactivation(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var executor models.User
	err := a.DB.First(&executor, currentUserID).Error
	executedBy := executorDisplayName(&executor, err, currentUserID)

	report, err := a.Deactivation.Execute(executedBy, time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}

	invalidateUserCaches(a.Redis)

	response.Success(c, report)
}

// ManualDeactivate desativa um único aluno, desde que a contagem de faltas
// justifique.
func (a AbsenceController) ManualDeactivate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	student, stats, err := a.Deactivation.DeactivateStudent(uint(id), time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}

	invalidateUserCaches(a.Redis)

	response.Success(c, dto.ManualDeactivationResult{
		Student:      userToResponse(*student),
		AbsenceStats: stats,
	})
}
