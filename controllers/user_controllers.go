package controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"academy/config"
	"academy/constants"
	"academy/dto"
	"academy/models"
	"academy/response"
	"academy/services"
	"academy/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewUserController(db *gorm.DB, redisCli *redis.Client) UserController {
	return UserController{
		DB:    db,
		Redis: redisCli,
	}
}

const (
	cacheKeyAllUsers = "users:all"
	cacheKeyStudents = "users:students"
)

// invalidateUserCaches limpa as listas cacheadas após qualquer mutação de
// usuário ou check-in.
func invalidateUserCaches(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	for _, key := range []string{cacheKeyAllUsers, cacheKeyStudents, absenceReportCacheKey(time.Now())} {
		if err := services.DeleteFromRedis(config.Ctx, rdb, key); err != nil {
			log.Printf("Erro ao invalidar cache %s: %v", key, err)
		}
	}
}

func userToResponse(user models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Role:         user.Role,
		Active:       user.Active,
		Belt:         user.Belt,
		Degree:       user.Degree,
		Avatar:       user.Avatar,
		DateOfBirth:  user.DateOfBirth,
		TrainingDays: user.TrainingDays,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func (u UserController) GetUsers(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	_, currentUserRole, err := GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	activeStr := c.Query("active")
	name := c.Query("name")
	beltStr := c.Query("belt")

	page := 0
	limit := 10

	if pageStr != "" {
		page, _ = strconv.Atoi(pageStr)
	}
	if limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	// Admin enxerga todo mundo; instrutor só a lista de alunos.
	var cacheKey string
	if currentUserRole == constants.RoleAdmin {
		cacheKey = cacheKeyAllUsers
	} else if currentUserRole == constants.RoleInstructor {
		cacheKey = cacheKeyStudents
	} else {
		response.Forbidden(c)
		return
	}

	var allUsers []models.User

	if err := services.GetFromRedis(config.Ctx, u.Redis, cacheKey, &allUsers); err != nil || len(allUsers) == 0 {
		query := u.DB.Preload("CheckIns")

		if currentUserRole == constants.RoleInstructor {
			query = query.Where("role = ?", constants.RoleStudent)
		}

		if err := query.Find(&allUsers).Error; err != nil {
			response.ServerError(c)
			return
		}

		if err := services.SetToRedis(config.Ctx, u.Redis, cacheKey, allUsers, 10*time.Minute); err != nil {
			log.Printf("Erro ao salvar lista de usuários no Redis: %v", err)
		}
	}

	var filteredUsers []models.User
	for _, user := range allUsers {
		if activeStr != "" {
			active, _ := strconv.ParseBool(activeStr)
			if user.Active != active {
				continue
			}
		}
		if name != "" && !strings.Contains(services.NormalizeInput(user.Name), services.NormalizeInput(name)) {
			continue
		}
		if beltStr != "" && user.Belt != beltStr {
			continue
		}
		filteredUsers = append(filteredUsers, user)
	}

	total := len(filteredUsers)
	start := page * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	usersResponse := make([]dto.UserResponse, 0, end-start)
	for _, user := range filteredUsers[start:end] {
		usersResponse = append(usersResponse, userToResponse(user))
	}

	response.SuccessWithPagination(c, usersResponse, page, limit, total)
}

func (u UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
		Belt:         req.Belt,
		Degree:       req.Degree,
		TrainingDays: req.TrainingDays,
	}

	if err := validator.ValidateUser(&user); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	created, err := services.CreateUser(user)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invalidateUserCaches(u.Redis)

	response.Success(c, userToResponse(created))
}

func (u UserController) GetUserByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	var user models.User
	if err := u.DB.Preload("CheckIns").First(&user, id).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, userToResponse(user))
}

func (u UserController) GetProfile(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	currentUserID, _, err := GetUserIDFromToken(tokenString)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, userToResponse(user))
}

// UpdateProfile atualiza apenas os campos do próprio usuário. Faixa, grau,
// role e active ficam de fora de propósito: cada um tem sua operação tipada.
func (u UserController) UpdateProfile(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.PhoneNumber != "" {
		if err := validator.ValidatePhone(req.PhoneNumber); err != nil {
			response.ValidationError(c, err.Error())
			return
		}
	}
	if err := validator.ValidateTrainingDays(req.TrainingDays); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.DateOfBirth != "" {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.TrainingDays != nil {
		user.TrainingDays = req.TrainingDays
	}

	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateUserCaches(u.Redis)

	response.Success(c, userToResponse(user))
}

// UpdateGraduation troca faixa/grau de um aluno (instrutor/admin).
func (u UserController) UpdateGraduation(c *gin.Context) {
	var req dto.UpdateGraduationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := validator.ValidateBelt(req.Belt); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := validator.ValidateDegree(req.Degree); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	var student models.User
	if err := u.DB.Where("id = ? AND role = ?", req.StudentID, constants.RoleStudent).First(&student).Error; err != nil {
		response.NotFound(c)
		return
	}

	student.Belt = req.Belt
	student.Degree = req.Degree

	if err := u.DB.Save(&student).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateUserCaches(u.Redis)

	response.Success(c, userToResponse(student))
}

// ChangeUserStatus ativa ou desativa uma conta explicitamente (admin). A
// desativação por faltas tem endpoint próprio com a pré-condição da política.
func (u UserController) ChangeUserStatus(c *gin.Context) {
	var req dto.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := u.DB.First(&user, req.ID).Error; err != nil {
		response.NotFound(c)
		return
	}

	user.Active = *req.Active
	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidateUserCaches(u.Redis)

	response.Success(c, userToResponse(user))
}

// ChangePassword troca a senha do próprio usuário mediante a senha atual.
func (u UserController) ChangePassword(c *gin.Context) {
	currentUserID := c.GetUint("userID")

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if len(req.NewPassword) < 6 {
		response.ValidationError(c, "Senha deve ter pelo menos 6 caracteres")
		return
	}

	var user models.User
	if err := u.DB.First(&user, currentUserID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		response.BadRequest(c, "Senha atual incorreta")
		return
	}

	hashed, err := services.HashPassword(req.NewPassword)
	if err != nil {
		response.ServerError(c)
		return
	}

	user.Password = hashed
	if err := u.DB.Save(&user).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, nil)
}

// SearchStudents faz a busca fuzzy de alunos por nome/faixa/email.
func (u UserController) SearchStudents(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Parâmetro q é obrigatório")
		return
	}

	var students []models.User
	if err := u.DB.Where("role = ?", constants.RoleStudent).Find(&students).Error; err != nil {
		response.ServerError(c)
		return
	}

	results := services.SearchStudents(query, students)
	response.SuccessWithTotal(c, results, len(results))
}
