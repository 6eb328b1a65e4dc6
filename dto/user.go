package dto

import "time"

// UserResponse define o formato de resposta para usuários
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	Role         int       `json:"role"`
	Active       bool      `json:"active"`
	Belt         string    `json:"belt"`
	Degree       int       `json:"degree"`
	Avatar       string    `json:"avatar,omitempty"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	TrainingDays []int64   `json:"trainingDays,omitempty"`
	IsVerified   bool      `json:"isVerified,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required"`
	PhoneNumber  string  `json:"phoneNumber" binding:"required"`
	Role         int     `json:"role" binding:"required,oneof=1 2 3"`
	Belt         string  `json:"belt"`
	Degree       int     `json:"degree"`
	TrainingDays []int64 `json:"trainingDays"`
}

// UpdateProfileRequest enumera os únicos campos que o próprio usuário pode
// alterar. Campos desconhecidos no payload são rejeitados no bind.
type UpdateProfileRequest struct {
	Name         string  `json:"name"`
	PhoneNumber  string  `json:"phoneNumber"`
	Avatar       string  `json:"avatar"`
	DateOfBirth  string  `json:"dateOfBirth"`
	TrainingDays []int64 `json:"trainingDays"`
}

// UpdateGraduationRequest é a atualização tipada de faixa/grau, restrita a
// instrutores e administradores.
type UpdateGraduationRequest struct {
	StudentID uint   `json:"studentId" binding:"required"`
	Belt      string `json:"belt" binding:"required"`
	Degree    int    `json:"degree" binding:"gte=0,lte=6"`
}

// UserStatusRequest ativa/reativa uma conta explicitamente (admin).
type UserStatusRequest struct {
	ID     uint  `json:"id" binding:"required"`
	Active *bool `json:"active" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ScoredStudent é um resultado da busca fuzzy de alunos
type ScoredStudent struct {
	Student UserResponse `json:"student"`
	Score   int          `json:"score"`
}
