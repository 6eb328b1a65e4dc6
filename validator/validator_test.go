package validator

import (
	"testing"

	"academy/errors"
	"academy/models"
)

func validUser() *models.User {
	return &models.User{
		Name:        "Maria Souza",
		Email:       "maria@academia.com",
		Password:    "segredo1",
		PhoneNumber: "11987654321",
		Role:        3,
		Belt:        "azul",
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(u *models.User)
		wantCode errors.ErrorCode
	}{
		{
			name:   "usuario valido",
			mutate: func(u *models.User) {},
		},
		{
			name:     "email vazio",
			mutate:   func(u *models.User) { u.Email = "" },
			wantCode: errors.ErrCodeRequiredField,
		},
		{
			name:     "email sem dominio",
			mutate:   func(u *models.User) { u.Email = "maria@" },
			wantCode: errors.ErrCodeInvalidEmail,
		},
		{
			name:     "senha curta",
			mutate:   func(u *models.User) { u.Password = "123" },
			wantCode: errors.ErrCodeValidation,
		},
		{
			name:     "telefone com letras",
			mutate:   func(u *models.User) { u.PhoneNumber = "11abc4321" },
			wantCode: errors.ErrCodeInvalidPhone,
		},
		{
			name:     "role fora do conjunto",
			mutate:   func(u *models.User) { u.Role = 9 },
			wantCode: errors.ErrCodeInvalidRole,
		},
		{
			name:     "faixa desconhecida",
			mutate:   func(u *models.User) { u.Belt = "verde" },
			wantCode: errors.ErrCodeInvalidBelt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := validUser()
			tt.mutate(user)

			err := ValidateUser(user)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("ValidateUser() = %v, esperado nil", err)
				}
				return
			}

			appErr := errors.GetAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Fatalf("ValidateUser() = %v, esperado código %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateBelt(t *testing.T) {
	for _, belt := range []string{"branca", "azul", "roxa", "marrom", "preta"} {
		if err := ValidateBelt(belt); err != nil {
			t.Errorf("ValidateBelt(%q) = %v, esperado nil", belt, err)
		}
	}

	if err := ValidateBelt("amarela"); err == nil {
		t.Error("ValidateBelt(amarela) = nil, esperado erro")
	}
}

func TestValidateDegree(t *testing.T) {
	for _, degree := range []int{0, 3, 6} {
		if err := ValidateDegree(degree); err != nil {
			t.Errorf("ValidateDegree(%d) = %v, esperado nil", degree, err)
		}
	}
	for _, degree := range []int{-1, 7} {
		if err := ValidateDegree(degree); err == nil {
			t.Errorf("ValidateDegree(%d) = nil, esperado erro", degree)
		}
	}
}

func TestValidateCheckInStatus(t *testing.T) {
	if err := ValidateCheckInStatus("approved"); err != nil {
		t.Errorf("ValidateCheckInStatus(approved) = %v", err)
	}
	if err := ValidateCheckInStatus("rejected"); err != nil {
		t.Errorf("ValidateCheckInStatus(rejected) = %v", err)
	}
	for _, status := range []string{"pending", "cancelled", ""} {
		if err := ValidateCheckInStatus(status); err == nil {
			t.Errorf("ValidateCheckInStatus(%q) = nil, esperado erro", status)
		}
	}
}

func TestValidateTrainingDays(t *testing.T) {
	if err := ValidateTrainingDays([]int64{1, 3, 5}); err != nil {
		t.Errorf("ValidateTrainingDays() = %v, esperado nil", err)
	}
	if err := ValidateTrainingDays(nil); err != nil {
		t.Errorf("ValidateTrainingDays(nil) = %v, esperado nil", err)
	}
	if err := ValidateTrainingDays([]int64{7}); err == nil {
		t.Error("ValidateTrainingDays([7]) = nil, esperado erro")
	}
}
