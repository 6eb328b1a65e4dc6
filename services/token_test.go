package services

import (
	"testing"

	apperrors "academy/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	userInfo := UserInfo{
		UserId: 42,
		Role:   3,
		Active: true,
	}

	token, err := GenerateToken(userInfo, 60, true)
	if err != nil {
		t.Fatalf("GenerateToken() falhou: %v", err)
	}

	userID, role, err := GetUserIDFromToken(token)
	if err != nil {
		t.Fatalf("GetUserIDFromToken() falhou: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, esperado 42", userID)
	}
	if role != 3 {
		t.Errorf("role = %d, esperado 3", role)
	}

	active, err := GetActiveFromToken(token)
	if err != nil {
		t.Fatalf("GetActiveFromToken() falhou: %v", err)
	}
	if !active {
		t.Error("active = false, esperado true")
	}
}

func TestTokenCarriesInactiveFlag(t *testing.T) {
	token, err := GenerateToken(UserInfo{UserId: 7, Role: 3, Active: false}, 60, true)
	if err != nil {
		t.Fatalf("GenerateToken() falhou: %v", err)
	}

	active, err := GetActiveFromToken(token)
	if err != nil {
		t.Fatalf("GetActiveFromToken() falhou: %v", err)
	}
	if active {
		t.Error("active = true, esperado false")
	}
}

func TestGetUserIDFromMalformedToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"vazio", ""},
		{"sem os tres segmentos", "abc.def"},
		{"payload ilegivel", "aaa.!!!.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GetUserIDFromToken(tt.token)
			appErr := apperrors.GetAppError(err)
			if appErr == nil || appErr.Code != apperrors.ErrCodeInvalidToken {
				t.Fatalf("GetUserIDFromToken() = %v, esperado token inválido", err)
			}
		})
	}
}
