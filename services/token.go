package services

import (
	"strings"

	apperrors "academy/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"
)

// GetUserIDFromToken extrai userID e role do token
func GetUserIDFromToken(tokenString string) (uint, int, error) {
	claims, err := decodeUserInfo(tokenString)
	if err != nil {
		return 0, 0, err
	}

	userID, okID := claims["userid"].(float64)
	if !okID {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "ID do usuário ausente no token", nil)
	}

	role, okRole := claims["role"].(float64)
	if !okRole {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Role ausente no token", nil)
	}

	return uint(userID), int(role), nil
}

// GetIDFromToken extrai apenas o userID do token
func GetIDFromToken(tokenString string) (uint, error) {
	claims, err := decodeUserInfo(tokenString)
	if err != nil {
		return 0, err
	}

	userID, okID := claims["userid"].(float64)
	if !okID {
		return 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "ID do usuário ausente no token", nil)
	}

	return uint(userID), nil
}

// GetActiveFromToken extrai o flag active carregado no token
func GetActiveFromToken(tokenString string) (bool, error) {
	claims, err := decodeUserInfo(tokenString)
	if err != nil {
		return false, err
	}

	active, ok := claims["active"].(bool)
	if !ok {
		return false, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Flag active ausente no token", nil)
	}

	return active, nil
}

func decodeUserInfo(tokenString string) (map[string]interface{}, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token inválido", nil)
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Não foi possível decodificar o token", err)
	}

	claimsMap := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claimsMap); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Não foi possível interpretar o token", err)
	}

	userInfo, ok := claimsMap["userinfo"].(map[string]interface{})
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Informações do usuário ausentes no token", nil)
	}

	return userInfo, nil
}
