package validator

import (
	"regexp"

	"academy/constants"
	"academy/errors"
	"academy/models"
)

// ValidateUser valida os dados de um usuário antes da criação
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email é obrigatório", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email inválido", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Senha é obrigatória", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Senha deve ter pelo menos 6 caracteres", nil)
	}

	if user.PhoneNumber == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Telefone é obrigatório", nil)
	}

	if !isValidPhone(user.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Telefone inválido", nil)
	}

	if user.Role < constants.RoleAdmin || user.Role > constants.RoleStudent {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "Role inválida", nil)
	}

	if user.Belt != "" {
		if err := ValidateBelt(user.Belt); err != nil {
			return err
		}
	}

	return nil
}

// ValidateBelt confere se a faixa pertence ao conjunto conhecido
func ValidateBelt(belt string) error {
	for _, b := range constants.Belts {
		if b == belt {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeInvalidBelt, "Faixa inválida: "+belt, nil)
}

// ValidateDegree confere o grau da faixa (0 a 6)
func ValidateDegree(degree int) error {
	if degree < 0 || degree > 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Grau deve estar entre 0 e 6", nil)
	}
	return nil
}

// ValidateCheckInStatus confere o status de revisão de um check-in
func ValidateCheckInStatus(status string) error {
	if status != constants.CheckInStatusApproved && status != constants.CheckInStatusRejected {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Status deve ser approved ou rejected", nil)
	}
	return nil
}

// ValidateTrainingDays confere os dias de treino (0=domingo .. 6=sábado)
func ValidateTrainingDays(days []int64) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return errors.NewAppError(errors.ErrCodeValidation, "Dia de treino inválido", nil)
		}
	}
	return nil
}

func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func isValidPhone(phone string) bool {
	phoneRegex := regexp.MustCompile(`^[0-9]{10,11}$`)
	return phoneRegex.MatchString(phone)
}

// ValidateEmail confere o formato do email
func ValidateEmail(email string) error {
	if !isValidEmail(email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email inválido", nil)
	}
	return nil
}

// ValidatePhone confere o formato do telefone
func ValidatePhone(phone string) error {
	if !isValidPhone(phone) {
		return errors.NewAppError(errors.ErrCodeInvalidPhone, "Telefone inválido", nil)
	}
	return nil
}
