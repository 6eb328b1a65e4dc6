package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/smtp"
	"time"

	"academy/config"
	"academy/constants"
	"academy/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
	Active bool `json:"active"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

var secretKey = []byte(config.GetEnv("SECRET_KEY_ACCESS_TOKEN"))
var refreshSecretKey = []byte(config.GetEnv("SECRET_KEY_REFRESH_TOKEN"))

func generateVerificationCode() (string, error) {
	code := ""

	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}

	return code, nil
}

func smtpConfig() (from string, password string, host string, port string) {
	return config.GetEnv("SMTP_FROM"), config.GetEnv("SMTP_PASSWORD"),
		config.GetEnv("SMTP_HOST"), config.GetEnv("SMTP_PORT")
}

func sendMail(email string, subject string, body string) error {
	from, password, host, port := smtpConfig()
	to := []string{email}

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" +
		"Subject: " + subject + "\n\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, to, msg)
}

func sendVerificationEmail(email string, token string) error {
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Código de verificação</title>
		</head>
		<body>
			<p>Olá %s,</p>
			<p>Recebemos um pedido de código de uso único para a sua conta.</p>
			<p>Seu código é: <strong>%s</strong></p>
			<p>Se você não pediu este código, pode ignorar este e-mail com segurança.</p>
			<p>Obrigado,<br>Equipe da academia</p>
		</body>
		</html>
	`, email, token)

	return sendMail(email, "Seu código de verificação", body)
}

func sendWelcomeEmail(email string, phone string, pass string) error {
	body := fmt.Sprintf(`<!DOCTYPE html>
	<html>
	<head>
		<meta charset="UTF-8">
		<title>Conta criada com sucesso</title>
	</head>
	<body>
		<p>Olá,</p>
		<p>Bem-vindo à academia! Sua conta foi criada com sucesso.</p>
		<p>Seus dados de acesso:</p>
		<ul>
			<li>Email: <strong>%s</strong></li>
			<li>Telefone: <strong>%s</strong></li>
			<li>Senha: <strong>%s</strong></li>
		</ul>
		<p>Se você não pediu esta conta, pode ignorar este e-mail com segurança.</p>
		<p>Obrigado,<br>Equipe da academia</p>
	</body>
	</html>`, email, phone, pass)

	return sendMail(email, "Sua conta foi criada", body)
}

func sendNews(email string, title string, mess string) error {
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>%s</title>
		</head>
		<body>
			<p>Olá %s,</p>
			<p>%s</p>
			<p>Obrigado,<br>Equipe da academia</p>
		</body>
		</html>
	`, title, email, mess)

	return sendMail(email, title, body)
}

func GetUserByEmail(email string) (models.User, error) {
	var user models.User
	result := config.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("usuário com email %s não encontrado", email)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

func GetUserByPhoneNumber(phoneNumber string) (models.User, error) {
	var user models.User
	result := config.DB.Where("phone_number = ?", phoneNumber).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("usuário com telefone %s não encontrado", phoneNumber)
	}

	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func GenerateToken(userInfo UserInfo, expiryMinutes int, isAccessToken bool) (string, error) {
	claims := &Claims{
		UserInfo: userInfo,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	var secretKeyToUse []byte
	if isAccessToken {
		secretKeyToUse = secretKey
	} else {
		secretKeyToUse = refreshSecretKey
	}

	return token.SignedString(secretKeyToUse)
}

func SetTokenCookies(c *gin.Context, accessToken string) {
	c.SetCookie(
		"access_token",
		accessToken,
		3*24*60*60,
		"/",
		"",
		true,
		false,
	)
}

func CreateUser(input models.User) (models.User, error) {
	if input.Email == "" || input.Password == "" || input.PhoneNumber == "" {
		return models.User{}, errors.New("email, senha e telefone são obrigatórios")
	}

	existingEmail, err := GetUserByEmail(input.Email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s já está em uso", existingEmail.Email)
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	token, err := generateVerificationCode()
	if err != nil {
		return models.User{}, err
	}

	belt := input.Belt
	if belt == "" {
		belt = constants.Belts[0]
	}

	user := models.User{
		Email:         input.Email,
		Password:      hashedPassword,
		PhoneNumber:   input.PhoneNumber,
		IsVerified:    false,
		Code:          token,
		CodeCreatedAt: time.Now(),
		Role:          input.Role,
		Active:        true,
		Belt:          belt,
		Degree:        input.Degree,
		TrainingDays:  input.TrainingDays,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
		Name:          input.Name,
	}

	result := config.DB.Create(&user)
	if result.Error != nil {
		return user, result.Error
	}

	if user.Role != constants.RoleStudent {
		err = sendVerificationEmail(input.Email, token)
	} else {
		err = sendWelcomeEmail(input.Email, input.PhoneNumber, input.Password)
	}

	if err != nil {
		return user, err
	}

	return user, nil
}

func RegenerateVerificationCode(userID uint) error {
	var user models.User
	result := config.DB.First(&user, userID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("usuário com ID %d não encontrado", userID)
	}

	if result.Error != nil {
		return result.Error
	}

	newCode, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("não foi possível gerar um novo código: %v", err)
	}

	user.Code = newCode
	user.CodeCreatedAt = time.Now()

	if err := config.DB.Save(&user).Error; err != nil {
		return fmt.Errorf("não foi possível atualizar o código: %v", err)
	}
	err = sendVerificationEmail(user.Email, newCode)
	if err != nil {
		return fmt.Errorf("não foi possível enviar o e-mail de verificação: %v", err)
	}

	return nil
}

func ResetPass(user models.User) error {
	newCode, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("não foi possível gerar um novo código: %v", err)
	}

	user.Code = newCode
	user.CodeCreatedAt = time.Now()

	if err := config.DB.Save(&user).Error; err != nil {
		return fmt.Errorf("não foi possível atualizar o código: %v", err)
	}

	err = sendVerificationEmail(user.Email, newCode)
	if err != nil {
		return fmt.Errorf("não foi possível enviar o e-mail de verificação: %v", err)
	}

	return nil
}

func NewPass(user models.User, newPassword string) error {
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("não foi possível criptografar a senha: %v", err)
	}

	user.Password = hashedPassword

	if err := config.DB.Save(&user).Error; err != nil {
		return fmt.Errorf("não foi possível atualizar a senha: %v", err)
	}

	err = sendNews(user.Email, "Troca de senha", "Sua senha foi atualizada com sucesso.")
	if err != nil {
		return fmt.Errorf("não foi possível enviar o e-mail de confirmação: %v", err)
	}

	return nil
}

func CreateGoogleUser(name, email, avatar string) (models.User, error) {
	existingEmail, err := GetUserByEmail(email)
	if err == nil {
		return models.User{}, fmt.Errorf("email %s já está em uso", existingEmail.Email)
	}

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   "",
		Avatar:     avatar,
		IsVerified: true,
		Role:       constants.RoleStudent,
		Active:     true,
		Belt:       constants.Belts[0],
	}

	result := config.DB.Create(&user)
	if result.Error != nil {
		return user, result.Error
	}

	return user, nil
}
