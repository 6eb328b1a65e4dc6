package routes

import (
	"context"
	"net/http"

	"academy/config"
	"academy/controllers"
	middlewares "academy/middleware"
	"academy/services"
	"academy/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody, deactivation *services.DeactivationService) {

	userController := controllers.NewUserController(db, redisCli)

	checkInService := services.NewCheckInService(services.CheckInServiceOptions{
		Store:  services.NewGormCheckInStore(db),
		Logger: logger.NewDefaultLogger(logger.InfoLevel),
	})
	checkInController := controllers.NewCheckInController(db, redisCli, checkInService)
	absenceController := controllers.NewAbsenceController(db, redisCli, deactivation)

	v1 := router.Group("/api/v1")

	v1.GET("/users", middlewares.AuthMiddleware(1, 2), userController.GetUsers)
	v1.POST("/users", middlewares.AuthMiddleware(1, 2), userController.CreateUser)
	v1.GET("/users/:id", middlewares.AuthMiddleware(1, 2), userController.GetUserByID)
	v1.GET("/profile", middlewares.AuthMiddleware(), userController.GetProfile)
	v1.PUT("/profile", middlewares.AuthMiddleware(), userController.UpdateProfile)
	v1.PUT("/studentGraduation", middlewares.AuthMiddleware(1, 2), userController.UpdateGraduation)
	v1.PUT("/password", middlewares.AuthMiddleware(), userController.ChangePassword)
	v1.PUT("/userStatus", middlewares.AuthMiddleware(1), userController.ChangeUserStatus)
	v1.GET("/searchStudents", middlewares.AuthMiddleware(1, 2), userController.SearchStudents)

	v1.POST("/checkin", middlewares.AuthMiddleware(3), checkInController.CheckIn)
	v1.PUT("/checkinStatus", middlewares.AuthMiddleware(1, 2), checkInController.UpdateCheckInStatus)
	v1.GET("/myCheckins", middlewares.AuthMiddleware(3), checkInController.GetMyCheckIns)
	v1.GET("/pendingCheckins", middlewares.AuthMiddleware(1, 2), checkInController.GetPendingCheckIns)
	v1.GET("/checkinCalendar", middlewares.AuthMiddleware(), checkInController.GetCheckInCalendar)

	v1.GET("/absences", middlewares.AuthMiddleware(1, 2), absenceController.GetAllAbsences)
	v1.GET("/absences/:id", middlewares.AuthMiddleware(), absenceController.GetStudentAbsences)
	v1.GET("/deactivationPreview", middlewares.AuthMiddleware(1, 2), absenceController.GetRiskPreview)
	v1.POST("/deactivationRun", middlewares.AuthMiddleware(1, 2), absenceController.ExecuteDeactivation)
	v1.POST("/deactivateStudent/:id", middlewares.AuthMiddleware(1), absenceController.ManualDeactivate)

	v1.GET("/verify-email", controllers.VerifyEmail)
	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/resendCode", controllers.ResendVerificationCode)
	v1.POST("/forgetPassword", controllers.ForgetPassword)
	v1.POST("/newPassword", controllers.ResetPassword)
	v1.POST("/verifyCode", controllers.VerifyCode)
	v1.POST("/auth/google", controllers.AuthGoogle)

	v1.POST("/img/multi-upload", middlewares.AuthMiddleware(1, 2), func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao abrir o arquivo"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha no upload"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload concluído",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum arquivo enviado"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao abrir o arquivo"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha no upload"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload de avatar concluído",
			"url":     resp.SecureURL,
		})
	})

	//ws
	v1.GET("/test-broadcast", middlewares.AuthMiddleware(1), func(c *gin.Context) {
		message := []byte("Aviso do sistema: nova notificação!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
