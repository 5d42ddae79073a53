package routes

import (
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/controllers"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/middleware"
	"github.com/praful-vivanshinfotech/thinkexam-api/internals/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	appName := config.GetEnvAsStr("APP_NAME", "Doctor Access")
	jwtSecret := config.GetEnv("JWT_SECRET_KEY")

	smsManager := utils.NewSMSManager(
		&utils.SMSConfig{
			APIKey:    config.GetEnv("SMS_KEY"),
			APISecret: config.GetEnv("SMS_SECRET"),
			From:      appName,
		},
	)

	emailManager := utils.NewEmailManager(
		&utils.SMTPConfig{
			Host:     config.GetEnvAsStr("SMTP_HOST", "smtp.gmail.com"),
			Port:     config.GetEnvAsInt("SMTP_PORT", 587, true),
			User:     config.GetEnv("SMTP_USER"),
			Password: config.GetEnv("SMTP_PASSWORD"),
			AppName:  appName,
			ResetURL: config.GetEnv("RESET_PASSWORD_URL"),
		},
	)

	tokenManager := utils.NewTokenManager(
		db,
		jwtSecret,
		config.GetEnvAsInt("ACCESS_TOKEN_EXPIRATION_SECONDS", 86400, true),
	)

	hasher := utils.NewBcryptHasher()

	// Instantiate the "Class"
	authMiddleware := middleware.NewRequireAuthMiddleware(db, jwtSecret)
	loginCtrl := controllers.NewLoginController(db, hasher, smsManager, tokenManager)
	passwordCtrl := controllers.NewPasswordController(db, hasher, emailManager)

	public := r.Group("/")
	{
		public.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "active",
				"message": appName + " API is running",
			})
		})
		public.POST("/login", loginCtrl.Login)
		public.POST("/verify-otp", loginCtrl.VerifyOtp)
		public.POST("/resend-otp", loginCtrl.ResendOtp)

		public.POST("/forgot-password", passwordCtrl.ForgotPassword)
		public.POST("/submit-otp", passwordCtrl.SubmitOtp)
		public.POST("/reset-password", passwordCtrl.ResetPassword)
	}

	protected := r.Group("/")
	protected.Use(authMiddleware.RequireAuth)
	{
		protected.POST("/logout", loginCtrl.Logout)
	}

	return r
}
