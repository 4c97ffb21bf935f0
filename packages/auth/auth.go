package auth

import (
	"auth/handlers"
	"auth/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(db *gorm.DB) *Module {
	return &Module{
		Handler: handlers.NewAuthHandler(db),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.POST("/refresh", m.Handler.RefreshToken)
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/logout-all", middleware.JWTMiddleware(), m.Handler.LogoutAll)
		auth.POST("/reset-password/send-link", m.Handler.SendPasswordResetLink)
		auth.POST("/reset-password/confirm", m.Handler.ConfirmPasswordReset)
		auth.POST("/change-password", middleware.JWTMiddleware(), m.Handler.ChangePassword)
	}

	r.GET("/users/me", middleware.JWTMiddleware(), m.Handler.Profile)

	admin := r.Group("/admin", middleware.JWTMiddleware(), middleware.RequireAdmin(m.Handler.DB))
	{
		admin.GET("/users", m.Handler.AdminListUsers)
		admin.POST("/users", m.Handler.AdminCreateUser)
		admin.PUT("/users/:id", m.Handler.AdminUpdateUser)
		admin.DELETE("/users/:id", m.Handler.AdminDeleteUser)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUsername(c *gin.Context) (string, bool) {
	return middleware.GetUsername(c)
}

func RequireAdmin(db *gorm.DB) gin.HandlerFunc {
	return middleware.RequireAdmin(db)
}
