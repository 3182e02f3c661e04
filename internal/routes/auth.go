package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/internal/handlers"
	"github.com/CHH01/runipet/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/login", handlers.Login)
	r.POST("/register", handlers.Register)
	r.POST("/check-email", handlers.CheckEmail)
	r.POST("/check-username", handlers.CheckUsername)
	r.POST("/verify-email/send", handlers.SendVerificationEmail)
	r.POST("/verify-email/confirm", handlers.ConfirmVerificationEmail)
	r.POST("/find-id", handlers.FindID)
	r.POST("/reset-password", handlers.ResetPassword)

	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
	r.DELETE("/account", middleware.AuthMiddleware(), handlers.DeleteAccount)
}
