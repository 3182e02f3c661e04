package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CHH01/runipet/internal/handlers"
	"github.com/CHH01/runipet/internal/middleware"
)

func RegisterUploadRoutes(r gin.IRouter) {
	upload := r.Group("/upload")
	upload.Use(middleware.AuthMiddleware())
	{
		upload.POST("/avatar", handlers.UploadProfileImage)
	}
}
