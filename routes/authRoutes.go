package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/controllers"
	"github.com/samvriksha/samvriksha-api/middlewares"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController, jwtSecret string) {
	group := server.Group("/auth")
	{
		group.POST("/signup", auth.Signup)
		group.POST("/login", auth.Login)
		group.POST("/verify-email/:activationToken", auth.ActivateAccount)
		group.POST("/forgot-password", auth.SendPasswordResetLink)
		group.POST("/reset-password/:resetToken", auth.ResetPassword)
	}

	me := server.Group("/", middlewares.RequireAuth(jwtSecret))
	{
		me.GET("/me", auth.GetProfile)
		me.PUT("/update-profile", auth.UpdateProfile)
		me.PUT("/change-password", auth.ChangePassword)
	}
}
