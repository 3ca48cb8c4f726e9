package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/controllers"
	"github.com/samvriksha/samvriksha-api/middlewares"
)

func CartRoutes(server *gin.Engine, carts *controllers.CartController, jwtSecret string) {
	group := server.Group("/cart", middlewares.RequireAuth(jwtSecret))
	{
		group.POST("/add", carts.AddToCart)
		group.PUT("/update", carts.UpdateCart)
		group.DELETE("/remove", carts.RemoveFromCart)
		group.GET("", carts.GetCart)
	}
}
