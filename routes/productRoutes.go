package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/controllers"
	"github.com/samvriksha/samvriksha-api/middlewares"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController, jwtSecret string) {
	server.GET("/product", products.GetProducts)
	server.GET("/product/:slug", products.GetProductBySlug)

	admin := server.Group("/", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
	{
		admin.POST("/product", products.CreateProduct)
		admin.POST("/product-images", products.UploadProductImages)
	}
}
