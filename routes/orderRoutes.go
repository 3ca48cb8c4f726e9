package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/samvriksha/samvriksha-api/controllers"
	"github.com/samvriksha/samvriksha-api/middlewares"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController, jwtSecret string) {
	group := server.Group("/order", middlewares.RequireAuth(jwtSecret))
	{
		group.POST("", orders.CreateOrder)
		group.POST("/verify-payment", orders.VerifyPayment)
		group.POST("/cancel", orders.CancelOrder)
		group.GET("", orders.GetMyOrders)
	}

	admin := server.Group("/admin", middlewares.RequireAuth(jwtSecret), middlewares.RequireAdmin())
	{
		admin.GET("/orders", orders.GetOrders)
		admin.GET("/orders/undelivered-count", orders.GetUndeliveredOrders)
		admin.GET("/orders/:orderId", orders.GetOrderById)
		admin.PATCH("/orders/:orderId", orders.UpdateOrderStatus)
		admin.DELETE("/orders/:orderId", orders.DeleteOrder)
	}
}
