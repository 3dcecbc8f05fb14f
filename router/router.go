package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/sanisidro/restaurant-app/controllers"
	"github.com/sanisidro/restaurant-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	userCtrl := controllers.NewUserController(db)
	productCtrl := controllers.NewProductController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limit login/register harder than the rest
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing (no auth)
	r.GET("/products", productCtrl.GetAllProducts)
	r.GET("/products/:product_id", productCtrl.GetProductByID)
	r.GET("/categories", productCtrl.GetCategories)

	// Customers place orders and look them up by id or PED number
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/number/:order_number", orderCtrl.GetOrderByNumber)

	// Customers request reservations and check slot availability
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/availability", reservationCtrl.CheckAvailability)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// PRODUCTS (staff/admin)
	auth.GET("/products", productCtrl.GetAllProductsAdmin)
	auth.POST("/products", productCtrl.CreateProduct)
	auth.GET("/products/:product_id", productCtrl.GetProductByID)
	auth.PUT("/products/:product_id", productCtrl.UpdateProduct)
	auth.PATCH("/products/:product_id/availability", productCtrl.SetAvailability)

	// ORDERS (staff/admin)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/today", orderCtrl.GetTodayOrders)
	auth.GET("/orders/active", orderCtrl.GetActiveOrders)
	auth.GET("/orders/by-status", orderCtrl.GetOrdersByStatus)
	auth.GET("/orders/range", orderCtrl.GetOrdersByDateRange)
	auth.GET("/orders/search", orderCtrl.SearchOrders)
	auth.GET("/orders/stats", orderCtrl.GetOrderStats)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.PATCH("/order-items/:item_id/quantity", orderCtrl.UpdateItemQuantity)

	// RESERVATIONS (staff/admin)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.GET("/reservations/by-date", reservationCtrl.GetReservationsByDate)
	auth.GET("/reservations/active", reservationCtrl.GetActiveReservations)
	auth.GET("/reservations/range", reservationCtrl.GetReservationsByDateRange)
	auth.GET("/reservations/search", reservationCtrl.SearchReservations)
	auth.GET("/reservations/occupied-tables", reservationCtrl.GetOccupiedTables)
	auth.GET("/reservations/stats", reservationCtrl.GetReservationStats)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	auth.PATCH("/reservations/:reservation_id/table", reservationCtrl.AssignTable)

	// Admin only
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
