package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/configs"
	"github.com/iroda0103/dastavka/controllers"
	"github.com/iroda0103/dastavka/middlewares"
	"github.com/iroda0103/dastavka/pkg/logger"
	"github.com/iroda0103/dastavka/repository"
	"github.com/iroda0103/dastavka/services"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, log *slog.Logger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	cityRepo := repository.NewCityRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, logger.For(log, "auth"))
	userSvc := services.NewUserService(userRepo, logger.For(log, "users"))
	citySvc := services.NewCityService(cityRepo, logger.For(log, "cities"))
	restSvc := services.NewRestaurantService(restRepo, cityRepo, logger.For(log, "restaurants"))
	menuSvc := services.NewMenuService(menuRepo, restRepo, logger.For(log, "menu"))
	orderSvc := services.NewOrderService(db, orderRepo, logger.For(log, "orders"))
	reportSvc := services.NewReportService(orderSvc, logger.For(log, "reports"))
	uploadSvc := services.NewUploadService(fileRepo, cfg.UploadDir, cfg.BaseURL, logger.For(log, "upload"))

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(userSvc)
	cityCtrl := controllers.NewCityController(citySvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, reportSvc)
	uploadCtrl := controllers.NewUploadController(uploadSvc)

	secret := cfg.JWTSecret

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(secret), authCtrl.Me)
	}

	// Orders
	o := r.Group("/orders")
	{
		o.POST("", middlewares.AuthMiddleware(secret, "admin", "client"), orderCtrl.Create)
		o.GET("/restaurant/:restaurantId", middlewares.AuthMiddleware(secret, "admin"), orderCtrl.ListForRestaurant)
		o.GET("/export/:restaurantId", middlewares.AuthMiddleware(secret, "admin"), orderCtrl.Export)
		o.GET("/my-orders/:userId", middlewares.AuthMiddleware(secret), orderCtrl.MyOrders)
		o.GET("/:id", middlewares.AuthMiddleware(secret), orderCtrl.Detail)
		o.PATCH("/:id", middlewares.AuthMiddleware(secret), orderCtrl.Update)
		o.DELETE("/:id", middlewares.AuthMiddleware(secret), orderCtrl.Delete)
	}

	// Users
	u := r.Group("/users")
	{
		u.POST("", middlewares.AuthMiddleware(secret), userCtrl.Create)
		u.GET("", middlewares.AuthMiddleware(secret, "admin", "restaurant"), userCtrl.List)
		u.GET("/restaurants", middlewares.AuthMiddleware(secret, "admin", "client"), userCtrl.OnlyRestaurants)
		u.GET("/tg", userCtrl.ByTelegram) // the bot calls this pre-auth
		u.GET("/:id", middlewares.AuthMiddleware(secret), userCtrl.Detail)
		u.PATCH("/:id", middlewares.AuthMiddleware(secret), userCtrl.Update)
		u.DELETE("/:id", middlewares.AuthMiddleware(secret), userCtrl.Delete)
	}

	// Cities
	ci := r.Group("/cities")
	{
		ci.POST("", middlewares.AuthMiddleware(secret, "admin"), cityCtrl.Create)
		ci.GET("", cityCtrl.List)
		ci.GET("/:id", cityCtrl.Detail)
		ci.DELETE("/:id", middlewares.AuthMiddleware(secret, "admin"), cityCtrl.Delete)
	}

	// Restaurants
	re := r.Group("/restaurants")
	{
		re.POST("", middlewares.AuthMiddleware(secret, "admin"), restCtrl.Create)
		re.GET("", restCtrl.List)
		re.GET("/:id", restCtrl.Detail)
		re.PATCH("/:id", middlewares.AuthMiddleware(secret, "admin"), restCtrl.Update)
		re.DELETE("/:id", middlewares.AuthMiddleware(secret, "admin"), restCtrl.Delete)
	}

	// Menu
	m := r.Group("/menu")
	{
		m.POST("", middlewares.AuthMiddleware(secret, "admin", "restaurant"), menuCtrl.Create)
		m.GET("/restaurant/:restaurantId", menuCtrl.ListForRestaurant)
		m.GET("/:id", menuCtrl.Detail)
		m.PATCH("/:id", middlewares.AuthMiddleware(secret, "admin", "restaurant"), menuCtrl.Update)
		m.DELETE("/:id", middlewares.AuthMiddleware(secret, "admin", "restaurant"), menuCtrl.Delete)
	}

	// Uploads
	up := r.Group("/upload", middlewares.AuthMiddleware(secret))
	{
		up.POST("", uploadCtrl.Upload)
		up.GET("", uploadCtrl.List)
		up.GET("/:id", uploadCtrl.Detail)
		up.DELETE("/:id", uploadCtrl.Delete)
	}
}
