package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/config"
	"github.com/kittiphat/volunteerhub/controllers"
	"github.com/kittiphat/volunteerhub/middleware"
	"github.com/kittiphat/volunteerhub/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	adminController := controllers.NewAdminController(db)
	customerController := controllers.NewCustomerController(db)
	attendanceController := controllers.NewAttendanceController(db)
	rewardController := controllers.NewRewardController(db)

	api := r.Group("/api/v1")

	// Staff surface.
	admin := api.Group("/admin")
	admin.POST("/login", middleware.RateLimitMiddleware(), adminController.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AdminRequired())
	adminAuth.POST("/logout", adminController.Logout)
	adminAuth.GET("/me", adminController.Me)

	adminAuth.POST("/events", adminController.CreateEvent)
	adminAuth.PUT("/events/:id", adminController.UpdateEvent)
	adminAuth.DELETE("/events/:id", adminController.DeleteEvent)
	adminAuth.GET("/events/:id/attendance", attendanceController.ListEventAttendance)

	adminAuth.POST("/rewards", adminController.CreateReward)
	adminAuth.GET("/rewards", adminController.ListRewards)
	adminAuth.PUT("/rewards/:id", adminController.UpdateReward)
	adminAuth.DELETE("/rewards/:id", adminController.DeleteReward)

	adminAuth.POST("/redemptions/:code/use", rewardController.UseRedemption)
	adminAuth.POST("/redemptions/:code/complete", rewardController.CompleteRedemption)

	adminAuth.GET("/customers", customerController.ListCustomers)
	adminAuth.POST("/broadcast", adminController.Broadcast)

	superOnly := adminAuth.Group("/admins")
	superOnly.Use(middleware.SuperAdminRequired())
	superOnly.POST("", adminController.CreateAdmin)
	superOnly.GET("", adminController.ListAdmins)
	superOnly.PUT("/:id", adminController.UpdateAdmin)
	superOnly.DELETE("/:id", adminController.DeleteAdmin)

	// Customer surface.
	api.POST("/customers/login", middleware.RateLimitMiddleware(), customerController.LoginOrCreate)
	api.GET("/events", adminController.ListEvents)
	api.GET("/events/:id", adminController.GetEvent)
	api.GET("/rewards", rewardController.ListAvailableRewards)

	me := api.Group("")
	me.Use(middleware.CustomerRequired())
	me.GET("/customers/me", customerController.Me)
	me.PUT("/customers/me/profile", customerController.UpdateProfile)
	me.PUT("/customers/me/face", customerController.SetFaceURL)
	me.GET("/customers/me/history", attendanceController.ListCustomerHistory)
	me.GET("/customers/me/redemptions", rewardController.ListCustomerRedemptions)
	me.POST("/events/:id/check", attendanceController.RegisterCheck)
	me.POST("/rewards/:id/redeem", rewardController.Redeem)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, utils.KindNotFound, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
