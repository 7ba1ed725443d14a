package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fixhub/handlers"
	"fixhub/middleware"
	"fixhub/models"
	"fixhub/utils"
)

// SetupRouter builds the gin engine with all middleware and route groups.
func SetupRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	RegisterAuthRoutes(r, hb)
	RegisterRequestRoutes(r, hb)
	RegisterMarketRoutes(r, hb)
	RegisterWalletRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	return r
}

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register/client", hb.Auth.RegisterClient)
		auth.POST("/register/provider", hb.Auth.RegisterProvider)
		auth.POST("/login", hb.Auth.Login)
	}

	acct := r.Group("/api/account")
	acct.Use(middleware.AuthMiddleware())
	{
		acct.GET("/me", hb.Auth.GetProfile)
	}

	providers := r.Group("/api/providers")
	{
		providers.GET("/:id/reviews", hb.Review.ListProviderReviews)

		protected := providers.Group("")
		protected.Use(middleware.AuthMiddleware(models.RoleProvider))
		protected.PUT("/availability", hb.Auth.SetAvailability)
		protected.PUT("/settings", hb.Auth.UpdateSettings)
	}
}

// RegisterRequestRoutes registers the request lifecycle endpoints.
func RegisterRequestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/requests")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", middleware.AuthMiddleware(models.RoleClient), hb.Request.CreateRequest)
		api.GET("/nearby", middleware.AuthMiddleware(models.RoleProvider), hb.Market.NearbyRequests)
		api.GET("/mine", hb.Request.ListMine)
		api.GET("/:id", hb.Request.GetRequest)

		api.PUT("/:id/accept", middleware.AuthMiddleware(models.RoleProvider), hb.Request.AcceptRequest)
		api.PUT("/:id/confirm", middleware.AuthMiddleware(models.RoleClient), hb.Request.ConfirmRequest)
		api.PUT("/:id/cancel", hb.Request.CancelRequest)

		api.POST("/:id/start-otp", middleware.AuthMiddleware(models.RoleProvider), hb.Request.IssueStartOtp)
		api.PUT("/:id/start", middleware.AuthMiddleware(models.RoleProvider), hb.Request.StartRequest)
		api.POST("/:id/end-otp", middleware.AuthMiddleware(models.RoleProvider), hb.Request.IssueEndOtp)
		api.PUT("/:id/complete", middleware.AuthMiddleware(models.RoleProvider), hb.Request.CompleteRequest)

		api.PUT("/:id/archive", hb.Request.ArchiveRequest)
	}
}

// RegisterMarketRoutes registers the client-facing market stats endpoint.
func RegisterMarketRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/market")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/stats", hb.Market.MarketStats)
	}
}

// RegisterWalletRoutes registers wallet endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wallet")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/balance", hb.Wallet.GetBalance)
		api.GET("/transactions", hb.Wallet.ListTransactions)
		api.POST("/topup", hb.Wallet.TopUp)
		api.GET("/consistency", hb.Wallet.CheckConsistency)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.AuthMiddleware(models.RoleClient))
	{
		api.POST("", hb.Review.CreateReview)
	}
}
