package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"legalease.backend/internal/infrastructure/ratelimit"
	"legalease.backend/internal/interfaces/http/handlers"
	"legalease.backend/internal/interfaces/http/middleware"
	"legalease.backend/pkg/metrics"
)

const serviceName = "legalease-backend"

type routeDeps struct {
	authHandler     *handlers.AuthHandler
	kycHandler      *handlers.KYCHandler
	contractHandler *handlers.ContractHandler
	paystackHandler *handlers.PaystackHandler
	contactHandler  *handlers.ContactHandler
	adminHandler    *handlers.AdminHandler
	healthHandler   *handlers.HealthHandler
	authMiddleware  gin.HandlerFunc
	limiter         *ratelimit.Limiter
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

// registerHealthRoute is the liveness check; /api/health is the readiness check
func registerHealthRoute(r *gin.Engine, version string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": version,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	limit := func(policy ratelimit.Policy) gin.HandlerFunc {
		return middleware.RateLimitMiddleware(d.limiter, policy)
	}

	api := r.Group("/api")
	{
		api.GET("/health", limit(ratelimit.PolicyHealth), d.healthHandler.Check)
		api.GET("/pricing", limit(ratelimit.PolicyDefault), d.contractHandler.Pricing)
		api.POST("/contact", limit(ratelimit.PolicyContact), d.contactHandler.Submit)

		// Auth routes (public)
		auth := api.Group("/auth", limit(ratelimit.PolicyAuth))
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/magic-link", d.authHandler.RequestMagicLink)
			auth.POST("/magic-link/verify", d.authHandler.VerifyMagicLink)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/resend-verification", d.authHandler.ResendVerification)
			auth.POST("/password-reset", d.authHandler.RequestPasswordReset)
			auth.POST("/password-reset/complete", d.authHandler.CompletePasswordReset)
			auth.GET("/oauth/:provider", d.authHandler.StartOAuth)
			auth.POST("/oauth/:provider/callback", d.authHandler.CompleteOAuth)
		}

		profiles := api.Group("/profiles", limit(ratelimit.PolicyDefault), d.authMiddleware)
		{
			profiles.GET("/me", d.authHandler.Me)
			profiles.POST("/ensure", d.authHandler.EnsureProfile)
		}

		kyc := api.Group("/kyc", limit(ratelimit.PolicyKYC), d.authMiddleware)
		{
			kyc.POST("", d.kycHandler.Submit)
			kyc.GET("/me", d.kycHandler.GetMine)
			kyc.POST("/verify", middleware.RequireAdmin(), d.kycHandler.Verify)
		}

		contracts := api.Group("/contracts")
		{
			contracts.GET("", limit(ratelimit.PolicyContract), d.authMiddleware, d.contractHandler.List)
			contracts.GET("/:id", limit(ratelimit.PolicyContract), d.authMiddleware, d.contractHandler.Get)
			contracts.POST("/checkout", limit(ratelimit.PolicyPayment), d.authMiddleware, middleware.IdempotencyMiddleware(), d.contractHandler.Checkout)
			contracts.POST("/upload", limit(ratelimit.PolicyPayment), d.authMiddleware, d.contractHandler.Upload)
			contracts.POST("/assign", limit(ratelimit.PolicyContract), d.authMiddleware, middleware.RequireAdmin(), d.contractHandler.Assign)
			contracts.POST("/update-status", limit(ratelimit.PolicyContract), d.authMiddleware, middleware.RequireReviewer(), d.contractHandler.UpdateStatus)
			contracts.POST("/complete-review", limit(ratelimit.PolicyContract), d.authMiddleware, middleware.RequireReviewer(), d.contractHandler.CompleteReview)
			contracts.POST("/upload-reviewed", limit(ratelimit.PolicyContract), d.authMiddleware, middleware.RequireReviewer(), d.contractHandler.UploadReviewed)
			contracts.DELETE("/delete", limit(ratelimit.PolicyContract), d.authMiddleware, d.contractHandler.Delete)
		}

		paystack := api.Group("/paystack")
		{
			// Authenticated by signature, never rate limited
			paystack.POST("/webhook", d.paystackHandler.Webhook)
			paystack.POST("/initialize", limit(ratelimit.PolicyPayment), d.authMiddleware, d.paystackHandler.Initialize)
			paystack.GET("/verify", limit(ratelimit.PolicyPaymentVerify), d.authMiddleware, d.paystackHandler.Verify)
		}

		admin := api.Group("/admin", limit(ratelimit.PolicyDefault), d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/kyc", d.kycHandler.List)
			admin.GET("/lawyers", d.adminHandler.ListLawyers)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/role", d.adminHandler.UpdateRole)
		}
	}
}
