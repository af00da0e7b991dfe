package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mwananchi-loans/logger"
	"mwananchi-loans/service"
)

// Screen route for each flow state, used for precondition redirects and the
// "next" hints in mutating responses.
var stateRoutes = map[service.State]string{
	service.StateEligibility: "/",
	service.StateLogin:       "/login",
	service.StateSignup:      "/signup",
	service.StateAuthorizing: "/authorizing",
	service.StateQualify:     "/qualify",
	service.StateApply:       "/apply",
	service.StateSuccess:     "/success",
}

// RequestLogger logs one line per request through the shared zap logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.L().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// NewRouter builds the gin engine with the full flow surface. Mutating flow
// routes sit behind the rate limiter.
func NewRouter(flow *service.Flow, authorizer *service.Authorizer, limiter *RateLimiter) *gin.Engine {
	eligibility := NewEligibilityHandler(flow)
	auth := NewAuthHandler(flow)
	authorize := NewAuthorizeHandler(flow, authorizer)
	qualify := NewQualifyHandler(flow)
	apply := NewApplyHandler(flow)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), SessionMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		limited := api.Group("", RateLimitMiddleware(limiter))
		{
			limited.POST("/eligibility", eligibility.Submit)
			limited.POST("/signup", auth.Signup)
			limited.POST("/login", auth.Login)
			limited.POST("/qualify/select", qualify.Select)
			limited.POST("/qualify/confirm", qualify.Confirm)
			limited.POST("/apply", apply.Submit)
		}

		api.GET("/authorize/stream", authorize.Stream)
		api.GET("/qualify", qualify.Show)
		api.GET("/apply", apply.Review)
		api.GET("/success", apply.Success)
	}

	return router
}
