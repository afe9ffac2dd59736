package api

import (
	"Viralize/internal/api/middleware"
	"Viralize/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
				loggedGroup.GET("/me", group.UserHandler.GetUserInfo)
			}
		}

		predictGroup := apiGroup.Group("")
		predictGroup.Use(middleware.AuthMiddleware())
		{
			predictGroup.POST("/predict", group.PredictHandler.Predict)
			predictGroup.GET("/predict/history", group.PredictHandler.GetHistory)
			predictGroup.GET("/predict/stats", group.PredictHandler.GetStats)
			predictGroup.GET("/usage", group.PredictHandler.GetUsage)
		}
	}

	return r
}
