package http

import (
	"PerevalPassService/pkg/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает маршрутизатор поверхности /submit
func NewRouter(handler *SubmitHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(server.RequestIDMiddleware(logger))
	router.Use(server.MetricsMiddleware())
	router.Use(server.RecoveryMiddleware(logger))

	submit := router.Group("/submit")
	{
		submit.POST("/submitData", handler.CreatePereval)
		submit.GET("/submitData/", handler.GetAllPerevals)
		submit.GET("/submitData/by_user/", handler.GetPerevalsByUserEmail)
		submit.GET("/submitData/:id", handler.GetPereval)
		submit.PATCH("/submitData/:id", handler.UpdatePereval)
		submit.PATCH("/submitData/update-status/:id", handler.UpdatePerevalStatus)

		// Цель share-ссылок
		submit.GET("/get/:id", handler.GetPereval)
	}

	return router
}
