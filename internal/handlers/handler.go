package handlers

import (
	"servo_control/internal/logger"
	"servo_control/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// live display stream on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerServoRoutes(api)
	}
}

func (h *Handler) registerServoRoutes(api *gin.RouterGroup) {
	servo := api.Group("/servo")
	{
		servo.GET("/state", h.getState)
		// Body example: {"angle":90}
		servo.POST("/manual", h.sendManual)
		// Body example: {"mode":"sweep"}
		servo.POST("/mode", h.sendMode)
		// Body example: {"angles":"0, 90, 180"}
		servo.POST("/sequence", h.sendSequence)
	}
}
