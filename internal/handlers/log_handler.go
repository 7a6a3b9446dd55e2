package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ulp_backend/internal/services"
	"ulp_backend/internal/services/dto"
)

type LogHandler struct {
	*BaseHandler
	logService services.LogService
}

func NewLogHandler(base *BaseHandler, logService services.LogService) *LogHandler {
	return &LogHandler{
		BaseHandler: base,
		logService:  logService,
	}
}

func (h *LogHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/logs", h.Create)
}

func (h *LogHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", h.List)
}

// Create пишет запись аудита. IP и user-agent берутся из заголовков,
// тело их не переопределяет.
func (h *LogHandler) Create(c *gin.Context) {
	var req dto.CreateLogRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	log, accepted, err := h.logService.Create(&req, h.RequestMeta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !accepted {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Log ignored on restricted domain",
		})
		return
	}

	c.JSON(http.StatusCreated, dto.LogResponse{
		Success: true,
		Message: "Log created successfully",
		Data:    log,
	})
}

func (h *LogHandler) List(c *gin.Context) {
	var criteria dto.LogCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	resp, err := h.logService.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
