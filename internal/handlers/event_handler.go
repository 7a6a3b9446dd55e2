package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ulp_backend/internal/logger"
	"ulp_backend/internal/services"
	"ulp_backend/internal/services/dto"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{
		BaseHandler:  base,
		eventService: eventService,
	}
}

func (h *EventHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.Track)
}

func (h *EventHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.List)
}

// Track принимает телеметрию от лендинга. Запись асинхронная: клиент
// получает id сразу, обогащение (user-agent, гео) идет в фоне.
func (h *EventHandler) Track(c *gin.Context) {
	var req dto.TrackEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Дальнейшие логи этого запроса (включая access-лог) несут visitor_id
	ctx := logger.WithVisitorID(c.Request.Context(), req.VisitorID)
	c.Request = c.Request.WithContext(ctx)

	id, accepted, err := h.eventService.Track(&req, h.RequestMeta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !accepted {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Event ignored on restricted domain",
		})
		return
	}

	logger.CtxDebug(ctx, "event queued", "event_id", id, "event_type", req.EventType)

	resp := dto.TrackEventResponse{
		Success: true,
		Message: "Event tracked successfully",
	}
	resp.Data.ID = id
	c.JSON(http.StatusCreated, resp)
}

func (h *EventHandler) List(c *gin.Context) {
	page := h.ParseQueryInt(c, "page", dto.DefaultPage)
	limit := h.ParseQueryInt(c, "limit", dto.DefaultLimit)

	resp, err := h.eventService.List(page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
