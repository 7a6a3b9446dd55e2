package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ulp_backend/internal/services"
	"ulp_backend/internal/services/dto"
)

type LeadHandler struct {
	*BaseHandler
	leadService services.LeadService
}

func NewLeadHandler(base *BaseHandler, leadService services.LeadService) *LeadHandler {
	return &LeadHandler{
		BaseHandler: base,
		leadService: leadService,
	}
}

// RegisterRoutes регистрирует маршруты лидов. Submit публичный (форма на
// лендинге), остальное за SessionMiddleware.
func (h *LeadHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.Submit)
}

func (h *LeadHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")
	{
		leads.GET("", h.List)
		leads.GET("/:id", h.Get)
		leads.PATCH("/:id", h.Update)
	}
}

// Submit создает лид или обновляет существующий с тем же контактом.
// 201 - новый лид, 200 - повторная заявка.
func (h *LeadHandler) Submit(c *gin.Context) {
	var req dto.SubmitLeadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lead, created, err := h.leadService.Submit(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	message := "Lead updated successfully"
	if created {
		status = http.StatusCreated
		message = "Lead created successfully"
	}

	c.JSON(status, dto.SubmitLeadResponse{
		Success: true,
		Message: message,
		Data:    lead,
		Created: created,
	})
}

func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.leadService.List()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LeadListResponse{
		Success: true,
		Count:   len(leads),
		Data:    leads,
	})
}

func (h *LeadHandler) Get(c *gin.Context) {
	lead, err := h.leadService.Get(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LeadResponse{
		Success: true,
		Data:    lead,
	})
}

// Update меняет статус и/или дописывает заметку. Хотя бы одно поле
// должно быть передано.
func (h *LeadHandler) Update(c *gin.Context) {
	var req dto.UpdateLeadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lead, err := h.leadService.Update(c.Param("id"), &req, h.RequestMeta(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitLeadResponse{
		Success: true,
		Message: "Lead updated successfully",
		Data:    lead,
	})
}
