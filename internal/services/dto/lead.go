package dto

import (
	"ulp_backend/internal/models"
)

// SubmitLeadRequest - тело POST /leads (форма на лендинге)
type SubmitLeadRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Email       string                 `json:"email" validate:"required,email"`
	Phone       string                 `json:"phone" validate:"required,min=7"`
	Degree      string                 `json:"degree" validate:"required,is-degree"`
	Course      string                 `json:"course"`
	DeviceInfo  map[string]interface{} `json:"deviceInfo"`
	Geolocation map[string]interface{} `json:"geolocation"`
}

// UpdateLeadRequest - тело PATCH /leads/:id. Хотя бы одно поле обязательно,
// это проверяет сервис (валидатор не видит "оба пустые").
type UpdateLeadRequest struct {
	Status string `json:"status" validate:"omitempty,is-lead-status"`
	Note   string `json:"note"`
}

// SubmitLeadResponse несет флаг created/updated через Message и код ответа
type SubmitLeadResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *models.Lead `json:"data"`
	Created bool         `json:"-"`
}

type LeadResponse struct {
	Success bool         `json:"success"`
	Data    *models.Lead `json:"data"`
}

type LeadListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Data    []models.Lead `json:"data"`
}
