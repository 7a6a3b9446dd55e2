package dto

import (
	"ulp_backend/internal/models"
)

// CreateLogRequest - тело POST /logs. IP и user-agent берутся из
// заголовков запроса, не из тела.
type CreateLogRequest struct {
	Type    string                 `json:"type" validate:"required,is-log-type"`
	Action  string                 `json:"action" validate:"required"`
	Details map[string]interface{} `json:"details"`
	LeadID  string                 `json:"leadId" validate:"omitempty,uuid4"`
}

// LogCriteria - query-параметры GET /logs
type LogCriteria struct {
	Type   string `form:"type" validate:"omitempty,is-log-type"`
	Action string `form:"action"`
	LeadID string `form:"leadId" validate:"omitempty,uuid4"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type LogResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *models.Log `json:"data"`
}

type LogListResponse struct {
	Success    bool         `json:"success"`
	Data       []models.Log `json:"data"`
	Pagination Pagination   `json:"pagination"`
}
