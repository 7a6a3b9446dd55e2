package dto

import (
	"ulp_backend/internal/models"
)

// TrackEventRequest - тело POST /events
type TrackEventRequest struct {
	VisitorID   string                 `json:"visitorId" validate:"required"`
	EventType   string                 `json:"eventType" validate:"omitempty,is-event-type"`
	PageURL     string                 `json:"pageUrl" validate:"required"`
	QueryParam  string                 `json:"queryParam"`
	PageSlug    string                 `json:"pageSlug" validate:"required"`
	Referrer    string                 `json:"referrer"`
	DeviceInfo  map[string]interface{} `json:"deviceInfo"`
	Geolocation map[string]interface{} `json:"geolocation"`
}

// TrackEventResponse - клиенту возвращается только id созданного события
type TrackEventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}

type EventListResponse struct {
	Success    bool           `json:"success"`
	Data       []models.Event `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
