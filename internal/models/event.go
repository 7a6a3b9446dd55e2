package models

import (
	"gorm.io/datatypes"
)

// Event - одно аналитическое событие. Только вставка, никогда
// не обновляется и не удаляется.
type Event struct {
	BaseModel
	VisitorID   string         `gorm:"not null;index" json:"visitorId"`
	EventType   EventType      `gorm:"type:varchar(20);not null;default:'pageView';index:idx_events_type_created,priority:1" json:"eventType"`
	PageURL     string         `gorm:"not null" json:"pageUrl"`
	QueryParam  string         `gorm:"default:''" json:"queryParam"`
	PageSlug    string         `gorm:"not null" json:"pageSlug"`
	Referrer    string         `gorm:"default:''" json:"referrer"`
	DeviceInfo  datatypes.JSON `gorm:"type:jsonb" json:"deviceInfo,omitempty"`
	Geolocation datatypes.JSON `gorm:"type:jsonb" json:"geolocation,omitempty"`
}
