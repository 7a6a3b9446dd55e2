package models

import (
	"gorm.io/datatypes"
)

// LeadSource - фиксированный тег источника для заявок с лендинга
const LeadSource = "nios-open-board"

// Lead - заявка абитуриента. Уникальность по email ИЛИ phone
// обеспечивается логикой find-then-update в сервисе, не констрейнтом.
type Lead struct {
	BaseModel
	Name        string         `gorm:"not null" json:"name"`
	Email       string         `gorm:"not null;index" json:"email"`
	Phone       string         `gorm:"not null;index" json:"phone"`
	Degree      Degree         `gorm:"type:varchar(20);not null" json:"degree"`
	Course      string         `json:"course,omitempty"`
	Source      string         `gorm:"default:'nios-open-board'" json:"source"`
	Status      LeadStatus     `gorm:"type:varchar(10);default:'pending'" json:"status"`
	Notes       NoteList       `gorm:"type:jsonb;default:'[]'" json:"notes"`
	DeviceInfo  datatypes.JSON `gorm:"type:jsonb" json:"deviceInfo,omitempty"`  // {"browser": {...}, "os": {...}, ...}
	Geolocation datatypes.JSON `gorm:"type:jsonb" json:"geolocation,omitempty"` // {"ip": "...", "city": "...", ...}
}
