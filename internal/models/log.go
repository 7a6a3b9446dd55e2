package models

import (
	"gorm.io/datatypes"
)

// Log - запись аудита действий пользователей и сотрудников.
// LeadID - слабая ссылка: существование лида не проверяется,
// каскадного удаления нет.
type Log struct {
	BaseModel
	Type      LogType        `gorm:"type:varchar(10);not null;index:idx_logs_type_created,priority:1" json:"type"`
	Action    string         `gorm:"not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	LeadID    *string        `gorm:"type:uuid;index" json:"leadId,omitempty"`
	IP        string         `gorm:"default:'unknown'" json:"ip"`
	UserAgent string         `gorm:"default:'unknown'" json:"userAgent"`
}
