package repositories

import (
	"gorm.io/gorm"

	"ulp_backend/internal/models"
)

type EventRepository interface {
	Create(event *models.Event) error
	FindPage(page, limit int) ([]models.Event, int64, error)
}

type EventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *EventRepositoryImpl) FindPage(page, limit int) ([]models.Event, int64, error) {
	var total int64
	if err := r.db.Model(&models.Event{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	offset := (page - 1) * limit
	err := r.db.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error

	return events, total, err
}
