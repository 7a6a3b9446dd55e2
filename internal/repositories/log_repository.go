package repositories

import (
	"gorm.io/gorm"

	"ulp_backend/internal/models"
)

// LogCriteria - фильтры выборки аудита. Пустое поле пропускает фильтр.
type LogCriteria struct {
	Type   string
	Action string
	LeadID string
	Page   int
	Limit  int
}

type LogRepository interface {
	Create(entry *models.Log) error
	FindPage(criteria LogCriteria) ([]models.Log, int64, error)
}

type LogRepositoryImpl struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &LogRepositoryImpl{db: db}
}

func (r *LogRepositoryImpl) Create(entry *models.Log) error {
	return r.db.Create(entry).Error
}

func (r *LogRepositoryImpl) FindPage(criteria LogCriteria) ([]models.Log, int64, error) {
	query := r.db.Model(&models.Log{})

	// Apply filters
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if criteria.Action != "" {
		query = query.Where("action = ?", criteria.Action)
	}
	if criteria.LeadID != "" {
		query = query.Where("lead_id = ?", criteria.LeadID)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	var logs []models.Log
	offset := (criteria.Page - 1) * criteria.Limit
	err := query.Order("created_at DESC").
		Limit(criteria.Limit).Offset(offset).
		Find(&logs).Error

	return logs, total, err
}
