package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"ulp_backend/internal/models"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadRepository interface {
	Create(lead *models.Lead) error
	Save(lead *models.Lead) error
	FindByID(id string) (*models.Lead, error)
	FindByContact(email, phone string) (*models.Lead, error)
	FindAll() ([]models.Lead, error)
	UpdateStatus(id string, status models.LeadStatus) error
	AppendNote(id string, note models.Note) error
}

type LeadRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &LeadRepositoryImpl{db: db}
}

func (r *LeadRepositoryImpl) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *LeadRepositoryImpl) Save(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

func (r *LeadRepositoryImpl) FindByID(id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// FindByContact ищет существующий лид по email ИЛИ phone. Если email и
// phone указывают на разные записи, выигрывает совпадение по email -
// детерминированный tie-break вместо зависимости от порядка в хранилище.
func (r *LeadRepositoryImpl) FindByContact(email, phone string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.Where("email = ?", email).First(&lead).Error
	if err == nil {
		return &lead, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = r.db.Where("phone = ?", phone).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepositoryImpl) FindAll() ([]models.Lead, error) {
	var leads []models.Lead
	err := r.db.Order("created_at DESC").Find(&leads).Error
	return leads, err
}

func (r *LeadRepositoryImpl) UpdateStatus(id string, status models.LeadStatus) error {
	result := r.db.Model(&models.Lead{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// AppendNote дописывает заметку одним атомарным UPDATE, без
// read-modify-write на стороне приложения: конкурентные добавления не
// теряют друг друга. Legacy-форма колонки (jsonb-строка вместо массива)
// нормализуется тем же выражением.
func (r *LeadRepositoryImpl) AppendNote(id string, note models.Note) error {
	encoded, err := json.Marshal([]models.Note{note})
	if err != nil {
		return err
	}

	result := r.db.Exec(`
		UPDATE leads SET
			notes = CASE
				WHEN notes IS NULL OR notes = 'null'::jsonb THEN ?::jsonb
				WHEN jsonb_typeof(notes) = 'string' THEN
					jsonb_build_array(jsonb_build_object('text', notes #>> '{}', 'createdAt', to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'))) || ?::jsonb
				ELSE notes || ?::jsonb
			END,
			updated_at = now()
		WHERE id = ?`,
		string(encoded), string(encoded), string(encoded), id)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}
