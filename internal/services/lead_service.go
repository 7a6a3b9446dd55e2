package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"ulp_backend/internal/logger"
	"ulp_backend/internal/models"
	"ulp_backend/internal/repositories"
	"ulp_backend/internal/services/dto"
	"ulp_backend/pkg/apperrors"
)

type LeadService interface {
	// Submit создает лид или обновляет существующий с тем же email или
	// phone. Второе возвращаемое значение - created.
	Submit(req *dto.SubmitLeadRequest) (*models.Lead, bool, error)
	Get(id string) (*models.Lead, error)
	List() ([]models.Lead, error)
	Update(id string, req *dto.UpdateLeadRequest, meta RequestMeta) (*models.Lead, error)
}

type leadService struct {
	leadRepo   repositories.LeadRepository
	logService LogService
}

func NewLeadService(leadRepo repositories.LeadRepository, logService LogService) LeadService {
	return &leadService{
		leadRepo:   leadRepo,
		logService: logService,
	}
}

func (s *leadService) Submit(req *dto.SubmitLeadRequest) (*models.Lead, bool, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	course := strings.TrimSpace(req.Course)
	degree := models.Degree(req.Degree)

	if models.DegreeRequiresCourse(degree) && course == "" {
		return nil, false, apperrors.ValidationError(map[string]string{
			"course": "Course is required for graduation and post-graduation",
		})
	}

	deviceInfo, err := marshalOptional(req.DeviceInfo)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	geolocation, err := marshalOptional(req.Geolocation)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}

	existing, err := s.leadRepo.FindByContact(email, phone)
	if err != nil && !errors.Is(err, repositories.ErrLeadNotFound) {
		return nil, false, apperrors.ErrDatabase(err, "lead")
	}

	if existing != nil {
		// Повторная заявка: контактные и учебные поля перезаписываются,
		// status и notes не трогаем.
		existing.Name = name
		existing.Degree = degree
		if course != "" {
			existing.Course = course
		}
		if deviceInfo != nil {
			existing.DeviceInfo = deviceInfo
		}
		if geolocation != nil {
			existing.Geolocation = geolocation
		}
		if err := s.leadRepo.Save(existing); err != nil {
			return nil, false, apperrors.ErrDatabase(err, "lead")
		}
		logger.Info("lead updated by resubmission", "lead_id", existing.ID, "email", email)
		return existing, false, nil
	}

	lead := &models.Lead{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Degree:      degree,
		Course:      course,
		Source:      models.LeadSource,
		Status:      models.LeadStatusPending,
		Notes:       models.NoteList{},
		DeviceInfo:  deviceInfo,
		Geolocation: geolocation,
	}
	if err := s.leadRepo.Create(lead); err != nil {
		return nil, false, apperrors.ErrDatabase(err, "lead")
	}
	logger.Info("lead created", "lead_id", lead.ID, "email", email, "degree", degree)
	return lead, true, nil
}

func (s *leadService) Get(id string) (*models.Lead, error) {
	lead, err := s.leadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrNotFound(err, "lead", "Lead not found")
		}
		return nil, apperrors.ErrDatabase(err, "lead")
	}
	return lead, nil
}

func (s *leadService) List() ([]models.Lead, error) {
	leads, err := s.leadRepo.FindAll()
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "lead")
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return leads, nil
}

func (s *leadService) Update(id string, req *dto.UpdateLeadRequest, meta RequestMeta) (*models.Lead, error) {
	note := strings.TrimSpace(req.Note)
	if req.Status == "" && note == "" {
		return nil, apperrors.NewBadRequestError("Either status or note must be provided")
	}

	lead, err := s.leadRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrNotFound(err, "lead", "Lead not found")
		}
		return nil, apperrors.ErrDatabase(err, "lead")
	}

	if req.Status != "" {
		status := models.LeadStatus(req.Status)
		if status != models.LeadStatusPending && status != models.LeadStatusDone {
			return nil, apperrors.ErrInvalidStatus("lead", "Status must be 'pending' or 'done'")
		}
		oldStatus := lead.Status
		if err := s.leadRepo.UpdateStatus(id, status); err != nil {
			return nil, apperrors.ErrDatabase(err, "lead")
		}
		s.logService.Record(models.LogTypeStaff, models.LogActionStatusChange, auditDetails(meta, map[string]interface{}{
			"oldStatus": string(oldStatus),
			"newStatus": string(status),
			"leadName":  lead.Name,
		}), &lead.ID, meta)
	}

	if note != "" {
		if err := s.leadRepo.AppendNote(id, models.Note{
			Text:      note,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return nil, apperrors.ErrDatabase(err, "lead")
		}
		s.logService.Record(models.LogTypeStaff, models.LogActionNoteAdded, auditDetails(meta, map[string]interface{}{
			"note":     note,
			"leadName": lead.Name,
		}), &lead.ID, meta)
	}

	updated, err := s.leadRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "lead")
	}
	return updated, nil
}

// auditDetails добавляет в детали аудита имя действующего сотрудника
func auditDetails(meta RequestMeta, details map[string]interface{}) map[string]interface{} {
	if meta.Staff != "" {
		details["username"] = meta.Staff
	}
	return details
}

func marshalOptional(m map[string]interface{}) (datatypes.JSON, error) {
	if m == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}
