package services

import (
	"github.com/google/uuid"

	"ulp_backend/internal/logger"
	"ulp_backend/internal/models"
	"ulp_backend/internal/repositories"
	"ulp_backend/internal/services/dto"
	"ulp_backend/internal/telemetry"
	"ulp_backend/pkg/apperrors"
)

type EventService interface {
	// Track ставит событие в очередь коллектора. Второе возвращаемое
	// значение false означает, что событие проигнорировано
	// (restricted-хост) и записи не будет.
	Track(req *dto.TrackEventRequest, meta RequestMeta) (string, bool, error)
	List(page, limit int) (*dto.EventListResponse, error)
}

type eventService struct {
	eventRepo repositories.EventRepository
	collector *telemetry.Collector
}

func NewEventService(eventRepo repositories.EventRepository, collector *telemetry.Collector) EventService {
	return &eventService{
		eventRepo: eventRepo,
		collector: collector,
	}
}

func (s *eventService) Track(req *dto.TrackEventRequest, meta RequestMeta) (string, bool, error) {
	if meta.Restricted {
		logger.Debug("event ignored on restricted host", "visitor_id", req.VisitorID)
		return "", false, nil
	}

	eventType := models.EventType(req.EventType)
	if eventType == "" {
		eventType = models.EventTypePageView
	}

	deviceInfo, err := marshalOptional(req.DeviceInfo)
	if err != nil {
		return "", false, apperrors.InternalError(err)
	}
	geolocation, err := marshalOptional(req.Geolocation)
	if err != nil {
		return "", false, apperrors.InternalError(err)
	}

	event := &models.Event{
		VisitorID:   req.VisitorID,
		EventType:   eventType,
		PageURL:     req.PageURL,
		QueryParam:  req.QueryParam,
		PageSlug:    req.PageSlug,
		Referrer:    req.Referrer,
		DeviceInfo:  deviceInfo,
		Geolocation: geolocation,
	}
	// id выдается до записи: ответ клиенту не ждет хранилище
	event.ID = uuid.NewString()

	s.collector.Enqueue(telemetry.Submission{
		Event:     event,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
	})
	return event.ID, true, nil
}

func (s *eventService) List(page, limit int) (*dto.EventListResponse, error) {
	page, limit = dto.NormalizePageLimit(page, limit)

	events, total, err := s.eventRepo.FindPage(page, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "event")
	}

	if events == nil {
		events = []models.Event{}
	}
	return &dto.EventListResponse{
		Success:    true,
		Data:       events,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}
