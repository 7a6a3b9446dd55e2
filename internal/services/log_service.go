package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"ulp_backend/internal/logger"
	"ulp_backend/internal/models"
	"ulp_backend/internal/repositories"
	"ulp_backend/internal/services/dto"
	"ulp_backend/pkg/apperrors"
)

// RequestMeta - контекст запроса, нужный сервисам для аудита:
// откуда пришел запрос, кто его сделал и надо ли подавлять
// побочные записи.
type RequestMeta struct {
	IP         string
	UserAgent  string
	Restricted bool
	// Staff - имя залогиненного сотрудника; пусто на публичных маршрутах
	Staff string
}

type LogService interface {
	// Create пишет клиентскую запись аудита. Второе возвращаемое
	// значение false означает, что запрос пришел с restricted-хоста
	// и запись подавлена.
	Create(req *dto.CreateLogRequest, meta RequestMeta) (*models.Log, bool, error)
	List(criteria dto.LogCriteria) (*dto.LogListResponse, error)

	// Record - внутренняя запись аудита (логин, изменения лида).
	// Best-effort: ошибка хранилища логируется, но не роняет основную
	// операцию. На restricted-хостах ничего не пишется.
	Record(logType models.LogType, action string, details map[string]interface{}, leadID *string, meta RequestMeta)
}

type logService struct {
	logRepo repositories.LogRepository
}

func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

func (s *logService) Create(req *dto.CreateLogRequest, meta RequestMeta) (*models.Log, bool, error) {
	if meta.Restricted {
		logger.Debug("client audit log ignored on restricted host", "action", req.Action)
		return nil, false, nil
	}

	details, err := marshalDetails(req.Details)
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}

	entry := &models.Log{
		Type:      models.LogType(req.Type),
		Action:    req.Action,
		Details:   details,
		IP:        orUnknown(meta.IP),
		UserAgent: orUnknown(meta.UserAgent),
	}
	if req.LeadID != "" {
		leadID := req.LeadID
		entry.LeadID = &leadID
	}

	if err := s.logRepo.Create(entry); err != nil {
		return nil, false, apperrors.ErrDatabase(err, "log")
	}
	return entry, true, nil
}

func (s *logService) List(criteria dto.LogCriteria) (*dto.LogListResponse, error) {
	page, limit := dto.NormalizePageLimit(criteria.Page, criteria.Limit)

	logs, total, err := s.logRepo.FindPage(repositories.LogCriteria{
		Type:   criteria.Type,
		Action: criteria.Action,
		LeadID: criteria.LeadID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "log")
	}

	if logs == nil {
		logs = []models.Log{}
	}
	return &dto.LogListResponse{
		Success:    true,
		Data:       logs,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func (s *logService) Record(logType models.LogType, action string, details map[string]interface{}, leadID *string, meta RequestMeta) {
	if meta.Restricted {
		logger.Debug("audit log suppressed on restricted host", "action", action)
		return
	}

	encoded, err := marshalDetails(details)
	if err != nil {
		logger.Warn("failed to encode audit details", "action", action, "error", err.Error())
		return
	}

	entry := &models.Log{
		Type:      logType,
		Action:    action,
		Details:   encoded,
		LeadID:    leadID,
		IP:        orUnknown(meta.IP),
		UserAgent: orUnknown(meta.UserAgent),
	}
	if err := s.logRepo.Create(entry); err != nil {
		logger.Warn("failed to write audit log", "action", action, "error", err.Error())
	}
}

func marshalDetails(details map[string]interface{}) (datatypes.JSON, error) {
	if details == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal log details: %w", err)
	}
	return datatypes.JSON(encoded), nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
