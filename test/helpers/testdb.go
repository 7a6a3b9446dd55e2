package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"ulp_backend/internal/models"
)

// LoginAdmin логинит админа через API и возвращает сессионный токен
func LoginAdmin(t *testing.T, ts *TestServer, username, password string) string {
	loginBody := map[string]interface{}{
		"username": username,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token
}

// CreateLead создает тестовый лид напрямую в БД
func CreateLead(t *testing.T, db *gorm.DB, name string, degree models.Degree) *models.Lead {
	suffix := time.Now().UnixNano()
	lead := &models.Lead{
		Name:   name,
		Email:  fmt.Sprintf("lead_%d@test.com", suffix),
		Phone:  fmt.Sprintf("9%09d", suffix%1000000000),
		Degree: degree,
		Source: models.LeadSource,
		Status: models.LeadStatusPending,
		Notes:  models.NoteList{},
	}
	if lead.Degree == "" {
		lead.Degree = models.Degree12th
	}
	if models.DegreeRequiresCourse(lead.Degree) {
		lead.Course = "B.Sc Computer Science"
	}

	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый лид: %v", err)
	}
	return lead
}

// CreateEvent создает тестовое событие напрямую в БД
func CreateEvent(t *testing.T, db *gorm.DB, visitorID string, eventType models.EventType) *models.Event {
	event := &models.Event{
		VisitorID: visitorID,
		EventType: eventType,
		PageURL:   "https://example.com/courses/nios",
		PageSlug:  "nios",
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("Не удалось создать тестовое событие: %v", err)
	}
	return event
}

// CreateLog создает тестовую запись аудита напрямую в БД
func CreateLog(t *testing.T, db *gorm.DB, logType models.LogType, action string, leadID *string) *models.Log {
	logEntry := &models.Log{
		Type:      logType,
		Action:    action,
		LeadID:    leadID,
		IP:        "203.0.113.10",
		UserAgent: "test-agent",
	}
	if err := db.Create(logEntry).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую запись аудита: %v", err)
	}
	return logEntry
}
