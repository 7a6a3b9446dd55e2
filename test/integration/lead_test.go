package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"ulp_backend/internal/models"
	"ulp_backend/test/helpers"
)

// TestSubmitLead_CreatesNew - первая заявка создает лид со статусом pending
func TestSubmitLead_CreatesNew(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	submitBody := map[string]interface{}{
		"name":   "Priya Sharma",
		"email":  "Priya.Sharma@Example.com",
		"phone":  "9876543210",
		"degree": "12th",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", submitBody)

	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "Lead created successfully")

	var lead models.Lead
	err := ts.DB.First(&lead).Error
	assert.NoError(t, err)
	// Email нормализуется к нижнему регистру
	assert.Equal(t, "priya.sharma@example.com", lead.Email)
	assert.Equal(t, models.LeadStatusPending, lead.Status)
	assert.Equal(t, models.LeadSource, lead.Source)
	assert.Empty(t, lead.Notes)
}

// TestSubmitLead_UpdatesExisting - повторная заявка с тем же email
// обновляет лид, не создавая дубликат, и сохраняет статус с заметками
func TestSubmitLead_UpdatesExisting(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	first := map[string]interface{}{
		"name":   "Rahul Verma",
		"email":  "rahul@example.com",
		"phone":  "9000000001",
		"degree": "10th",
	}
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", first)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Помечаем лид обработанным
	var lead models.Lead
	assert.NoError(t, ts.DB.First(&lead).Error)
	ts.DB.Model(&lead).Update("status", models.LeadStatusDone)

	// Та же почта, новый номер и уровень
	second := map[string]interface{}{
		"name":   "Rahul Verma",
		"email":  "rahul@example.com",
		"phone":  "9000000002",
		"degree": "graduation",
		"course": "B.Com",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", second)

	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "Lead updated successfully")

	var count int64
	ts.DB.Model(&models.Lead{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var updated models.Lead
	assert.NoError(t, ts.DB.First(&updated).Error)
	assert.Equal(t, models.DegreeGrad, updated.Degree)
	assert.Equal(t, "B.Com", updated.Course)
	// Статус повторной заявкой не сбрасывается
	assert.Equal(t, models.LeadStatusDone, updated.Status)
}

// TestSubmitLead_EmailWinsOverPhone - если email и phone заявки указывают
// на РАЗНЫЕ существующие лиды, детерминированно обновляется совпадение
// по email; дубликат не создается
func TestSubmitLead_EmailWinsOverPhone(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	byEmail := &models.Lead{
		Name:   "By Email",
		Email:  "shared@example.com",
		Phone:  "9000000010",
		Degree: models.Degree12th,
		Source: models.LeadSource,
		Status: models.LeadStatusPending,
		Notes:  models.NoteList{},
	}
	byPhone := &models.Lead{
		Name:   "By Phone",
		Email:  "other@example.com",
		Phone:  "9000000011",
		Degree: models.Degree10th,
		Source: models.LeadSource,
		Status: models.LeadStatusPending,
		Notes:  models.NoteList{},
	}
	assert.NoError(t, ts.DB.Create(byEmail).Error)
	assert.NoError(t, ts.DB.Create(byPhone).Error)

	// email совпадает с первым лидом, phone - со вторым
	submitBody := map[string]interface{}{
		"name":   "Resubmitted",
		"email":  "shared@example.com",
		"phone":  "9000000011",
		"degree": "10th",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", submitBody)

	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "Lead updated successfully")

	var count int64
	ts.DB.Model(&models.Lead{}).Count(&count)
	assert.Equal(t, int64(2), count, "третий лид не создается")

	var winner models.Lead
	assert.NoError(t, ts.DB.First(&winner, "id = ?", byEmail.ID).Error)
	assert.Equal(t, "Resubmitted", winner.Name)
	assert.Equal(t, models.Degree10th, winner.Degree)

	var loser models.Lead
	assert.NoError(t, ts.DB.First(&loser, "id = ?", byPhone.ID).Error)
	assert.Equal(t, "By Phone", loser.Name, "лид с совпавшим phone не трогается")
	assert.Equal(t, models.Degree10th, loser.Degree)
}

// TestSubmitLead_GraduationRequiresCourse - для высшего образования
// специальность обязательна
func TestSubmitLead_GraduationRequiresCourse(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	submitBody := map[string]interface{}{
		"name":   "Anita Desai",
		"email":  "anita@example.com",
		"phone":  "9000000003",
		"degree": "post-graduation",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", submitBody)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)

	var count int64
	ts.DB.Model(&models.Lead{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestSubmitLead_InvalidPayload - валидация обязательных полей
func TestSubmitLead_InvalidPayload(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	cases := []map[string]interface{}{
		{"email": "x@example.com", "phone": "9000000004", "degree": "12th"}, // нет name
		{"name": "X", "email": "not-an-email", "phone": "9000000004", "degree": "12th"},
		{"name": "X", "email": "x@example.com", "phone": "123", "degree": "12th"}, // короткий телефон
		{"name": "X", "email": "x@example.com", "phone": "9000000004", "degree": "phd"},
	}
	for i, body := range cases {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", "", body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "кейс %d. Ответ: %s", i, bodyStr)
	}
}

// TestGetLead_And_List - чтение одного лида и списка под токеном
func TestGetLead_And_List(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	lead := helpers.CreateLead(t, ts.DB, "Lead One", models.Degree12th)
	helpers.CreateLead(t, ts.DB, "Lead Two", models.DegreeGrad)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/leads", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":2`)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/leads/"+lead.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Lead One")

	// Несуществующий id
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/leads/00000000-0000-0000-0000-000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestUpdateLead_StatusAndNote - смена статуса и добавление заметки
// одним запросом, обе операции попадают в аудит
func TestUpdateLead_StatusAndNote(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	lead := helpers.CreateLead(t, ts.DB, "Lead Patch", models.Degree12th)

	patchBody := map[string]interface{}{
		"status": "done",
		"note":   "Called back, interested in 12th program",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/leads/"+lead.ID, token, patchBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var resp struct {
		Data models.Lead `json:"data"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
	assert.Equal(t, models.LeadStatusDone, resp.Data.Status)
	assert.Len(t, resp.Data.Notes, 1)
	assert.Equal(t, "Called back, interested in 12th program", resp.Data.Notes[0].Text)

	var auditLogs []models.Log
	ts.DB.Where("lead_id = ? AND action IN ?", lead.ID, []string{models.LogActionStatusChange, models.LogActionNoteAdded}).
		Find(&auditLogs)
	assert.Len(t, auditLogs, 2)
	for _, entry := range auditLogs {
		assert.Equal(t, models.LogTypeStaff, entry.Type)
		// В деталях виден действующий сотрудник
		assert.Contains(t, string(entry.Details), testAdminUsername)
	}
}

// TestUpdateLead_AppendsNotes - заметки дописываются, а не затираются
func TestUpdateLead_AppendsNotes(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	lead := helpers.CreateLead(t, ts.DB, "Lead Notes", models.Degree12th)

	for _, note := range []string{"first call", "second call"} {
		res, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/leads/"+lead.ID, token, map[string]interface{}{"note": note})
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	var updated models.Lead
	assert.NoError(t, ts.DB.First(&updated, "id = ?", lead.ID).Error)
	assert.Len(t, updated.Notes, 2)
	assert.Equal(t, "first call", updated.Notes[0].Text)
	assert.Equal(t, "second call", updated.Notes[1].Text)
}

// TestUpdateLead_LegacyStringNotes - лид со старым форматом заметок
// (голая строка в jsonb) мигрируется при первом дописывании
func TestUpdateLead_LegacyStringNotes(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	lead := helpers.CreateLead(t, ts.DB, "Lead Legacy", models.Degree12th)

	// Старые записи хранили заметки одной строкой
	err := ts.DB.Exec(`UPDATE leads SET notes = to_jsonb('old remark'::text) WHERE id = ?`, lead.ID).Error
	assert.NoError(t, err)

	res, _ := ts.SendRequest(t, http.MethodPatch, "/api/v1/leads/"+lead.ID, token, map[string]interface{}{"note": "new remark"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var updated models.Lead
	assert.NoError(t, ts.DB.First(&updated, "id = ?", lead.ID).Error)
	assert.Len(t, updated.Notes, 2)
	assert.Equal(t, "old remark", updated.Notes[0].Text)
	assert.Equal(t, "new remark", updated.Notes[1].Text)
}

// TestUpdateLead_EmptyBody - PATCH без полей отклоняется
func TestUpdateLead_EmptyBody(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	lead := helpers.CreateLead(t, ts.DB, "Lead Empty", models.Degree12th)

	res, bodyStr := ts.SendRequest(t, http.MethodPatch, "/api/v1/leads/"+lead.ID, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "Either status or note must be provided")

	// Невалидный статус тоже отклоняется
	res, _ = ts.SendRequest(t, http.MethodPatch, "/api/v1/leads/"+lead.ID, token, map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
