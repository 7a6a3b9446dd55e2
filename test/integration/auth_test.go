package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"ulp_backend/internal/models"
	"ulp_backend/test/helpers"
)

// TestLogin_Success - проверяет логин и запись login в аудит
func TestLogin_Success(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)
	assert.NotEmpty(t, token)

	// Успешный логин должен попасть в аудит (httptest-хост не restricted)
	var logs []models.Log
	err := ts.DB.Where("type = ? AND action = ?", models.LogTypeStaff, models.LogActionLogin).Find(&logs).Error
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Contains(t, string(logs[0].Details), testAdminUsername)
}

// TestLogin_WrongPassword - неверные креды дают 401 и общее сообщение
func TestLogin_WrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	loginBody := map[string]interface{}{
		"username": testAdminUsername,
		"password": "not-the-password",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid username or password")
	// Сообщение не должно раскрывать, что именно неверно
	assert.NotContains(t, bodyStr, "password is wrong")

	// Провальный логин в аудит не пишется
	var count int64
	ts.DB.Model(&models.Log{}).Where("action = ?", models.LogActionLogin).Count(&count)
	assert.Equal(t, int64(0), count)
}

// TestLogin_UnknownUser - несуществующий логин дает тот же ответ, что и
// неверный пароль
func TestLogin_UnknownUser(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	loginBody := map[string]interface{}{
		"username": "nobody",
		"password": "whatever123",
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid username or password")
}

// TestProtectedRoutes_RequireToken - админские маршруты закрыты без токена
func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	paths := []string{"/api/v1/leads", "/api/v1/events", "/api/v1/logs"}
	for _, path := range paths {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "GET %s без токена. Ответ: %s", path, bodyStr)
	}

	// Мусорный токен тоже отклоняется
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/leads", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestProtectedRoutes_WithToken - с валидным токеном доступ открыт
func TestProtectedRoutes_WithToken(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token := helpers.LoginAdmin(t, ts, testAdminUsername, testAdminPassword)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/leads", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, `"success":true`)
}
