package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ulp_backend/internal/app"
	"ulp_backend/internal/config"
	"ulp_backend/internal/telemetry"
)

type TestServer struct {
	Server    *httptest.Server
	DB        *gorm.DB
	Collector *telemetry.Collector
}

// NewTestServer создает и настраивает тестовый сервер и БД.
// Конфиг берется из переменных окружения (DATABASE_URL и т.д.).
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := app.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router, collector := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	log.Printf("✅ Тестовый сервер запущен, тестовая БД настроена.")

	return &TestServer{
		Server:    server,
		DB:        db,
		Collector: collector,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.Collector.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables очищает все таблицы.
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec("TRUNCATE TABLE leads, events, logs RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// SendRequest отправляет JSON-запрос на тестовый сервер
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	return ts.sendRequest(t, method, path, token, "", body)
}

// SendRequestWithHost то же самое, но с подменой Host-заголовка.
// Нужно для проверки подавления трекинга на restricted-хостах.
func (ts *TestServer) SendRequestWithHost(t *testing.T, method, path, host string, body interface{}) (*http.Response, string) {
	return ts.sendRequest(t, method, path, "", host, body)
}

func (ts *TestServer) sendRequest(t *testing.T, method, path, token, host string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if host != "" {
		req.Host = host
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}
