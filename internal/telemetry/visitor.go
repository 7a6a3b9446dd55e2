package telemetry

import (
	"strings"

	"github.com/google/uuid"
)

// VisitorIDPrefix - фиксированный префикс идентификатора посетителя.
// Клиент генерирует id один раз и хранит его в localStorage.
const VisitorIDPrefix = "ULP-"

// NewVisitorID выпускает новый идентификатор посетителя:
// префикс + UUID в верхнем регистре.
func NewVisitorID() string {
	return VisitorIDPrefix + strings.ToUpper(uuid.NewString())
}

// IsVisitorID проверяет, похожа ли строка на наш идентификатор
func IsVisitorID(s string) bool {
	if !strings.HasPrefix(s, VisitorIDPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(s, VisitorIDPrefix))
	return err == nil
}
