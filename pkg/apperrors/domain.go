package apperrors

import (
	"net/http"
)

/*
Фабрики для доменных ошибок: лиды, события, логи, аутентификация.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrDatabase - фабрика для ошибок хранилища (500)
func ErrDatabase(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Storage operation failed", http.StatusInternalServerError)
}

// ErrInvalidCredentials - логин/пароль не подошли ни к одной паре allow-list
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)
