package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены
	// (в том числе когда для пациента невозможно собрать ни одного вопроса).
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (неверный токен, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда аккаунт не владеет запрошенным ресурсом.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (повторный ответ на уже отвеченный вопрос, занятые username/email).
	ErrConflict = errors.New("resource state conflict")

	// ErrInvalidState используется, когда операция невозможна из-за состояния аккаунта
	// (например, аккаунт не привязан к пациенту).
	ErrInvalidState = errors.New("invalid account state")
)
