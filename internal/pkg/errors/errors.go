package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены (викторина, пользователь, игра, сессия).
	ErrNotFound = errors.New("record not found")

	// ErrForbidden используется, когда действие разрешено только создателю ресурса.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных
	// (короткое имя, меньше двух вариантов ответа, correctAnswer вне options).
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (занятое имя игрока, попытка дописать завершенную игру).
	ErrConflict = errors.New("resource state conflict")
)
