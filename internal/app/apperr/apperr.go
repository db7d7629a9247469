// Package apperr описывает ошибки ядра закупок так, чтобы транспорт мог
// отличить клиентские ошибки от сбоев хранилища.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound базовая ошибка для всех NotFoundError
	ErrNotFound = errors.New("not found")
	// ErrReconciliationConflict смета заблокирована другой операцией (перегенерация плана
	// или запись в журнал закупок). Операцию нужно повторить целиком.
	ErrReconciliationConflict = errors.New("estimate is locked by a concurrent operation, retry")
	// ErrRequirementInUse на потребность ссылаются фактические закупки
	ErrRequirementInUse = errors.New("requirement is referenced by recorded purchases")
	// ErrUnavailable опциональный сервис (MinIO) не настроен
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError некорректные входные данные, отклоняются до записи
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid короткий конструктор для ValidationError
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError сущность отсутствует (или принадлежит другому тенанту)
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound короткий конструктор для NotFoundError
func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// TransactionError сбой хранилища. Наружу отдаётся только общий текст,
// исходная ошибка остаётся в логах.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Wrap оборачивает ошибку хранилища в TransactionError. Ошибки из таксономии
// (валидация, not found, конфликты) возвращаются как есть.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClientError(err) {
		return err
	}
	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return err
	}
	return &TransactionError{Op: op, Err: err}
}

// IsClientError true для ошибок, которые можно показать клиенту дословно
func IsClientError(err error) bool {
	var validation *ValidationError
	switch {
	case errors.As(err, &validation):
		return true
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrReconciliationConflict),
		errors.Is(err, ErrRequirementInUse),
		errors.Is(err, ErrUnavailable):
		return true
	}
	return false
}
