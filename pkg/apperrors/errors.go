package apperrors

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	// ErrNotFound возвращается, когда запись о перевале не найдена
	ErrNotFound = errors.New("перевал не найден")

	// ErrStatusLocked возвращается при попытке сменить статус после модерации
	ErrStatusLocked = errors.New("статус нельзя изменить после модерации")

	// ErrNotEditable возвращается при попытке изменить запись не в статусе new
	ErrNotEditable = errors.New("запись можно редактировать только в статусе new")

	// ErrCacheMiss возвращается, когда запись не найдена в кэше
	ErrCacheMiss = redis.Nil

	// ErrRecordNotFound возвращается, когда запись не найдена в базе данных
	ErrRecordNotFound = gorm.ErrRecordNotFound
)

// DuplicateField указывает, какое поле перевала вызвало конфликт уникальности
type DuplicateField string

const (
	// DuplicateTitle - конфликт по названию перевала
	DuplicateTitle DuplicateField = "title"

	// DuplicateCoords - конфликт по тройке координат
	DuplicateCoords DuplicateField = "coords"
)

// DuplicateError сообщает о конфликте с уже существующим перевалом
// и хранит идентификатор занявшей записи
type DuplicateError struct {
	Field     DuplicateField
	PerevalID uint
}

func (e *DuplicateError) Error() string {
	if e.Field == DuplicateTitle {
		return fmt.Sprintf("перевал с таким названием уже существует: id=%d", e.PerevalID)
	}
	return fmt.Sprintf("координаты уже заняты перевалом: id=%d", e.PerevalID)
}

// IdentityConflictError сообщает, что email уже закреплен за другими ФИО.
// Переносит сохраненные значения, чтобы показать их отправителю
type IdentityConflictError struct {
	Email string
	Fam   string
	Name  string
	Otc   string
}

func (e *IdentityConflictError) Error() string {
	return fmt.Sprintf("Под данным email %s уже есть другие ФИО: %s %s %s", e.Email, e.Fam, e.Name, e.Otc)
}

// IsNotFound проверяет, является ли ошибка ошибкой "запись не найдена"
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCacheMiss) ||
		errors.Is(err, ErrRecordNotFound)
}
