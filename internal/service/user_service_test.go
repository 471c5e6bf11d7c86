package service

import (
	"context"
	"errors"
	"testing"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Мок для репозитория пользователей
type MockUserRepository struct {
	users  map[string]*models.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Create(user *models.User) error {
	if _, exists := m.users[user.Email]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.Email] = user
	return nil
}

// TestGetOrCreateNewUser проверяет создание пользователя при первом обращении
func TestGetOrCreateNewUser(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zap.NewNop())

	data := &models.UserSchema{
		Fam:   "Иванов",
		Name:  "Иван",
		Otc:   "Иванович",
		Email: "ivanov@example.com",
		Phone: "+7 900 000 00 00",
	}

	user, err := svc.GetOrCreate(context.Background(), data)
	if err != nil {
		t.Fatalf("Failed to resolve user: %v", err)
	}

	if user.ID == 0 {
		t.Error("Expected user ID to be set")
	}
	if user.Email != data.Email {
		t.Errorf("Expected email %q, got %q", data.Email, user.Email)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected 1 stored user, got %d", len(repo.users))
	}
}

// TestGetOrCreateExistingUser проверяет, что при совпадении ФИО возвращается
// сохраненный пользователь без создания нового
func TestGetOrCreateExistingUser(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zap.NewNop())

	data := &models.UserSchema{
		Fam:   "Иванов",
		Name:  "Иван",
		Otc:   "Иванович",
		Email: "ivanov@example.com",
		Phone: "+7 900 000 00 00",
	}

	first, err := svc.GetOrCreate(context.Background(), data)
	if err != nil {
		t.Fatalf("Failed to resolve user: %v", err)
	}

	// Телефон отличается, но конфликтом это не считается
	data.Phone = "+7 911 111 11 11"
	second, err := svc.GetOrCreate(context.Background(), data)
	if err != nil {
		t.Fatalf("Failed to resolve existing user: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("Expected same user ID %d, got %d", first.ID, second.ID)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected 1 stored user, got %d", len(repo.users))
	}
}

// TestGetOrCreateIdentityConflict проверяет отказ при несовпадении ФИО
func TestGetOrCreateIdentityConflict(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo, zap.NewNop())

	data := &models.UserSchema{
		Fam:   "Иванов",
		Name:  "Иван",
		Otc:   "Иванович",
		Email: "ivanov@example.com",
		Phone: "+7 900 000 00 00",
	}

	if _, err := svc.GetOrCreate(context.Background(), data); err != nil {
		t.Fatalf("Failed to resolve user: %v", err)
	}

	conflicting := &models.UserSchema{
		Fam:   "Петров",
		Name:  "Петр",
		Otc:   "Петрович",
		Email: "ivanov@example.com",
		Phone: "+7 900 000 00 00",
	}

	_, err := svc.GetOrCreate(context.Background(), conflicting)
	if err == nil {
		t.Fatal("Expected identity conflict error")
	}

	var conflict *apperrors.IdentityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected IdentityConflictError, got %T: %v", err, err)
	}
	if conflict.Fam != "Иванов" || conflict.Name != "Иван" || conflict.Otc != "Иванович" {
		t.Errorf("Expected stored identity in error, got %s %s %s", conflict.Fam, conflict.Name, conflict.Otc)
	}
	if len(repo.users) != 1 {
		t.Errorf("Expected no new users after conflict, got %d", len(repo.users))
	}
}
