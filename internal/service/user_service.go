package service

import (
	"context"
	"errors"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepositoryInterface описывает интерфейс для работы с хранилищем пользователей
type UserRepositoryInterface interface {
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

// UserService находит или создает пользователя по email
type UserService struct {
	userRepo UserRepositoryInterface
	logger   *zap.Logger
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo UserRepositoryInterface, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetOrCreate возвращает пользователя по email, создавая его при первом
// обращении. Если email уже закреплен за другими ФИО, возвращает
// IdentityConflictError с сохраненными значениями; телефон в проверке
// не участвует
func (s *UserService) GetOrCreate(ctx context.Context, data *models.UserSchema) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(data.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("Failed to get user by email", zap.Error(err), zap.String("email", data.Email))
			return nil, err
		}

		user = &models.User{
			Fam:   data.Fam,
			Name:  data.Name,
			Otc:   data.Otc,
			Email: data.Email,
			Phone: data.Phone,
		}
		if err := s.userRepo.Create(user); err != nil {
			s.logger.Error("Failed to create user", zap.Error(err), zap.String("email", data.Email))
			return nil, err
		}

		s.logger.Info("Создан новый пользователь", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
		return user, nil
	}

	if user.Fam != data.Fam || user.Name != data.Name || user.Otc != data.Otc {
		s.logger.Warn("ФИО не совпадают с сохраненными",
			zap.String("email", user.Email),
			zap.String("stored", user.Fam+" "+user.Name+" "+user.Otc),
			zap.String("submitted", data.Fam+" "+data.Name+" "+data.Otc))
		return nil, &apperrors.IdentityConflictError{
			Email: user.Email,
			Fam:   user.Fam,
			Name:  user.Name,
			Otc:   user.Otc,
		}
	}

	s.logger.Debug("Пользователь найден, данные совпадают", zap.String("email", user.Email))
	return user, nil
}
