package service

import (
	"context"
	"errors"
	"fmt"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Сообщения пользовательских ответов
const (
	msgCreated       = "Данные успешно отправлены"
	msgUpdated       = "Запись успешно обновлена"
	msgPerevalView   = "Данные перевала"
	msgPerevalsView  = "Данные перевалов"
	msgStatusUpdated = "Статус обновлен"
)

// PerevalRepositoryInterface описывает интерфейс для работы с хранилищем перевалов
type PerevalRepositoryInterface interface {
	GetByTitle(title string) (*models.PerevalAdded, error)
	FindCoords(latitude, longitude float64, height int) ([]models.Coords, error)
	GetByCoordsID(coordsID uint) (*models.PerevalAdded, error)
	GetByID(id uint) (*models.PerevalAdded, error)
	GetAll() ([]models.PerevalAdded, error)
	GetByUserEmail(email string) ([]models.PerevalAdded, error)
	Create(pereval *models.PerevalAdded, coords *models.Coords, level *models.Level, images []models.PerevalImage) error
	UpdateStatus(id uint, status models.Status) (*models.PerevalAdded, error)
	Update(id uint, data *models.SubmitDataUpdateRequest) error
}

// CacheRepositoryInterface описывает интерфейс для работы с кэшем представлений
type CacheRepositoryInterface interface {
	SetPereval(ctx context.Context, id uint, view *models.SubmitDataResponse) error
	GetPereval(ctx context.Context, id uint) (*models.SubmitDataResponse, error)
	DeletePereval(ctx context.Context, id uint) error
}

// SubmitService реализует бизнес-логику подачи и модерации перевалов
type SubmitService struct {
	perevalRepo PerevalRepositoryInterface
	cacheRepo   CacheRepositoryInterface
	logger      *zap.Logger
	linkBase    string
}

// NewSubmitService создает новый экземпляр SubmitService.
// linkBase - базовый адрес вида http://host:port для сборки share-ссылок
func NewSubmitService(perevalRepo PerevalRepositoryInterface, cacheRepo CacheRepositoryInterface, logger *zap.Logger, linkBase string) *SubmitService {
	return &SubmitService{
		perevalRepo: perevalRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		linkBase:    linkBase,
	}
}

// ShareLink собирает детерминированную ссылку на запись о перевале
func (s *SubmitService) ShareLink(id uint) string {
	return fmt.Sprintf("%s/submit/get/%d", s.linkBase, id)
}

// Create создает перевал с координатами, сложностью и фотографиями.
// Короткое замыкание на первом конфликте: сначала название, затем координаты,
// уже привязанные к другому перевалу. Точка координат без владельца не
// переиспользуется - создается новая
func (s *SubmitService) Create(ctx context.Context, data *models.SubmitDataRequest, user *models.User) (*models.SubmitOutcome, error) {
	existing, err := s.perevalRepo.GetByTitle(data.Title)
	if err == nil {
		s.logger.Info("Перевал с таким названием уже существует",
			zap.String("title", data.Title),
			zap.Uint("pereval_id", existing.ID))
		return &models.SubmitOutcome{
			Duplicate: &models.SimpleResponse{
				State:     0,
				Message:   fmt.Sprintf("Перевал с названием '%s' уже существует!", data.Title),
				ShareLink: s.ShareLink(existing.ID),
			},
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check title uniqueness", zap.Error(err), zap.String("title", data.Title))
		return nil, err
	}

	coordsList, err := s.perevalRepo.FindCoords(data.Coords.Latitude, data.Coords.Longitude, data.Coords.Height)
	if err != nil {
		s.logger.Error("Failed to check coords uniqueness", zap.Error(err))
		return nil, err
	}
	if len(coordsList) > 0 {
		owner, err := s.perevalRepo.GetByCoordsID(coordsList[0].ID)
		if err == nil {
			s.logger.Info("Перевал с такими координатами уже существует",
				zap.Uint("pereval_id", owner.ID),
				zap.Float64("lat", data.Coords.Latitude),
				zap.Float64("lon", data.Coords.Longitude))
			return &models.SubmitOutcome{
				Duplicate: &models.SimpleResponse{
					State:     0,
					Message:   "Перевал с такими координатами уже существует.",
					ShareLink: s.ShareLink(owner.ID),
				},
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Точка есть, но перевала на ней нет - создаем свежие строки
	}

	coords := &models.Coords{
		Latitude:  data.Coords.Latitude,
		Longitude: data.Coords.Longitude,
		Height:    data.Coords.Height,
	}
	level := &models.Level{
		Winter: data.Level.Winter,
		Summer: data.Level.Summer,
		Autumn: data.Level.Autumn,
		Spring: data.Level.Spring,
	}
	images := make([]models.PerevalImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, models.PerevalImage{ImageURL: img.URL, Title: img.Title})
	}
	pereval := &models.PerevalAdded{
		UserID:      user.ID,
		BeautyTitle: data.BeautyTitle,
		Title:       data.Title,
		OtherTitles: data.OtherTitles,
		Connect:     data.Connect,
	}

	if err := s.perevalRepo.Create(pereval, coords, level, images); err != nil {
		s.logger.Error("Failed to create pereval", zap.Error(err), zap.String("title", data.Title))
		return nil, err
	}
	pereval.User = *user

	s.logger.Info("Перевал создан",
		zap.Uint("pereval_id", pereval.ID),
		zap.String("title", pereval.Title),
		zap.String("email", user.Email))

	view := models.NewPerevalResponse(pereval, msgCreated, s.ShareLink(pereval.ID))

	// Кэшируем представление с сообщением для чтения, а не для создания,
	// чтобы последующие GET отдавали тот же конверт. Ошибка кэша не влияет
	// на результат
	cached := *view
	cached.Message = msgPerevalView
	if err := s.cacheRepo.SetPereval(ctx, pereval.ID, &cached); err != nil {
		s.logger.Warn("Failed to cache pereval view", zap.Error(err), zap.Uint("pereval_id", pereval.ID))
	}

	return &models.SubmitOutcome{Created: view}, nil
}

// GetByID возвращает денормализованное представление перевала
func (s *SubmitService) GetByID(ctx context.Context, id uint) (*models.SubmitDataResponse, error) {
	view, err := s.cacheRepo.GetPereval(ctx, id)
	if err == nil {
		s.logger.Debug("Pereval view retrieved from cache", zap.Uint("pereval_id", id))
		return view, nil
	}

	pereval, err := s.perevalRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.logger.Error("Failed to get pereval", zap.Error(err), zap.Uint("pereval_id", id))
		return nil, err
	}

	view = models.NewPerevalResponse(pereval, msgPerevalView, s.ShareLink(pereval.ID))

	if err := s.cacheRepo.SetPereval(ctx, id, view); err != nil {
		s.logger.Warn("Failed to cache pereval view", zap.Error(err), zap.Uint("pereval_id", id))
	}

	return view, nil
}

// GetAll возвращает представления всех перевалов.
// Пустая таблица считается ошибкой "не найдено"
func (s *SubmitService) GetAll(ctx context.Context) ([]models.SubmitDataResponse, error) {
	perevals, err := s.perevalRepo.GetAll()
	if err != nil {
		s.logger.Error("Failed to get perevals", zap.Error(err))
		return nil, err
	}

	if len(perevals) == 0 {
		return nil, apperrors.ErrNotFound
	}

	views := make([]models.SubmitDataResponse, 0, len(perevals))
	for i := range perevals {
		views = append(views, *models.NewPerevalResponse(&perevals[i], msgPerevalsView, s.ShareLink(perevals[i].ID)))
	}
	return views, nil
}

// GetByUserEmail возвращает представления перевалов пользователя.
// Отсутствие записей - не ошибка, возвращается пустой список
func (s *SubmitService) GetByUserEmail(ctx context.Context, email string) ([]models.SubmitDataResponse, error) {
	perevals, err := s.perevalRepo.GetByUserEmail(email)
	if err != nil {
		s.logger.Error("Failed to get perevals by email", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	views := make([]models.SubmitDataResponse, 0, len(perevals))
	for i := range perevals {
		views = append(views, *models.NewPerevalResponse(&perevals[i], msgPerevalView, s.ShareLink(perevals[i].ID)))
	}
	return views, nil
}

// Update редактирует запись о перевале. Мягкие отказы (не найдено, статус
// не new, конфликт координат или названия) возвращаются как SimpleResponse
// со state=0; ошибки базы данных поднимаются наверх
func (s *SubmitService) Update(ctx context.Context, id uint, data *models.SubmitDataUpdateRequest) (*models.SimpleResponse, error) {
	err := s.perevalRepo.Update(id, data)
	if err == nil {
		if err := s.cacheRepo.DeletePereval(ctx, id); err != nil {
			s.logger.Warn("Failed to invalidate pereval cache", zap.Error(err), zap.Uint("pereval_id", id))
		}
		s.logger.Info("Перевал обновлен", zap.Uint("pereval_id", id))
		return &models.SimpleResponse{
			State:     1,
			Message:   msgUpdated,
			ShareLink: s.ShareLink(id),
		}, nil
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.logger.Info("Перевал для обновления не найден", zap.Uint("pereval_id", id))
		return &models.SimpleResponse{State: 0, Message: "Перевал не найден"}, nil
	case errors.Is(err, apperrors.ErrNotEditable):
		s.logger.Info("Перевал нельзя редактировать", zap.Uint("pereval_id", id))
		return &models.SimpleResponse{State: 0, Message: "Запись можно редактировать только в статусе new"}, nil
	}

	var dup *apperrors.DuplicateError
	if errors.As(err, &dup) {
		message := "Координаты уже заняты другим перевалом"
		if dup.Field == apperrors.DuplicateTitle {
			message = "Перевал с таким названием уже существует"
		}
		s.logger.Info("Конфликт при обновлении перевала",
			zap.Uint("pereval_id", id),
			zap.Uint("conflict_id", dup.PerevalID),
			zap.String("field", string(dup.Field)))
		return &models.SimpleResponse{
			State:     0,
			Message:   message,
			ShareLink: s.ShareLink(dup.PerevalID),
		}, nil
	}

	s.logger.Error("Failed to update pereval", zap.Error(err), zap.Uint("pereval_id", id))
	return nil, err
}

// UpdateStatus переводит перевал в новый статус модерации
func (s *SubmitService) UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.StatusUpdateResponse, error) {
	pereval, err := s.perevalRepo.UpdateStatus(id, status)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrStatusLocked) {
			s.logger.Error("Failed to update pereval status", zap.Error(err), zap.Uint("pereval_id", id))
		}
		return nil, err
	}

	if err := s.cacheRepo.DeletePereval(ctx, id); err != nil {
		s.logger.Warn("Failed to invalidate pereval cache", zap.Error(err), zap.Uint("pereval_id", id))
	}

	s.logger.Info("Статус перевала обновлен",
		zap.Uint("pereval_id", pereval.ID),
		zap.String("status", string(pereval.Status)))

	return &models.StatusUpdateResponse{
		Message:   msgStatusUpdated,
		PerevalID: pereval.ID,
		Status:    pereval.Status,
	}, nil
}
