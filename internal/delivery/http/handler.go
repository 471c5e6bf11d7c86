package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"
	"PerevalPassService/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SubmitServiceInterface определяет контракт сервиса перевалов для HTTP-слоя
type SubmitServiceInterface interface {
	Create(ctx context.Context, data *models.SubmitDataRequest, user *models.User) (*models.SubmitOutcome, error)
	GetByID(ctx context.Context, id uint) (*models.SubmitDataResponse, error)
	GetAll(ctx context.Context) ([]models.SubmitDataResponse, error)
	GetByUserEmail(ctx context.Context, email string) ([]models.SubmitDataResponse, error)
	Update(ctx context.Context, id uint, data *models.SubmitDataUpdateRequest) (*models.SimpleResponse, error)
	UpdateStatus(ctx context.Context, id uint, status models.Status) (*models.StatusUpdateResponse, error)
}

// UserResolverInterface определяет контракт поиска-или-создания пользователя
type UserResolverInterface interface {
	GetOrCreate(ctx context.Context, data *models.UserSchema) (*models.User, error)
}

// SubmitHandler обрабатывает HTTP запросы поверхности /submit
type SubmitHandler struct {
	submitService SubmitServiceInterface
	userService   UserResolverInterface
	logger        *zap.Logger
}

// NewSubmitHandler создает новый экземпляр SubmitHandler
func NewSubmitHandler(submitService SubmitServiceInterface, userService UserResolverInterface, logger *zap.Logger) *SubmitHandler {
	return &SubmitHandler{
		submitService: submitService,
		userService:   userService,
		logger:        logger,
	}
}

// bindErrorMessage различает отсутствие данных пользователя и прочие
// ошибки привязки тела запроса
func bindErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			if strings.HasPrefix(fieldErr.Namespace(), "SubmitDataRequest.User") {
				return "Ошибка: Данные пользователя не были переданы"
			}
		}
	}
	return "Ошибка: Данные не были переданы"
}

// CreatePereval обрабатывает POST /submit/submitData
func (h *SubmitHandler) CreatePereval(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	var data models.SubmitDataRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		log.Error("Некорректное тело запроса", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": bindErrorMessage(err)})
		return
	}
	if err := data.Validate(); err != nil {
		log.Error("Ошибка валидации запроса", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	log.Info("Создание перевала", zap.String("email", data.User.Email), zap.String("title", data.Title))

	user, err := h.userService.GetOrCreate(ctx, &data.User)
	if err != nil {
		var conflict *apperrors.IdentityConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"message": conflict.Error()})
			return
		}
		h.internalError(c, log, err)
		return
	}

	outcome, err := h.submitService.Create(ctx, &data, user)
	if err != nil {
		h.internalError(c, log, err)
		return
	}

	if outcome.State() == 1 {
		c.JSON(http.StatusOK, outcome.Created)
		return
	}
	c.JSON(http.StatusOK, outcome.Duplicate)
}

// GetAllPerevals обрабатывает GET /submit/submitData/
func (h *SubmitHandler) GetAllPerevals(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	views, err := h.submitService.GetAll(ctx)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Перевалы не найдены"})
			return
		}
		h.internalError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetPerevalsByUserEmail обрабатывает GET /submit/submitData/by_user/?user__email=
func (h *SubmitHandler) GetPerevalsByUserEmail(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	email := c.Query("user__email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ошибка: не передан параметр user__email"})
		return
	}

	views, err := h.submitService.GetByUserEmail(ctx, email)
	if err != nil {
		h.internalError(c, log, err)
		return
	}

	// Отсутствие записей у пользователя - не ошибка
	c.JSON(http.StatusOK, views)
}

// GetPereval обрабатывает GET /submit/submitData/{id} и GET /submit/get/{id}
func (h *SubmitHandler) GetPereval(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.submitService.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Перевал не найден"})
			return
		}
		h.internalError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdatePereval обрабатывает PATCH /submit/submitData/{id}
func (h *SubmitHandler) UpdatePereval(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var data models.SubmitDataUpdateRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		log.Error("Некорректное тело запроса", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ошибка: Данные не были переданы"})
		return
	}
	if err := data.Validate(); err != nil {
		log.Error("Ошибка валидации запроса", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	log.Info("Обновление перевала", zap.Uint("pereval_id", id))

	response, err := h.submitService.Update(ctx, id, &data)
	if err != nil {
		h.internalError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdatePerevalStatus обрабатывает PATCH /submit/submitData/update-status/{id}?status=
func (h *SubmitHandler) UpdatePerevalStatus(c *gin.Context) {
	ctx := c.Request.Context()
	log := server.WithRequestID(ctx, h.logger)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	status, ok := models.ParseStatus(c.Query("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Недопустимое значение статуса"})
		return
	}

	log.Info("Обновление статуса перевала", zap.Uint("pereval_id", id), zap.String("status", string(status)))

	response, err := h.submitService.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Перевал не найден"})
		case errors.Is(err, apperrors.ErrStatusLocked):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Статус нельзя изменить после модерации"})
		default:
			h.internalError(c, log, err)
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// parseID извлекает идентификатор перевала из пути
func (h *SubmitHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Некорректный идентификатор перевала"})
		return 0, false
	}
	return uint(id), true
}

// internalError возвращает единый конверт внутренней ошибки;
// детали остаются в логах
func (h *SubmitHandler) internalError(c *gin.Context, log *zap.Logger, err error) {
	log.Error("Error in application", zap.Error(err), zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
