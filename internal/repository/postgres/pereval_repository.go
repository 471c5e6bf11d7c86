package postgres

import (
	"errors"
	"time"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"
	"PerevalPassService/pkg/server"

	"gorm.io/gorm"
)

// PerevalRepository представляет репозиторий для работы с записями о перевалах
type PerevalRepository struct {
	db *gorm.DB
}

// NewPerevalRepository создает новый экземпляр PerevalRepository
func NewPerevalRepository(db *gorm.DB) *PerevalRepository {
	return &PerevalRepository{
		db: db,
	}
}

// GetByTitle получает перевал по точному совпадению названия
func (r *PerevalRepository) GetByTitle(title string) (*models.PerevalAdded, error) {
	var pereval models.PerevalAdded
	if err := r.db.Where("title = ?", title).First(&pereval).Error; err != nil {
		return nil, err
	}
	return &pereval, nil
}

// FindCoords получает все точки с точным совпадением тройки координат
func (r *PerevalRepository) FindCoords(latitude, longitude float64, height int) ([]models.Coords, error) {
	var coords []models.Coords
	err := r.db.
		Where("latitude = ? AND longitude = ? AND height = ?", latitude, longitude, height).
		Find(&coords).Error
	if err != nil {
		return nil, err
	}
	return coords, nil
}

// GetByCoordsID получает перевал, ссылающийся на заданную точку координат
func (r *PerevalRepository) GetByCoordsID(coordsID uint) (*models.PerevalAdded, error) {
	var pereval models.PerevalAdded
	if err := r.db.Where("coord_id = ?", coordsID).First(&pereval).Error; err != nil {
		return nil, err
	}
	return &pereval, nil
}

// GetByID получает перевал с пользователем, координатами, сложностью и фотографиями
func (r *PerevalRepository) GetByID(id uint) (*models.PerevalAdded, error) {
	var pereval models.PerevalAdded
	err := r.db.
		Preload("User").
		Preload("Coords").
		Preload("Level").
		Preload("Images").
		First(&pereval, id).Error
	if err != nil {
		return nil, err
	}
	return &pereval, nil
}

// GetAll получает все перевалы с загруженными связями
func (r *PerevalRepository) GetAll() ([]models.PerevalAdded, error) {
	var perevals []models.PerevalAdded
	err := r.db.
		Preload("User").
		Preload("Coords").
		Preload("Level").
		Preload("Images").
		Find(&perevals).Error
	if err != nil {
		return nil, err
	}
	return perevals, nil
}

// GetByUserEmail получает все перевалы, отправленные пользователем с данным email
func (r *PerevalRepository) GetByUserEmail(email string) ([]models.PerevalAdded, error) {
	var perevals []models.PerevalAdded
	err := r.db.
		Joins("JOIN users ON users.id = pereval_added.user_id").
		Where("users.email = ?", email).
		Preload("User").
		Preload("Coords").
		Preload("Level").
		Preload("Images").
		Find(&perevals).Error
	if err != nil {
		return nil, err
	}
	return perevals, nil
}

// Create создает перевал вместе с координатами, сложностью и фотографиями
// в одной транзакции. Статус новой записи всегда new
func (r *PerevalRepository) Create(pereval *models.PerevalAdded, coords *models.Coords, level *models.Level, images []models.PerevalImage) error {
	start := time.Now()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(coords).Error; err != nil {
			return err
		}

		if err := tx.Create(level).Error; err != nil {
			return err
		}

		pereval.CoordsID = coords.ID
		pereval.LevelID = &level.ID
		pereval.Status = models.StatusNew
		if err := tx.Create(pereval).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PerevalID = pereval.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
	server.RecordDBOperation("pereval_create", time.Since(start), err)
	if err != nil {
		return err
	}

	// Подвязываем созданные связи для сборки ответа без повторного чтения
	pereval.Coords = *coords
	pereval.Level = *level
	pereval.Images = images
	return nil
}

// UpdateStatus меняет статус перевала внутри транзакции.
// После модерации (accepted/rejected) статус заморожен
func (r *PerevalRepository) UpdateStatus(id uint, status models.Status) (*models.PerevalAdded, error) {
	start := time.Now()
	var pereval models.PerevalAdded
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pereval, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if pereval.Status.IsTerminal() {
			return apperrors.ErrStatusLocked
		}

		pereval.Status = status
		return tx.Save(&pereval).Error
	})
	server.RecordDBOperation("pereval_update_status", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &pereval, nil
}

// Update выполняет полное редактирование записи внутри одной транзакции:
// проверка статуса, конфликтов координат и названия, затем обновление полей.
// Фотографии заменяются только если переданы новые
func (r *PerevalRepository) Update(id uint, data *models.SubmitDataUpdateRequest) error {
	start := time.Now()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var pereval models.PerevalAdded
		if err := tx.First(&pereval, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if pereval.Status != models.StatusNew {
			return apperrors.ErrNotEditable
		}

		// Проверка, что новые координаты не заняты другим перевалом
		var coordsList []models.Coords
		err := tx.
			Where("latitude = ? AND longitude = ? AND height = ?",
				data.Coords.Latitude, data.Coords.Longitude, data.Coords.Height).
			Find(&coordsList).Error
		if err != nil {
			return err
		}
		for _, c := range coordsList {
			if c.ID == pereval.CoordsID {
				continue
			}
			var related models.PerevalAdded
			err := tx.Where("coord_id = ?", c.ID).First(&related).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			return &apperrors.DuplicateError{Field: apperrors.DuplicateCoords, PerevalID: related.ID}
		}

		// Проверка, что новое название не занято другим перевалом
		var sameTitle []models.PerevalAdded
		if err := tx.Where("title = ?", data.Title).Find(&sameTitle).Error; err != nil {
			return err
		}
		for _, other := range sameTitle {
			if other.ID != pereval.ID {
				return &apperrors.DuplicateError{Field: apperrors.DuplicateTitle, PerevalID: other.ID}
			}
		}

		pereval.BeautyTitle = data.BeautyTitle
		pereval.Title = data.Title
		pereval.OtherTitles = data.OtherTitles
		pereval.Connect = data.Connect
		if err := tx.Save(&pereval).Error; err != nil {
			return err
		}

		var coords models.Coords
		if err := tx.First(&coords, pereval.CoordsID).Error; err != nil {
			return err
		}
		coords.Latitude = data.Coords.Latitude
		coords.Longitude = data.Coords.Longitude
		coords.Height = data.Coords.Height
		if err := tx.Save(&coords).Error; err != nil {
			return err
		}

		if pereval.LevelID != nil {
			var level models.Level
			if err := tx.First(&level, *pereval.LevelID).Error; err != nil {
				return err
			}
			level.Winter = data.Level.Winter
			level.Summer = data.Level.Summer
			level.Autumn = data.Level.Autumn
			level.Spring = data.Level.Spring
			if err := tx.Save(&level).Error; err != nil {
				return err
			}
		}

		if len(data.Images) > 0 {
			if err := tx.Where("pereval_id = ?", pereval.ID).Delete(&models.PerevalImage{}).Error; err != nil {
				return err
			}
			for _, img := range data.Images {
				image := models.PerevalImage{
					PerevalID: pereval.ID,
					ImageURL:  img.URL,
					Title:     img.Title,
				}
				if err := tx.Create(&image).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	server.RecordDBOperation("pereval_update", time.Since(start), err)
	return err
}
