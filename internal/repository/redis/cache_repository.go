package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/server"

	"github.com/redis/go-redis/v9"
)

// TTL кэшированного представления перевала
const perevalViewTTL = 15 * time.Minute

// CacheRepository представляет репозиторий для кэширования представлений
// перевалов в Redis
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository создает новый экземпляр CacheRepository
func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

func perevalKey(id uint) string {
	return fmt.Sprintf("pereval:%d:view", id)
}

// SetPereval кэширует денормализованное представление перевала
func (r *CacheRepository) SetPereval(ctx context.Context, id uint, view *models.SubmitDataResponse) error {
	start := time.Now()

	data, err := json.Marshal(view)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, perevalKey(id), data, perevalViewTTL).Err()
	server.RecordCacheOperation("set_pereval", time.Since(start), err)
	return err
}

// GetPereval получает представление перевала из кэша
func (r *CacheRepository) GetPereval(ctx context.Context, id uint) (*models.SubmitDataResponse, error) {
	start := time.Now()

	data, err := r.client.Get(ctx, perevalKey(id)).Bytes()
	server.RecordCacheOperation("get_pereval", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	var view models.SubmitDataResponse
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}

	return &view, nil
}

// DeletePereval удаляет представление перевала из кэша
func (r *CacheRepository) DeletePereval(ctx context.Context, id uint) error {
	start := time.Now()
	err := r.client.Del(ctx, perevalKey(id)).Err()
	server.RecordCacheOperation("delete_pereval", time.Since(start), err)
	return err
}
