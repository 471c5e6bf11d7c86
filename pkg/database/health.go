package database

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthChecker проверяет доступность PostgreSQL и Redis
type HealthChecker struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

// NewHealthChecker создает новый экземпляр HealthChecker
func NewHealthChecker(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

// IsDatabaseHealthy проверяет здоровье PostgreSQL
func (c *HealthChecker) IsDatabaseHealthy(ctx context.Context) bool {
	sqlDB, err := c.db.DB()
	if err != nil {
		c.logger.Warn("Failed to get SQL DB instance", zap.Error(err))
		return false
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		c.logger.Warn("PostgreSQL ping failed", zap.Error(err))
		return false
	}

	return true
}

// IsRedisHealthy проверяет здоровье Redis
func (c *HealthChecker) IsRedisHealthy(ctx context.Context) bool {
	if err := c.redis.Ping(ctx).Err(); err != nil {
		c.logger.Warn("Redis ping failed", zap.Error(err))
		return false
	}

	return true
}
