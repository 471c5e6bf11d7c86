package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"PerevalPassService/internal/models"
	"PerevalPassService/pkg/apperrors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis создает мини-Redis сервер для тестирования
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create mini redis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func testPerevalView() *models.SubmitDataResponse {
	return &models.SubmitDataResponse{
		Message:     "Данные перевала",
		ShareLink:   "http://localhost:8000/submit/get/1",
		Status:      models.StatusNew,
		BeautyTitle: "пер. ",
		Title:       "Everest North",
		OtherTitles: "Северный",
		AddTime:     time.Date(2024, 9, 22, 13, 18, 13, 0, time.UTC),
		User: models.UserSchema{
			Fam:   "Иванов",
			Name:  "Иван",
			Otc:   "Иванович",
			Email: "ivanov@example.com",
			Phone: "+7 900 000 00 00",
		},
		Coords: models.CoordsSchema{Latitude: 45.3842, Longitude: 7.1525, Height: 1200},
		Level:  models.LevelSchema{Winter: "1B", Summer: "1A", Autumn: "1A"},
		Images: []models.ImageSchema{
			{URL: "https://img.example.com/1.jpg", Title: "Седловина"},
		},
	}
}

// TestSetAndGetPereval тестирует методы SetPereval и GetPereval
func TestSetAndGetPereval(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	repo := NewCacheRepository(client)
	ctx := context.Background()

	view := testPerevalView()

	err := repo.SetPereval(ctx, 1, view)
	if err != nil {
		t.Fatalf("Failed to set pereval view in cache: %v", err)
	}

	cached, err := repo.GetPereval(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get pereval view from cache: %v", err)
	}

	if cached.Title != view.Title {
		t.Errorf("Expected title %q, got %q", view.Title, cached.Title)
	}
	if cached.Status != view.Status {
		t.Errorf("Expected status %q, got %q", view.Status, cached.Status)
	}
	if cached.ShareLink != view.ShareLink {
		t.Errorf("Expected share link %q, got %q", view.ShareLink, cached.ShareLink)
	}
	if cached.Coords != view.Coords {
		t.Errorf("Expected coords %+v, got %+v", view.Coords, cached.Coords)
	}
	if cached.Level != view.Level {
		t.Errorf("Expected level %+v, got %+v", view.Level, cached.Level)
	}
	if !cached.AddTime.Equal(view.AddTime) {
		t.Errorf("Expected add_time %v, got %v", view.AddTime, cached.AddTime)
	}
	if len(cached.Images) != 1 || cached.Images[0] != view.Images[0] {
		t.Errorf("Expected images %+v, got %+v", view.Images, cached.Images)
	}
}

// TestGetPerevalCacheMiss тестирует промах кэша
func TestGetPerevalCacheMiss(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	repo := NewCacheRepository(client)

	_, err := repo.GetPereval(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("Expected cache miss, got %v", err)
	}
}

// TestDeletePereval тестирует метод DeletePereval
func TestDeletePereval(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	repo := NewCacheRepository(client)
	ctx := context.Background()

	if err := repo.SetPereval(ctx, 1, testPerevalView()); err != nil {
		t.Fatalf("Failed to set pereval view in cache: %v", err)
	}

	if err := repo.DeletePereval(ctx, 1); err != nil {
		t.Fatalf("Failed to delete pereval view from cache: %v", err)
	}

	_, err := repo.GetPereval(ctx, 1)
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("Expected cache miss after delete, got %v", err)
	}
}

// TestPerevalViewTTL тестирует истечение срока жизни представления
func TestPerevalViewTTL(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	repo := NewCacheRepository(client)
	ctx := context.Background()

	if err := repo.SetPereval(ctx, 1, testPerevalView()); err != nil {
		t.Fatalf("Failed to set pereval view in cache: %v", err)
	}

	// Перематываем время за пределы TTL
	mr.FastForward(16 * time.Minute)

	_, err := repo.GetPereval(ctx, 1)
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("Expected cache miss after TTL, got %v", err)
	}
}
