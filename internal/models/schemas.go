package models

import (
	"fmt"
	"time"
)

// Допустимые категории сложности по сезонам
var validLevelGrades = map[string]struct{}{
	"1A": {}, "1B": {}, "2A": {}, "2B": {}, "3A": {}, "3B": {}, "": {},
}

// UserSchema представляет данные отправителя в запросе и ответе
type UserSchema struct {
	Fam   string `json:"fam" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Otc   string `json:"otc" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// CoordsSchema представляет координаты перевала в запросе и ответе
type CoordsSchema struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    int     `json:"height"`
}

// ImageSchema представляет фотографию перевала в запросе и ответе
type ImageSchema struct {
	URL   string `json:"url" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// LevelSchema представляет сезонные категории сложности в запросе и ответе
type LevelSchema struct {
	Winter string `json:"winter"`
	Summer string `json:"summer"`
	Autumn string `json:"autumn"`
	Spring string `json:"spring"`
}

// Validate проверяет, что все категории входят в допустимый набор
func (l *LevelSchema) Validate() error {
	for _, grade := range []string{l.Winter, l.Summer, l.Autumn, l.Spring} {
		if _, ok := validLevelGrades[grade]; !ok {
			return fmt.Errorf("неверный уровень сложности: %s", grade)
		}
	}
	return nil
}

// SubmitDataRequest представляет запрос на создание перевала
type SubmitDataRequest struct {
	BeautyTitle string        `json:"beauty_title"`
	Title       string        `json:"title" binding:"required"`
	OtherTitles string        `json:"other_titles"`
	Connect     string        `json:"connect"`
	User        UserSchema    `json:"user" binding:"required"`
	Coords      CoordsSchema  `json:"coords"`
	Level       LevelSchema   `json:"level"`
	Images      []ImageSchema `json:"images"`
}

// Validate выполняет доменные проверки поверх привязки JSON
func (r *SubmitDataRequest) Validate() error {
	return r.Level.Validate()
}

// SubmitDataUpdateRequest представляет запрос на редактирование перевала
type SubmitDataUpdateRequest struct {
	BeautyTitle string        `json:"beauty_title"`
	Title       string        `json:"title" binding:"required"`
	OtherTitles string        `json:"other_titles"`
	Connect     string        `json:"connect"`
	Coords      CoordsSchema  `json:"coords"`
	Level       LevelSchema   `json:"level"`
	Images      []ImageSchema `json:"images"`
}

// Validate выполняет доменные проверки поверх привязки JSON
func (r *SubmitDataUpdateRequest) Validate() error {
	return r.Level.Validate()
}

// SubmitDataResponse представляет денормализованное представление перевала
type SubmitDataResponse struct {
	Message     string        `json:"message"`
	ShareLink   string        `json:"share_link"`
	Status      Status        `json:"status"`
	BeautyTitle string        `json:"beauty_title"`
	Title       string        `json:"title"`
	OtherTitles string        `json:"other_titles"`
	Connect     string        `json:"connect"`
	AddTime     time.Time     `json:"add_time"`
	User        UserSchema    `json:"user"`
	Coords      CoordsSchema  `json:"coords"`
	Level       LevelSchema   `json:"level"`
	Images      []ImageSchema `json:"images"`
}

// SimpleResponse представляет мягкий исход операции: state=0 конфликт, state=1 применено
type SimpleResponse struct {
	State     int    `json:"state"`
	Message   string `json:"message"`
	ShareLink string `json:"share_link"`
}

// StatusUpdateResponse представляет результат смены статуса перевала
type StatusUpdateResponse struct {
	Message   string `json:"message"`
	PerevalID uint   `json:"pereval_id"`
	Status    Status `json:"status"`
}

// SubmitOutcome представляет размеченный результат создания перевала:
// заполнено ровно одно из полей
type SubmitOutcome struct {
	Created   *SubmitDataResponse
	Duplicate *SimpleResponse
}

// State возвращает дискриминант исхода: 1 - запись создана, 0 - конфликт
func (o *SubmitOutcome) State() int {
	if o.Created != nil {
		return 1
	}
	return 0
}

// NewPerevalResponse собирает денормализованное представление перевала
// из записи с загруженными связями
func NewPerevalResponse(p *PerevalAdded, message, shareLink string) *SubmitDataResponse {
	images := make([]ImageSchema, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ImageSchema{URL: img.ImageURL, Title: img.Title})
	}

	return &SubmitDataResponse{
		Message:     message,
		ShareLink:   shareLink,
		Status:      p.Status,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		AddTime:     p.AddTime,
		User: UserSchema{
			Fam:   p.User.Fam,
			Name:  p.User.Name,
			Otc:   p.User.Otc,
			Email: p.User.Email,
			Phone: p.User.Phone,
		},
		Coords: CoordsSchema{
			Latitude:  p.Coords.Latitude,
			Longitude: p.Coords.Longitude,
			Height:    p.Coords.Height,
		},
		Level: LevelSchema{
			Winter: p.Level.Winter,
			Summer: p.Level.Summer,
			Autumn: p.Level.Autumn,
			Spring: p.Level.Spring,
		},
		Images: images,
	}
}
