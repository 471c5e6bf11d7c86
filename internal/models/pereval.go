package models

import (
	"time"
)

// Status описывает этап модерации записи о перевале
type Status string

const (
	StatusNew      Status = "new"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// ParseStatus проверяет строковое значение статуса на границе API
func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusNew, StatusPending, StatusAccepted, StatusRejected:
		return Status(raw), true
	}
	return "", false
}

// IsTerminal сообщает, прошла ли запись модерацию
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// User представляет отправителя записей о перевалах
type User struct {
	ID    uint   `gorm:"primaryKey"`
	Fam   string `gorm:"not null"`
	Name  string `gorm:"not null"`
	Otc   string `gorm:"not null"`
	Email string `gorm:"uniqueIndex;not null"`
	Phone string `gorm:"not null"`

	// Связи
	Perevals []PerevalAdded `gorm:"foreignKey:UserID"`
}

// Coords представляет географическую точку перевала
type Coords struct {
	ID        uint    `gorm:"primaryKey"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	Height    int     `gorm:"not null"`
}

// Level содержит сезонные категории сложности перевала
type Level struct {
	ID     uint `gorm:"primaryKey"`
	Winter string
	Summer string
	Autumn string
	Spring string
}

// PerevalAdded представляет запись о перевале, проходящую модерацию
type PerevalAdded struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"not null"`
	CoordsID    uint  `gorm:"column:coord_id;not null"`
	LevelID     *uint `gorm:"column:level_id"`
	BeautyTitle string
	Title       string
	OtherTitles string
	Connect     string
	AddTime     time.Time `gorm:"autoCreateTime"`
	Status      Status    `gorm:"type:varchar(16);default:new"`

	// Связи
	User   User           `gorm:"foreignKey:UserID"`
	Coords Coords         `gorm:"foreignKey:CoordsID;references:ID"`
	Level  Level          `gorm:"foreignKey:LevelID;references:ID"`
	Images []PerevalImage `gorm:"foreignKey:PerevalID;constraint:OnDelete:CASCADE"`
}

// PerevalImage представляет фотографию перевала
type PerevalImage struct {
	ID        uint   `gorm:"primaryKey"`
	PerevalID uint   `gorm:"not null"`
	ImageURL  string `gorm:"not null"`
	Title     string `gorm:"not null"`
}

// TableName устанавливает имя таблицы для модели User
func (User) TableName() string {
	return "users"
}

// TableName устанавливает имя таблицы для модели Coords
func (Coords) TableName() string {
	return "coords"
}

// TableName устанавливает имя таблицы для модели Level
func (Level) TableName() string {
	return "levels"
}

// TableName устанавливает имя таблицы для модели PerevalAdded
func (PerevalAdded) TableName() string {
	return "pereval_added"
}

// TableName устанавливает имя таблицы для модели PerevalImage
func (PerevalImage) TableName() string {
	return "pereval_images"
}
