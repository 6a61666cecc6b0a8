package models

import (
	"time"

	"lineup/internal/shared/constants"
)

type CounterModel struct {
	ID             uint   `gorm:"primaryKey"`
	LocationID     uint   `gorm:"not null;index"`
	Name           string `gorm:"size:100;not null"`
	Prefix         string `gorm:"size:5;not null"`
	OpenTime       string `gorm:"size:5;not null;default:'00:00'"`
	CloseTime      string `gorm:"size:5;not null;default:'00:00'"`
	CapacityPerDay int    `gorm:"not null"`
	Active         bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CounterModel) TableName() string {
	return constants.TableCounters
}

type LocationModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LocationModel) TableName() string {
	return constants.TableLocations
}
