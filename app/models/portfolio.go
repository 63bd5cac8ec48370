package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Portfolio struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title       string `gorm:"size:255"`
	Slug        string `gorm:"size:255;index"`
	Category    string `gorm:"size:100"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:255"`
	EventDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return nil
}

func (p *Portfolio) FindByID(db *gorm.DB, id string) (*Portfolio, error) {
	var portfolio Portfolio

	err := db.Model(&Portfolio{}).Where("id = ?", id).First(&portfolio).Error
	if err != nil {
		return nil, err
	}

	return &portfolio, nil
}

func (p *Portfolio) GetPortfolios(db *gorm.DB, perPage int, page int) ([]Portfolio, int64, error) {
	var portfolios []Portfolio
	var count int64

	err := db.Model(&Portfolio{}).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err = db.Model(&Portfolio{}).Order("event_date desc").
		Limit(perPage).Offset(offset).Find(&portfolios).Error
	if err != nil {
		return nil, 0, err
	}

	return portfolios, count, nil
}
