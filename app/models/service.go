package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Title       string `gorm:"size:255"`
	Slug        string `gorm:"size:255;index"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:255"`
	IsActive    bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	return nil
}

func (s *Service) FindByID(db *gorm.DB, id string) (*Service, error) {
	var service Service

	err := db.Model(&Service{}).Where("id = ?", id).First(&service).Error
	if err != nil {
		return nil, err
	}

	return &service, nil
}

func (s *Service) GetActive(db *gorm.DB) ([]Service, error) {
	var services []Service

	err := db.Model(&Service{}).Where("is_active = ?", true).
		Order("created_at desc").Find(&services).Error
	if err != nil {
		return nil, err
	}

	return services, nil
}
