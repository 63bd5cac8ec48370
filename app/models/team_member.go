package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamMember struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:255"`
	Role      string `gorm:"size:100"`
	Bio       string `gorm:"type:text"`
	Photo     string `gorm:"size:255"`
	Instagram string `gorm:"size:100"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	return nil
}

func (m *TeamMember) FindByID(db *gorm.DB, id string) (*TeamMember, error) {
	var member TeamMember

	err := db.Model(&TeamMember{}).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (m *TeamMember) GetActive(db *gorm.DB) ([]TeamMember, error) {
	var members []TeamMember

	err := db.Model(&TeamMember{}).Where("is_active = ?", true).
		Order("created_at asc").Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}
