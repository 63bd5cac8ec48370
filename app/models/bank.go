package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bank: rekening tujuan untuk pembayaran transfer manual.
type Bank struct {
	ID            string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string `gorm:"size:100"`
	Code          string `gorm:"size:20;index"`
	AccountNumber string `gorm:"size:50"`
	AccountName   string `gorm:"size:255"`
	Branch        string `gorm:"size:100"`
	Logo          string `gorm:"size:255"`
	IsActive      bool   `gorm:"default:true"`
	Description   string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	return nil
}

func (b *Bank) FindByID(db *gorm.DB, id string) (*Bank, error) {
	var bank Bank

	err := db.Model(&Bank{}).Where("id = ?", id).First(&bank).Error
	if err != nil {
		return nil, err
	}

	return &bank, nil
}

func (b *Bank) FindActiveByCode(db *gorm.DB, code string) (*Bank, error) {
	var bank Bank

	err := db.Model(&Bank{}).Where("code = ? AND is_active = ?", code, true).First(&bank).Error
	if err != nil {
		return nil, err
	}

	return &bank, nil
}

func (b *Bank) GetActive(db *gorm.DB) ([]Bank, error) {
	var banks []Bank

	err := db.Model(&Bank{}).Where("is_active = ?", true).
		Order("name asc").Find(&banks).Error
	if err != nil {
		return nil, err
	}

	return banks, nil
}
