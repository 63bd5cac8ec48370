package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog: paket layanan wedding yang bisa dipesan customer.
type Catalog struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string `gorm:"size:255"`
	Slug        string `gorm:"size:255;index"`
	Description string `gorm:"type:text"`
	PriceMin    decimal.Decimal `gorm:"type:decimal(16,2)"`
	PriceMax    decimal.Decimal `gorm:"type:decimal(16,2)"`
	Image       string          `gorm:"size:255"`
	IsActive    bool            `gorm:"default:true"`
	Features    []CatalogFeature
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}

type CatalogFeature struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	CatalogID   string `gorm:"size:36;index"`
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Catalog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	return nil
}

func (f *CatalogFeature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	return nil
}

func (c *Catalog) FindByID(db *gorm.DB, id string) (*Catalog, error) {
	var catalog Catalog

	err := db.Preload("Features").Model(&Catalog{}).Where("id = ?", id).First(&catalog).Error
	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (c *Catalog) FindBySlug(db *gorm.DB, s string) (*Catalog, error) {
	var catalog Catalog

	err := db.Preload("Features").Model(&Catalog{}).Where("slug = ?", s).First(&catalog).Error
	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (c *Catalog) GetCatalogs(db *gorm.DB, perPage int, page int) ([]Catalog, int64, error) {
	var catalogs []Catalog
	var count int64

	err := db.Model(&Catalog{}).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err = db.Preload("Features").Model(&Catalog{}).
		Order("created_at desc").Limit(perPage).Offset(offset).Find(&catalogs).Error
	if err != nil {
		return nil, 0, err
	}

	return catalogs, count, nil
}

// PriceRangeText: "Rp x - Rp y" untuk listing
func (c Catalog) PriceRangeText() string {
	return "Rp " + c.PriceMin.StringFixed(0) + " - Rp " + c.PriceMax.StringFixed(0)
}
