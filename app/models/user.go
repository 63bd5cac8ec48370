package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:255"`
	Email     string `gorm:"size:255;uniqueIndex"`
	Phone     string `gorm:"size:50"`
	Password  string `gorm:"size:255"`
	IsAdmin   bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	return nil
}

func (u *User) CreateUser(db *gorm.DB, user *User) (*User, error) {
	result := db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

func (u *User) FindByID(db *gorm.DB, id string) (*User, error) {
	var user User

	err := db.Model(&User{}).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (u *User) FindByEmail(db *gorm.DB, email string) (*User, error) {
	var user User

	err := db.Model(&User{}).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (u *User) GetUsers(db *gorm.DB, perPage int, page int) ([]User, int64, error) {
	var users []User
	var count int64

	err := db.Model(&User{}).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err = db.Model(&User{}).Order("created_at desc").Limit(perPage).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, count, nil
}
