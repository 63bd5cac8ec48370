package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VirtualAccount: channel VA yang dikelola admin. Langkah pembayaran
// disimpan sebagai JSON terurut supaya bisa dibekukan ke payment_data
// saat pembayaran dibuat.
type VirtualAccount struct {
	ID            string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	BankCode      string `gorm:"size:20;uniqueIndex"`
	Name          string `gorm:"size:100"`
	AccountNumber string `gorm:"size:50"`
	Logo          string `gorm:"size:255"`
	IsActive      bool   `gorm:"default:true"`
	Instructions  datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
}

type PaymentInstruction struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
}

func (v *VirtualAccount) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}

	return nil
}

func (v *VirtualAccount) FindByID(db *gorm.DB, id string) (*VirtualAccount, error) {
	var va VirtualAccount

	err := db.Model(&VirtualAccount{}).Where("id = ?", id).First(&va).Error
	if err != nil {
		return nil, err
	}

	return &va, nil
}

func (v *VirtualAccount) FindActiveByBankCode(db *gorm.DB, code string) (*VirtualAccount, error) {
	var va VirtualAccount

	err := db.Model(&VirtualAccount{}).
		Where("bank_code = ? AND is_active = ?", code, true).First(&va).Error
	if err != nil {
		return nil, err
	}

	return &va, nil
}

func (v *VirtualAccount) GetActive(db *gorm.DB) ([]VirtualAccount, error) {
	var vas []VirtualAccount

	err := db.Model(&VirtualAccount{}).Where("is_active = ?", true).
		Order("name asc").Find(&vas).Error
	if err != nil {
		return nil, err
	}

	return vas, nil
}

// InstructionList: decode kolom JSON, urut berdasarkan step.
func (v VirtualAccount) InstructionList() []PaymentInstruction {
	var list []PaymentInstruction
	if len(v.Instructions) == 0 {
		return list
	}

	if err := json.Unmarshal(v.Instructions, &list); err != nil {
		return nil
	}

	return list
}

func (v *VirtualAccount) SetInstructions(list []PaymentInstruction) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}

	v.Instructions = datatypes.JSON(raw)
	return nil
}
