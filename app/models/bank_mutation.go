package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankMutation: baris mutasi rekening hasil import CSV, dipakai untuk
// mencocokkan otomatis pembayaran transfer manual yang masih pending.
type BankMutation struct {
	ID      uint            `gorm:"primaryKey;autoIncrement"`
	Bank    string          `gorm:"size:50"`
	Account string          `gorm:"size:100"`
	Amount  decimal.Decimal `gorm:"type:decimal(20,2)"`
	Note    string          `gorm:"size:255"`
	RefCode string          `gorm:"size:100"`
	TrxTime time.Time

	Matched        bool   `gorm:"default:false"`
	MatchedPayment string `gorm:"type:varchar(36);index"` // payments.id
	MatchedAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
