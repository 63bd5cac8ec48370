package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

type Payment struct {
	ID            string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID       string `gorm:"size:36;index"`
	Order         Order
	Amount        decimal.Decimal      `gorm:"type:decimal(16,2)"`
	PaymentType   consts.PaymentType   `gorm:"size:50"`
	PaymentMethod consts.PaymentMethod `gorm:"size:50"`
	BankCode      string               `gorm:"size:20"`
	Status        consts.PaymentStatus `gorm:"size:50;index"`
	ExpiryTime    time.Time

	// Transfer manual: nama file bukti transfer.
	PaymentProof string `gorm:"size:255"`

	// Virtual account: nomor VA dari gateway.
	VaNumber string `gorm:"size:50"`

	// Catatan admin saat verifikasi (wajib saat reject).
	Note string `gorm:"size:255"`

	// Snapshot instruksi pembayaran saat payment dibuat, supaya tampilan
	// tidak berubah kalau admin mengedit VA belakangan.
	PaymentData datatypes.JSON

	VerifiedBy string `gorm:"size:36"`
	VerifiedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	if p.Status == "" {
		p.Status = consts.PaymentStatusPending
	}

	return nil
}

func (p *Payment) CreatePayment(db *gorm.DB, payment *Payment) (*Payment, error) {
	result := db.Create(payment)
	if result.Error != nil {
		return nil, result.Error
	}

	return payment, nil
}

func (p *Payment) FindByID(db *gorm.DB, id string) (*Payment, error) {
	var payment Payment

	err := db.
		Preload("Order").
		Preload("Order.Catalog").
		Preload("Order.User").
		Model(&Payment{}).Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// HasPendingForOrder: dipakai sebagai rem dobel-submit di sisi server.
func (p *Payment) HasPendingForOrder(db *gorm.DB, orderID string) (bool, error) {
	var count int64

	err := db.Model(&Payment{}).
		Where("order_id = ? AND status = ?", orderID, consts.PaymentStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (p *Payment) GetByStatus(db *gorm.DB, status consts.PaymentStatus, perPage int, page int) ([]Payment, int64, error) {
	var payments []Payment
	var count int64

	q := db.Model(&Payment{}).Where("status = ?", status)

	err := q.Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err = q.
		Preload("Order").
		Preload("Order.User").
		Order("created_at desc").
		Limit(perPage).Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, count, nil
}

func (p *Payment) transitionTo(status consts.PaymentStatus) error {
	if p.Status != consts.PaymentStatusPending {
		return fmt.Errorf("pembayaran berstatus %s tidak bisa diubah ke %s", p.Status, status)
	}

	if !status.Terminal() {
		return fmt.Errorf("transisi ke %s tidak dikenal", status)
	}

	p.Status = status
	return nil
}

func (p *Payment) MarkVerified(db *gorm.DB, adminID string, note string) error {
	if err := p.transitionTo(consts.PaymentStatusVerified); err != nil {
		return err
	}

	p.Note = note
	p.VerifiedBy = adminID
	p.VerifiedAt = time.Now()

	return db.Model(p).Updates(map[string]interface{}{
		"status":      p.Status,
		"note":        p.Note,
		"verified_by": p.VerifiedBy,
		"verified_at": p.VerifiedAt,
		"updated_at":  time.Now(),
	}).Error
}

func (p *Payment) MarkRejected(db *gorm.DB, adminID string, note string) error {
	if strings.TrimSpace(note) == "" {
		return errors.New("catatan penolakan wajib diisi")
	}

	if err := p.transitionTo(consts.PaymentStatusRejected); err != nil {
		return err
	}

	p.Note = note
	p.VerifiedBy = adminID
	p.VerifiedAt = time.Now()

	return db.Model(p).Updates(map[string]interface{}{
		"status":      p.Status,
		"note":        p.Note,
		"verified_by": p.VerifiedBy,
		"verified_at": p.VerifiedAt,
		"updated_at":  time.Now(),
	}).Error
}

func (p *Payment) MarkExpired(db *gorm.DB) error {
	if err := p.transitionTo(consts.PaymentStatusExpired); err != nil {
		return err
	}

	return db.Model(p).Updates(map[string]interface{}{
		"status":     p.Status,
		"updated_at": time.Now(),
	}).Error
}

// DerivePaymentAmount: hitung nominal dari jenis pembayaran dan input user.
//   - down_payment  -> persis DownPaymentAmount
//   - full_payment  -> persis RemainingAmount
//   - installment   -> input manual di-clamp ke [1, RemainingAmount];
//     input kosong memakai default setengah sisa tagihan;
//     input bukan angka atau di bawah Rp 1 menjadi 0 (ditolak saat submit).
func DerivePaymentAmount(order *Order, paymentType consts.PaymentType, input string) decimal.Decimal {
	switch paymentType {
	case consts.PaymentTypeDownPayment:
		return order.DownPaymentAmount
	case consts.PaymentTypeFullPayment:
		return order.RemainingAmount
	case consts.PaymentTypeInstallment:
		if strings.TrimSpace(input) == "" {
			return DefaultInstallmentAmount(order)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(input))
		if err != nil || amount.LessThan(decimal.NewFromInt(1)) {
			return decimal.Zero
		}

		if amount.GreaterThan(order.RemainingAmount) {
			return order.RemainingAmount
		}

		return amount
	}

	return decimal.Zero
}

func DefaultInstallmentAmount(order *Order) decimal.Decimal {
	half := order.RemainingAmount.Div(decimal.NewFromInt(2))
	if half.GreaterThan(order.RemainingAmount) {
		return order.RemainingAmount
	}

	return half
}

// AllowedPaymentTypes: jenis pembayaran yang boleh dipilih untuk order ini.
func AllowedPaymentTypes(order *Order) []consts.PaymentType {
	var types []consts.PaymentType

	if order.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		return types
	}

	if order.RequiresDownPayment && !order.DownPaymentPaid {
		types = append(types, consts.PaymentTypeDownPayment)
	}

	types = append(types, consts.PaymentTypeInstallment, consts.PaymentTypeFullPayment)
	return types
}

// CountdownText: sisa waktu "HH:MM:SS" menuju ExpiryTime, berhenti di
// 00:00:00 dan tidak pernah negatif. Waktu server tetap otoritatif.
func (p Payment) CountdownText(now time.Time) string {
	remaining := p.ExpiryTime.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	total := int(remaining.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func (p Payment) IsExpiredAt(now time.Time) bool {
	return !p.ExpiryTime.IsZero() && now.After(p.ExpiryTime)
}

func (p Payment) StatusLabel() string {
	return p.Status.Label()
}

// SnapshotInstructions: bekukan instruksi VA ke payment_data.
func (p *Payment) SnapshotInstructions(va *VirtualAccount) {
	if va == nil || len(va.Instructions) == 0 {
		return
	}

	data := make(datatypes.JSON, len(va.Instructions))
	copy(data, va.Instructions)
	p.PaymentData = data
}

// InstructionList: baca snapshot instruksi dari payment_data.
func (p Payment) InstructionList() []PaymentInstruction {
	va := VirtualAccount{Instructions: p.PaymentData}
	return va.InstructionList()
}
