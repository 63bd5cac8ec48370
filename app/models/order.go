package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
)

type Order struct {
	ID          string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderNumber string `gorm:"size:50;index"`
	UserID      string `gorm:"size:36;index"`
	User        User
	CatalogID   string `gorm:"size:36;index"`
	Catalog     Catalog
	EventDate   time.Time
	Venue       string `gorm:"size:255"`

	// PaidAmount + RemainingAmount == Price dijaga oleh ApplyPayment,
	// satu-satunya yang boleh mengubah pasangan ini.
	Price           decimal.Decimal `gorm:"type:decimal(16,2)"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(16,2)"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(16,2)"`

	DownPaymentAmount     decimal.Decimal `gorm:"type:decimal(16,2)"`
	DownPaymentPercentage decimal.Decimal `gorm:"type:decimal(10,2)"`
	RequiresDownPayment   bool            `gorm:"default:true"`
	DownPaymentPaid       bool            `gorm:"default:false"`

	Status       consts.OrderStatus `gorm:"size:50;index"`
	CancelReason string             `gorm:"size:255"`

	Features []OrderFeature
	Payments []Payment
	Review   *Review

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// OrderFeature: permintaan tambahan di luar paket (custom feature).
type OrderFeature struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string `gorm:"size:36;index"`
	Name      string `gorm:"size:255"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Review struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string `gorm:"size:36;uniqueIndex"`
	Rating    int
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) BeforeCreate(db *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}

	if o.OrderNumber == "" {
		o.OrderNumber = generateOrderNumber(db)
	}

	return nil
}

func (f *OrderFeature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}

	return nil
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	return nil
}

func (o *Order) CreateOrder(db *gorm.DB, order *Order) (*Order, error) {
	result := db.Create(order)
	if result.Error != nil {
		return nil, result.Error
	}

	return order, nil
}

func (o *Order) FindByID(db *gorm.DB, id string) (*Order, error) {
	var order Order

	err := db.
		Preload("Catalog").
		Preload("Features").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.created_at DESC")
		}).
		Preload("Review").
		Preload("User").
		Model(&Order{}).Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func generateOrderNumber(db *gorm.DB) string {
	now := time.Now()

	var count int64
	db.Model(&Order{}).Count(&count)

	return fmt.Sprintf("%04d/WED/%s/%d", count+1, intToRoman(int(now.Month())), now.Year())
}

func intToRoman(num int) string {
	values := []int{
		1000, 900, 500, 400,
		100, 90, 50, 40,
		10, 9, 5, 4, 1,
	}

	symbols := []string{
		"M", "CM", "D", "CD",
		"C", "XC", "L", "XL",
		"X", "IX", "V", "IV",
		"I"}
	roman := ""
	i := 0

	for num > 0 {
		k := num / values[i]
		for j := 0; j < k; j++ {
			roman += symbols[i]
			num -= values[i]
		}
		i++
	}
	return roman
}

// CanAcceptPayment: cek order masih bisa menerima nominal pembayaran ini,
// tanpa menulis apa pun. Dipakai sebagai gerbang sebelum verifikasi supaya
// pembayaran tidak keburu berstatus verified padahal ordernya menolak.
func (o *Order) CanAcceptPayment(payment *Payment) error {
	if o.Status == consts.OrderStatusCancelled {
		return errors.New("order sudah dibatalkan")
	}

	if payment.Amount.GreaterThan(o.RemainingAmount) {
		return errors.New("nominal pembayaran melebihi sisa tagihan")
	}

	return nil
}

// ApplyPayment: tambahkan nominal pembayaran terverifikasi ke order.
// Menjaga PaidAmount + RemainingAmount == Price dan transisi status.
func (o *Order) ApplyPayment(db *gorm.DB, payment *Payment) error {
	if payment.Status != consts.PaymentStatusVerified {
		return errors.New("hanya pembayaran terverifikasi yang bisa diterapkan ke order")
	}

	if err := o.CanAcceptPayment(payment); err != nil {
		return err
	}

	o.PaidAmount = o.PaidAmount.Add(payment.Amount)
	o.RemainingAmount = o.Price.Sub(o.PaidAmount)

	if payment.PaymentType == consts.PaymentTypeDownPayment {
		o.DownPaymentPaid = true
	}

	if o.Status == consts.OrderStatusPendingPayment {
		o.Status = consts.OrderStatusOngoing
	}

	return db.Model(o).Updates(map[string]interface{}{
		"paid_amount":       o.PaidAmount,
		"remaining_amount":  o.RemainingAmount,
		"down_payment_paid": o.DownPaymentPaid,
		"status":            o.Status,
		"updated_at":        time.Now(),
	}).Error
}

func (o *Order) Cancel(db *gorm.DB, reason string) error {
	if o.Status != consts.OrderStatusPendingPayment && o.Status != consts.OrderStatusOngoing {
		return fmt.Errorf("order berstatus %s tidak bisa dibatalkan", o.Status)
	}

	if reason == "" {
		return errors.New("alasan pembatalan wajib diisi")
	}

	o.Status = consts.OrderStatusCancelled
	o.CancelReason = reason

	return db.Model(o).Updates(map[string]interface{}{
		"status":        o.Status,
		"cancel_reason": o.CancelReason,
		"updated_at":    time.Now(),
	}).Error
}

func (o *Order) Complete(db *gorm.DB) error {
	if o.Status != consts.OrderStatusOngoing {
		return fmt.Errorf("order berstatus %s tidak bisa diselesaikan", o.Status)
	}

	o.Status = consts.OrderStatusCompleted

	return db.Model(o).Updates(map[string]interface{}{
		"status":     o.Status,
		"updated_at": time.Now(),
	}).Error
}

// AddReview: satu review per order, hanya untuk order selesai.
func (o *Order) AddReview(db *gorm.DB, rating int, comment string) (*Review, error) {
	if o.Status != consts.OrderStatusCompleted {
		return nil, errors.New("review hanya untuk order yang sudah selesai")
	}

	if rating < 1 || rating > 5 {
		return nil, errors.New("rating harus 1 sampai 5")
	}

	if comment == "" {
		return nil, errors.New("komentar wajib diisi")
	}

	var existing int64
	db.Model(&Review{}).Where("order_id = ?", o.ID).Count(&existing)
	if existing > 0 {
		return nil, errors.New("order ini sudah punya review")
	}

	review := &Review{
		OrderID: o.ID,
		Rating:  rating,
		Comment: comment,
	}

	if err := db.Create(review).Error; err != nil {
		return nil, err
	}

	return review, nil
}

func (o Order) IsFullyPaid() bool {
	return o.RemainingAmount.LessThanOrEqual(decimal.Zero)
}

// PaidPercentage: persentase terbayar untuk ringkasan pembayaran.
func (o Order) PaidPercentage() float64 {
	if o.Price.IsZero() {
		return 0
	}

	pct, _ := o.PaidAmount.Div(o.Price).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// DiscountAmount: selisih harga deal terhadap harga tertinggi paket.
func (o Order) DiscountAmount() decimal.Decimal {
	if o.Catalog.PriceMax.IsZero() {
		return decimal.Zero
	}

	diff := o.Catalog.PriceMax.Sub(o.Price)
	if diff.IsNegative() {
		return decimal.Zero
	}

	return diff
}

func (o Order) StatusLabel() string {
	return o.Status.Label()
}
