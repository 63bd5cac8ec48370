package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hyderoo/dewa-wo-sub001/app/consts"
	"github.com/hyderoo/dewa-wo-sub001/app/models"
)

// PaymentExpireJob: tandai pembayaran pending yang sudah lewat batas waktu
// sebagai expired. Dijadwalkan saat pembayaran dibuat (ProcessIn sampai
// expiry_time), jadi tidak ada polling berkala.
type PaymentExpireJob struct {
	PaymentID string
	db        *gorm.DB
	rdb       *redis.Client
}

func NewPaymentExpireJob(paymentID string, db *gorm.DB, rdb *redis.Client) *PaymentExpireJob {
	return &PaymentExpireJob{PaymentID: paymentID, db: db, rdb: rdb}
}

func (j *PaymentExpireJob) Handle(ctx context.Context) error {
	var payment models.Payment
	if err := j.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", j.PaymentID).
		First(&payment).Error; err != nil {
		slog.Error("Payment tidak ditemukan", "payment_id", j.PaymentID, "err", err)
		return nil // jangan retry kalau datanya memang tidak ada
	}

	if payment.Status != consts.PaymentStatusPending {
		return nil
	}

	// Lock via redis supaya worker lain tidak mengerjakan payment yang sama
	lockKey := fmt.Sprintf("payment_expire_%s", payment.ID)
	ok, err := j.rdb.SetNX(ctx, lockKey, "1", 60*time.Second).Result()
	if err != nil || !ok {
		slog.Warn("Lock tidak bisa didapat", "payment_id", payment.ID)
		return nil
	}
	defer j.rdb.Del(ctx, lockKey)

	now := time.Now()
	if !payment.IsExpiredAt(now) {
		// Task datang terlalu cepat, biarkan asynq mencoba lagi
		return fmt.Errorf("payment %s belum kedaluwarsa", payment.ID)
	}

	if err := payment.MarkExpired(j.db.WithContext(ctx)); err != nil {
		slog.Error("Gagal menandai expired", "payment_id", payment.ID, "err", err)
		return err
	}

	slog.Info("Payment expired", "payment_id", payment.ID, "order_id", payment.OrderID)
	return nil
}
