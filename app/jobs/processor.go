// Eksekusi task yang diambil worker dari queue.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type PaymentProcessor struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewPaymentProcessor(db *gorm.DB, rdb *redis.Client) *PaymentProcessor {
	return &PaymentProcessor{db: db, rdb: rdb}
}

func (p *PaymentProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload PaymentExpirePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	job := NewPaymentExpireJob(payload.PaymentID, p.db, p.rdb)
	return job.Handle(ctx)
}
