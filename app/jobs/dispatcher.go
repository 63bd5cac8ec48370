// Pembuatan task untuk dikirim ke queue.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskPaymentExpire = "payment:expire"

type PaymentExpirePayload struct {
	PaymentID string `json:"payment_id"`
}

func NewPaymentExpireTask(paymentID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PaymentExpirePayload{PaymentID: paymentID})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskPaymentExpire, payload), nil
}
