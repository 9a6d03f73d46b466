// Package payout abstracts the value-transfer primitive. The engine only
// needs "pay exactly this amount to this recipient, or fail": settlement
// treats a returned error as "no value moved" and unwinds.
package payout

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Provider interface {
	Transfer(ctx context.Context, recipient string, amount int64, reference string) error
}

// Record is one completed transfer as seen by the Recorder provider.
type Record struct {
	Recipient   string    `json:"recipient"`
	Amount      int64     `json:"amount"`
	Reference   string    `json:"reference"`
	Transferred time.Time `json:"transferred"`
}

// Recorder is an in-process Provider that records every transfer. It stands
// in for the external payment rail in local deployments and tests.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Transfer(ctx context.Context, recipient string, amount int64, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, Record{
		Recipient:   recipient,
		Amount:      amount,
		Reference:   reference,
		Transferred: time.Now(),
	})
	slog.Info("payout transferred", "recipient", recipient, "amount", amount, "reference", reference)
	return nil
}

// Records returns a copy of all transfers in order.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}
