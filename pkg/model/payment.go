package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type PaymentID string

// NewPaymentID generates a new unique PaymentID
func NewPaymentID() PaymentID {
	return PaymentID(uuid.New().String())
}

// PaymentRecord is a completed bill payment. Immutable after creation;
// PaidAt is stamped at commit time.
type PaymentRecord struct {
	ID      PaymentID `json:"id"`
	Biller  string    `json:"biller"`
	Amount  float64   `json:"amount"`
	DueDate string    `json:"dueDate,omitempty"`
	PaidAt  time.Time `json:"paidAt"`
}

// NormalizePayments drops nil entries and sorts descending by payment date,
// most recent first.
func NormalizePayments(payments []*PaymentRecord) []*PaymentRecord {
	kept := make([]*PaymentRecord, 0, len(payments))
	for _, p := range payments {
		if p == nil {
			continue
		}
		kept = append(kept, p)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].PaidAt.After(kept[j].PaidAt)
	})
	return kept
}
