package models

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// Transaction records one mobile-money charge attempt. Phone and amount
// are immutable after creation; status makes exactly one terminal
// transition out of PENDING.
type Transaction struct {
	CheckoutRequestID string            `gorm:"primaryKey" json:"checkoutRequestId"`
	PhoneNumber       string            `gorm:"not null" json:"phoneNumber"`
	Amount            int               `gorm:"not null" json:"amount"`
	Status            TransactionStatus `gorm:"type:varchar(12);not null;default:'PENDING'" json:"status"`
	Date              time.Time         `json:"date"`
}
