package domain

import "time"

// PaymentMethod enumerates accepted payment methods.
type PaymentMethod string

const (
	PaymentCard      PaymentMethod = "card"
	PaymentCash      PaymentMethod = "cash"
	PaymentInsurance PaymentMethod = "insurance"
)

// Valid reports whether m is accepted.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentInsurance:
		return true
	}
	return false
}

// PaymentStatus enumerates payment outcomes.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records money received from a user.
type Payment struct {
	ID            string
	UserID        string
	AppointmentID *string
	Amount        float64
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
