package memory

import (
	"context"
	"sync"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

// PaymentRepository appends payments in creation order.
type PaymentRepository struct {
	mu    sync.RWMutex
	clock *clock
	items []domain.Payment
}

func (r *PaymentRepository) Create(_ context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if p.TransactionID != "" && existing.TransactionID == p.TransactionID {
			return repository.ErrDuplicate
		}
	}
	now := r.clock.tick()
	p.ID = newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items = append(r.items, *p)
	return nil
}

func (r *PaymentRepository) ListByUser(_ context.Context, userID *string) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Payment
	for i := len(r.items) - 1; i >= 0; i-- {
		p := r.items[i]
		if userID != nil && p.UserID != *userID {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// HealthCardRepository keeps one card per patient with unique card numbers.
type HealthCardRepository struct {
	mu    sync.RWMutex
	clock *clock
	items map[string]domain.HealthCard
}

func (r *HealthCardRepository) Create(_ context.Context, card *domain.HealthCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.PatientID == card.PatientID || existing.CardNumber == card.CardNumber {
			return repository.ErrDuplicate
		}
	}
	now := r.clock.tick()
	card.ID = newID()
	card.CreatedAt = now
	card.UpdatedAt = now
	r.items[card.ID] = *card
	return nil
}

func (r *HealthCardRepository) Update(_ context.Context, card *domain.HealthCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[card.ID]
	if !ok {
		return repository.ErrNotFound
	}
	card.PatientID = existing.PatientID
	card.CardNumber = existing.CardNumber
	card.QRCode = existing.QRCode
	card.CreatedAt = existing.CreatedAt
	card.UpdatedAt = r.clock.tick()
	r.items[card.ID] = *card
	return nil
}

func (r *HealthCardRepository) GetByPatientID(_ context.Context, patientID string) (*domain.HealthCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, card := range r.items {
		if card.PatientID == patientID {
			return &card, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *HealthCardRepository) GetByCardNumber(_ context.Context, cardNumber string) (*domain.HealthCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, card := range r.items {
		if card.CardNumber == cardNumber {
			return &card, nil
		}
	}
	return nil, repository.ErrNotFound
}
