package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// PaymentRepository encapsulates payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	// ListByUser returns payments for userID, or every payment when userID is nil.
	ListByUser(ctx context.Context, userID *string) ([]domain.Payment, error)
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	const query = `
        INSERT INTO payments (user_id, appointment_id, amount, method, status, transaction_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.AppointmentID,
		p.Amount,
		p.Method,
		p.Status,
		p.TransactionID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapWriteError(err)
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID *string) ([]domain.Payment, error) {
	query := `SELECT id, user_id, appointment_id, amount, method, status, transaction_id, created_at, updated_at
              FROM payments`
	args := []any{}
	if userID != nil {
		query += ` WHERE user_id=$1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.AppointmentID,
			&p.Amount,
			&p.Method,
			&p.Status,
			&p.TransactionID,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
