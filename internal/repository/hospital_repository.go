package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// HospitalRepository encapsulates hospital persistence.
type HospitalRepository interface {
	Create(ctx context.Context, hospital *domain.Hospital) error
	GetByRegistration(ctx context.Context, registrationNumber string) (*domain.Hospital, error)
	ListByStatus(ctx context.Context, status domain.HospitalStatus) ([]domain.Hospital, error)
}

type hospitalRepository struct {
	pool *pgxpool.Pool
}

// NewHospitalRepository instantiates repository.
func NewHospitalRepository(pool *pgxpool.Pool) HospitalRepository {
	return &hospitalRepository{pool: pool}
}

const hospitalColumns = `id, name, address, phone, email, registration_number, type, departments,
        facilities, opens_at, closes_at, status, created_at, updated_at`

func scanHospital(row pgx.Row) (*domain.Hospital, error) {
	var h domain.Hospital
	if err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Address,
		&h.Phone,
		&h.Email,
		&h.RegistrationNumber,
		&h.Type,
		&h.Departments,
		&h.Facilities,
		&h.OperatingHours.Open,
		&h.OperatingHours.Close,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepository) Create(ctx context.Context, h *domain.Hospital) error {
	const query = `
        INSERT INTO hospitals (name, address, phone, email, registration_number, type, departments,
            facilities, opens_at, closes_at, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		h.Name,
		h.Address,
		h.Phone,
		h.Email,
		h.RegistrationNumber,
		h.Type,
		h.Departments,
		h.Facilities,
		h.OperatingHours.Open,
		h.OperatingHours.Close,
		h.Status,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	return mapWriteError(err)
}

func (r *hospitalRepository) GetByRegistration(ctx context.Context, registrationNumber string) (*domain.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE registration_number=$1`
	return scanHospital(r.pool.QueryRow(ctx, query, registrationNumber))
}

func (r *hospitalRepository) ListByStatus(ctx context.Context, status domain.HospitalStatus) ([]domain.Hospital, error) {
	query := `SELECT ` + hospitalColumns + ` FROM hospitals WHERE status=$1 ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Hospital
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *h)
	}
	return result, rows.Err()
}
