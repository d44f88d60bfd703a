package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// PrescriptionRepository encapsulates prescription persistence.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *domain.Prescription) error
	List(ctx context.Context, filter ClinicalFilter) ([]domain.Prescription, error)
	Count(ctx context.Context) (int64, error)
}

type prescriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPrescriptionRepository instantiates repository.
func NewPrescriptionRepository(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepository{pool: pool}
}

func (r *prescriptionRepository) Create(ctx context.Context, p *domain.Prescription) error {
	const query = `
        INSERT INTO prescriptions (patient_id, doctor_id, medicine_id, medicine_name, dosage, frequency,
            duration, instructions, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		p.PatientID,
		p.DoctorID,
		p.MedicineID,
		p.MedicineName,
		p.Dosage,
		p.Frequency,
		p.Duration,
		p.Instructions,
		p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *prescriptionRepository) List(ctx context.Context, filter ClinicalFilter) ([]domain.Prescription, error) {
	where, args := filter.where()
	query := `SELECT id, patient_id, doctor_id, medicine_id, medicine_name, dosage, frequency, duration,
                     instructions, status, created_at, updated_at
              FROM prescriptions` + where

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Prescription
	for rows.Next() {
		var p domain.Prescription
		if err := rows.Scan(
			&p.ID,
			&p.PatientID,
			&p.DoctorID,
			&p.MedicineID,
			&p.MedicineName,
			&p.Dosage,
			&p.Frequency,
			&p.Duration,
			&p.Instructions,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *prescriptionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prescriptions`).Scan(&count)
	return count, err
}
