package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// ClinicalFilter scopes medical records and prescriptions to a patient and/or doctor.
type ClinicalFilter struct {
	PatientID *string
	DoctorID  *string
	Limit     int
}

func (f ClinicalFilter) where() (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id=$%d", len(args)))
	}
	if f.DoctorID != nil {
		args = append(args, *f.DoctorID)
		clauses = append(clauses, fmt.Sprintf("doctor_id=$%d", len(args)))
	}
	query := " WHERE " + strings.Join(clauses, " AND ") + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args
}

// MedicalRecordRepository encapsulates medical record persistence.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	List(ctx context.Context, filter ClinicalFilter) ([]domain.MedicalRecord, error)
	Count(ctx context.Context) (int64, error)
}

type medicalRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalRecordRepository instantiates repository.
func NewMedicalRecordRepository(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepository{pool: pool}
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        INSERT INTO medical_records (patient_id, doctor_id, appointment_id, diagnosis, symptoms, treatment,
            prescription_ids, lab_results, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		record.PatientID,
		record.DoctorID,
		record.AppointmentID,
		record.Diagnosis,
		record.Symptoms,
		record.Treatment,
		record.PrescriptionIDs,
		record.LabResults,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

func (r *medicalRecordRepository) List(ctx context.Context, filter ClinicalFilter) ([]domain.MedicalRecord, error) {
	where, args := filter.where()
	query := `SELECT id, patient_id, doctor_id, appointment_id, diagnosis, symptoms, treatment,
                     prescription_ids, lab_results, notes, created_at, updated_at
              FROM medical_records` + where

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MedicalRecord
	for rows.Next() {
		var record domain.MedicalRecord
		if err := rows.Scan(
			&record.ID,
			&record.PatientID,
			&record.DoctorID,
			&record.AppointmentID,
			&record.Diagnosis,
			&record.Symptoms,
			&record.Treatment,
			&record.PrescriptionIDs,
			&record.LabResults,
			&record.Notes,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *medicalRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medical_records`).Scan(&count)
	return count, err
}
