package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// AppointmentFilter captures listing parameters. Newest first when RecentFirst
// is set, otherwise by appointment date.
type AppointmentFilter struct {
	PatientID   *string
	DoctorID    *string
	Status      *domain.AppointmentStatus
	RecentFirst bool
	Limit       int
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	Update(ctx context.Context, appt *domain.Appointment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// MarkPaid flags the appointment as paid by the given payment.
	MarkPaid(ctx context.Context, id, paymentID string) error
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, doctor_id, date, time, status, reason, notes,
        payment_status, payment_id, created_at, updated_at`

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.Date,
		&appt.Time,
		&appt.Status,
		&appt.Reason,
		&appt.Notes,
		&appt.PaymentStatus,
		&appt.PaymentID,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, date, time, status, reason, notes, payment_status, payment_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		appt.PatientID,
		appt.DoctorID,
		appt.Date,
		appt.Time,
		appt.Status,
		appt.Reason,
		appt.Notes,
		appt.PaymentStatus,
		appt.PaymentID,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        UPDATE appointments SET date=$1, time=$2, status=$3, reason=$4, notes=$5,
            payment_status=$6, payment_id=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		appt.Date,
		appt.Time,
		appt.Status,
		appt.Reason,
		appt.Notes,
		appt.PaymentStatus,
		appt.PaymentID,
		appt.ID,
	).Scan(&appt.UpdatedAt)
}

func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1`
	return scanAppointment(r.pool.QueryRow(ctx, query, id))
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id=$%d", len(args)))
	}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		clauses = append(clauses, fmt.Sprintf("doctor_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` + strings.Join(clauses, " AND ")
	if filter.RecentFirst {
		query += " ORDER BY created_at DESC"
	} else {
		query += " ORDER BY date DESC"
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *appt)
	}
	return result, rows.Err()
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&count)
	return count, err
}

func (r *appointmentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return groupCount(ctx, r.pool, `SELECT status, COUNT(*) FROM appointments GROUP BY status`)
}

func (r *appointmentRepository) MarkPaid(ctx context.Context, id, paymentID string) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE appointments SET payment_status=$1, payment_id=$2, updated_at=NOW()
        WHERE id=$3`, domain.PaymentStatePaid, paymentID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
