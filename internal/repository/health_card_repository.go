package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// HealthCardRepository encapsulates health card persistence.
type HealthCardRepository interface {
	Create(ctx context.Context, card *domain.HealthCard) error
	Update(ctx context.Context, card *domain.HealthCard) error
	GetByPatientID(ctx context.Context, patientID string) (*domain.HealthCard, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (*domain.HealthCard, error)
}

type healthCardRepository struct {
	pool *pgxpool.Pool
}

// NewHealthCardRepository instantiates repository.
func NewHealthCardRepository(pool *pgxpool.Pool) HealthCardRepository {
	return &healthCardRepository{pool: pool}
}

const healthCardColumns = `id, patient_id, card_number, qr_code, blood_group, allergies,
        emergency_name, emergency_phone, emergency_relationship, medical_conditions, created_at, updated_at`

func scanHealthCard(row pgx.Row) (*domain.HealthCard, error) {
	var card domain.HealthCard
	var name, phone, relationship *string
	if err := row.Scan(
		&card.ID,
		&card.PatientID,
		&card.CardNumber,
		&card.QRCode,
		&card.BloodGroup,
		&card.Allergies,
		&name,
		&phone,
		&relationship,
		&card.MedicalConditions,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if name != nil || phone != nil || relationship != nil {
		card.EmergencyContact = &domain.EmergencyContact{
			Name:         deref(name),
			Phone:        deref(phone),
			Relationship: deref(relationship),
		}
	}
	return &card, nil
}

func emergencyColumns(contact *domain.EmergencyContact) (name, phone, relationship *string) {
	if contact == nil {
		return nil, nil, nil
	}
	return &contact.Name, &contact.Phone, &contact.Relationship
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *healthCardRepository) Create(ctx context.Context, card *domain.HealthCard) error {
	const query = `
        INSERT INTO health_cards (patient_id, card_number, qr_code, blood_group, allergies,
            emergency_name, emergency_phone, emergency_relationship, medical_conditions)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	name, phone, relationship := emergencyColumns(card.EmergencyContact)
	err := r.pool.QueryRow(ctx, query,
		card.PatientID,
		card.CardNumber,
		card.QRCode,
		card.BloodGroup,
		card.Allergies,
		name,
		phone,
		relationship,
		card.MedicalConditions,
	).Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	return mapWriteError(err)
}

func (r *healthCardRepository) Update(ctx context.Context, card *domain.HealthCard) error {
	const query = `
        UPDATE health_cards SET blood_group=$1, allergies=$2, emergency_name=$3, emergency_phone=$4,
            emergency_relationship=$5, medical_conditions=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	name, phone, relationship := emergencyColumns(card.EmergencyContact)
	return r.pool.QueryRow(ctx, query,
		card.BloodGroup,
		card.Allergies,
		name,
		phone,
		relationship,
		card.MedicalConditions,
		card.ID,
	).Scan(&card.UpdatedAt)
}

func (r *healthCardRepository) GetByPatientID(ctx context.Context, patientID string) (*domain.HealthCard, error) {
	query := `SELECT ` + healthCardColumns + ` FROM health_cards WHERE patient_id=$1`
	return scanHealthCard(r.pool.QueryRow(ctx, query, patientID))
}

func (r *healthCardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.HealthCard, error) {
	query := `SELECT ` + healthCardColumns + ` FROM health_cards WHERE card_number=$1`
	return scanHealthCard(r.pool.QueryRow(ctx, query, cardNumber))
}
