package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

// MedicineFilter captures catalog search parameters.
type MedicineFilter struct {
	Search   *string
	Category *string
}

// MedicineRepository encapsulates medicine inventory persistence.
type MedicineRepository interface {
	Create(ctx context.Context, medicine *domain.Medicine) error
	Update(ctx context.Context, medicine *domain.Medicine) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Medicine, error)
	GetByName(ctx context.Context, name string) (*domain.Medicine, error)
	List(ctx context.Context, filter MedicineFilter) ([]domain.Medicine, error)
	Count(ctx context.Context) (int64, error)
}

type medicineRepository struct {
	pool *pgxpool.Pool
}

// NewMedicineRepository instantiates repository.
func NewMedicineRepository(pool *pgxpool.Pool) MedicineRepository {
	return &medicineRepository{pool: pool}
}

const medicineColumns = `id, name, generic_name, manufacturer, category, price, stock, description,
        side_effects, created_at, updated_at`

func scanMedicine(row pgx.Row) (*domain.Medicine, error) {
	var m domain.Medicine
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.GenericName,
		&m.Manufacturer,
		&m.Category,
		&m.Price,
		&m.Stock,
		&m.Description,
		&m.SideEffects,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medicineRepository) Create(ctx context.Context, m *domain.Medicine) error {
	const query = `
        INSERT INTO medicines (name, generic_name, manufacturer, category, price, stock, description, side_effects)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		m.Name,
		m.GenericName,
		m.Manufacturer,
		m.Category,
		m.Price,
		m.Stock,
		m.Description,
		m.SideEffects,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return mapWriteError(err)
}

func (r *medicineRepository) Update(ctx context.Context, m *domain.Medicine) error {
	const query = `
        UPDATE medicines SET name=$1, generic_name=$2, manufacturer=$3, category=$4, price=$5, stock=$6,
            description=$7, side_effects=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		m.Name,
		m.GenericName,
		m.Manufacturer,
		m.Category,
		m.Price,
		m.Stock,
		m.Description,
		m.SideEffects,
		m.ID,
	).Scan(&m.UpdatedAt)
	return mapWriteError(err)
}

func (r *medicineRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM medicines WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicineRepository) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id=$1`
	return scanMedicine(r.pool.QueryRow(ctx, query, id))
}

func (r *medicineRepository) GetByName(ctx context.Context, name string) (*domain.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE name=$1`
	return scanMedicine(r.pool.QueryRow(ctx, query, name))
}

func (r *medicineRepository) List(ctx context.Context, filter MedicineFilter) ([]domain.Medicine, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR generic_name ILIKE $%d)", idx, idx))
	}
	if filter.Category != nil && *filter.Category != "" {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}

	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

func (r *medicineRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&count)
	return count, err
}
