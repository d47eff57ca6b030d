package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

type departmentBody struct {
	Name string `json:"name"`
}

type pgDepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDepartmentRepository builds the repository over the departments JSONB table.
func NewPostgresDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &pgDepartmentRepository{pool: pool}
}

func (r *pgDepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (body)
        VALUES ($1)
        RETURNING id::text`
	return r.pool.QueryRow(ctx, query, departmentBody{Name: dept.Name}).Scan(&dept.ID)
}

func (r *pgDepartmentRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Department, error) {
	// keyed by canonical form, since uuid.Parse accepts upper case, braces and urn prefixes
	requested := map[string][]string{}
	pgIDs := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		canonical := parsed.String()
		if _, seen := requested[canonical]; !seen {
			pgIDs = append(pgIDs, pgtype.UUID{Bytes: parsed, Valid: true})
		}
		requested[canonical] = append(requested[canonical], id)
	}
	result := map[string]domain.Department{}
	if len(pgIDs) == 0 {
		return result, nil
	}

	const query = `SELECT id::text, body FROM departments WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, pgIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dept domain.Department
			body departmentBody
		)
		if err := rows.Scan(&dept.ID, &body); err != nil {
			return nil, err
		}
		dept.Name = body.Name
		for _, id := range requested[dept.ID] {
			result[id] = dept
		}
	}
	return result, rows.Err()
}

func (r *pgDepartmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
