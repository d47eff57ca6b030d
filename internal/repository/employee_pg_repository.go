package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// employeeBody is the JSONB document stored per employee row.
type employeeBody struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

type pgEmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEmployeeRepository builds the repository over the employees JSONB table.
func NewPostgresEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &pgEmployeeRepository{pool: pool}
}

func (r *pgEmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (body)
        VALUES ($1)
        RETURNING id::text`
	return r.pool.QueryRow(ctx, query, bodyOf(emp)).Scan(&emp.ID)
}

func (r *pgEmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	id, err := parseUUID(emp.ID)
	if err != nil {
		return err
	}
	const query = `UPDATE employees SET body=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, bodyOf(emp), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", emp.ID, errorutil.ErrNotFound)
	}
	return nil
}

func (r *pgEmployeeRepository) Delete(ctx context.Context, id string) error {
	pgID, err := parseUUID(id)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, pgID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, errorutil.ErrNotFound)
	}
	return nil
}

func (r *pgEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	pgID, err := parseUUID(id)
	if err != nil {
		return nil, err
	}
	const query = `SELECT id::text, body FROM employees WHERE id=$1`
	return scanEmployee(r.pool.QueryRow(ctx, query, pgID))
}

func (r *pgEmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	return count, err
}

func (r *pgEmployeeRepository) GetAt(ctx context.Context, offset int64) (*domain.Employee, error) {
	const query = `
        SELECT id::text, body FROM employees
        ORDER BY created_at, id
        OFFSET $1 LIMIT 1`
	return scanEmployee(r.pool.QueryRow(ctx, query, offset))
}

func (r *pgEmployeeRepository) Find(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	where, args := employeeWhere(filter, 1)
	query := `SELECT id::text, body FROM employees` + where + ` ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Employee
	for rows.Next() {
		var (
			emp  domain.Employee
			body employeeBody
		)
		if err := rows.Scan(&emp.ID, &body); err != nil {
			return nil, err
		}
		emp.FirstName, emp.LastName, emp.DepartmentID = body.FirstName, body.LastName, body.Department
		result = append(result, emp)
	}
	return result, rows.Err()
}

func (r *pgEmployeeRepository) FindOne(ctx context.Context, filter domain.EmployeeFilter) (*domain.Employee, error) {
	where, args := employeeWhere(filter, 1)
	query := `SELECT id::text, body FROM employees` + where + ` ORDER BY created_at, id LIMIT 1`
	return scanEmployee(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgEmployeeRepository) UpdateMany(ctx context.Context, filter domain.EmployeeFilter, patch domain.EmployeePatch) (int64, error) {
	set := employeePatchMap(patch)
	if len(set) == 0 {
		return 0, nil
	}
	where, args := employeeWhere(filter, 2)
	query := `UPDATE employees SET body = body || $1::jsonb` + where
	cmd, err := r.pool.Exec(ctx, query, append([]any{set}, args...)...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *pgEmployeeRepository) DeleteMany(ctx context.Context, filter domain.EmployeeFilter) (int64, error) {
	where, args := employeeWhere(filter, 1)
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees`+where, args...)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func bodyOf(emp *domain.Employee) employeeBody {
	return employeeBody{FirstName: emp.FirstName, LastName: emp.LastName, Department: emp.DepartmentID}
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		emp  domain.Employee
		body employeeBody
	)
	if err := row.Scan(&emp.ID, &body); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", errorutil.ErrNotFound)
		}
		return nil, err
	}
	emp.FirstName, emp.LastName, emp.DepartmentID = body.FirstName, body.LastName, body.Department
	return &emp, nil
}

// employeeWhere renders filter as a WHERE clause whose placeholders start at $first.
func employeeWhere(filter domain.EmployeeFilter, first int) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(field string, val *string) {
		if val == nil {
			return
		}
		args = append(args, *val)
		conds = append(conds, "body->>'"+field+"' = $"+strconv.Itoa(first+len(args)-1))
	}
	add("firstName", filter.FirstName)
	add("lastName", filter.LastName)
	add("department", filter.DepartmentID)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func employeePatchMap(patch domain.EmployeePatch) map[string]string {
	set := map[string]string{}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.DepartmentID != nil {
		set["department"] = *patch.DepartmentID
	}
	return set
}

func parseUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("malformed id %q: %w", id, errorutil.ErrNotFound)
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
