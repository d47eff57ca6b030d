//go:generate go run go.uber.org/mock/mockgen -source=employee_repository.go -destination=../mocks/mock_employee_repository.go -package=mocks

package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeRepository manages employee documents.
//
// Lookups by id return an error wrapping errorutil.ErrNotFound when the id is
// unknown or not a valid identifier for the backing store.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	// Update overwrites first name, last name and department of an existing employee.
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	Count(ctx context.Context) (int64, error)
	// GetAt returns the employee at offset in primary-key order.
	GetAt(ctx context.Context, offset int64) (*domain.Employee, error)
	Find(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	FindOne(ctx context.Context, filter domain.EmployeeFilter) (*domain.Employee, error)
	UpdateMany(ctx context.Context, filter domain.EmployeeFilter, patch domain.EmployeePatch) (int64, error)
	DeleteMany(ctx context.Context, filter domain.EmployeeFilter) (int64, error)
}
