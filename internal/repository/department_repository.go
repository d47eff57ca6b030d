//go:generate go run go.uber.org/mock/mockgen -source=department_repository.go -destination=../mocks/mock_department_repository.go -package=mocks

package repository

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRepository reads and seeds department documents.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	// GetByIDs returns the departments matching ids, keyed by the id string as
	// requested. Any spelling the store accepts for an id (letter case, braces)
	// is its own key. Unknown or malformed ids have no entry.
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Department, error)
	DeleteAll(ctx context.Context) (int64, error)
}
