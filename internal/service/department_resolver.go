package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// DepartmentResolver expands employee department references into department records.
type DepartmentResolver struct {
	departments repository.DepartmentRepository
}

// NewDepartmentResolver constructs the resolver.
func NewDepartmentResolver(departments repository.DepartmentRepository) *DepartmentResolver {
	return &DepartmentResolver{departments: departments}
}

// Resolve looks up every referenced department in one batch. Employees whose
// reference does not match a department get a nil Department.
func (r *DepartmentResolver) Resolve(ctx context.Context, employees []domain.Employee) ([]domain.EmployeeView, error) {
	views := make([]domain.EmployeeView, 0, len(employees))
	if len(employees) == 0 {
		return views, nil
	}

	ids := lo.Uniq(lo.FilterMap(employees, func(e domain.Employee, _ int) (string, bool) {
		return e.DepartmentID, e.DepartmentID != ""
	}))

	// keyed by the reference as stored, so any spelling the store accepts resolves
	var byRef map[string]domain.Department
	if len(ids) > 0 {
		var err error
		if byRef, err = r.departments.GetByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	for _, emp := range employees {
		view := domain.EmployeeView{Employee: emp}
		if dept, ok := byRef[emp.DepartmentID]; ok {
			view.Department = &dept
		}
		views = append(views, view)
	}
	return views, nil
}

// ResolveOne resolves a single employee.
func (r *DepartmentResolver) ResolveOne(ctx context.Context, emp domain.Employee) (*domain.EmployeeView, error) {
	views, err := r.Resolve(ctx, []domain.Employee{emp})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
