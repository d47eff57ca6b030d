package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

var (
	seedDepartmentNames = []string{"Engineering", "Sales", "Marketing", "Finance", "Operations", "Support"}
	seedFirstNames      = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Ken", "Linus", "Margaret"}
	seedLastNames       = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Thompson", "Torvalds", "Hamilton"}
)

// SeedResult reports what a seed run created.
type SeedResult struct {
	Departments []domain.Department
	Employees   int
}

// Seeder fills and empties the store with sample data.
type Seeder struct {
	departments repository.DepartmentRepository
	employees   *EmployeeService
	logger      *zap.Logger
}

// NewSeeder constructs the seeder.
func NewSeeder(departments repository.DepartmentRepository, employees *EmployeeService, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{departments: departments, employees: employees, logger: logger}
}

// Seed creates numDepartments departments and numEmployees employees spread
// across them round-robin. With no departments the employees get an empty reference.
func (s *Seeder) Seed(ctx context.Context, numDepartments, numEmployees int) (*SeedResult, error) {
	result := &SeedResult{}
	for i := 0; i < numDepartments; i++ {
		dept := &domain.Department{Name: departmentName(i)}
		if err := s.departments.Create(ctx, dept); err != nil {
			return result, apperrors.MapError(err)
		}
		result.Departments = append(result.Departments, *dept)
	}
	s.logger.Info("departments seeded", zap.Int("count", len(result.Departments)))

	for i := 0; i < numEmployees; i++ {
		input := EmployeeInput{
			FirstName: seedFirstNames[i%len(seedFirstNames)],
			LastName:  seedLastNames[(i/len(seedFirstNames))%len(seedLastNames)],
		}
		if n := len(result.Departments); n > 0 {
			input.Department = result.Departments[i%n].ID
		}
		if _, err := s.employees.Create(ctx, input); err != nil {
			return result, err
		}
		result.Employees++
	}
	s.logger.Info("employees seeded", zap.Int("count", result.Employees))
	return result, nil
}

// Clear removes every employee and department and returns how many of each went.
func (s *Seeder) Clear(ctx context.Context) (employees, departments int64, err error) {
	employees, err = s.employees.ClearEmployees(ctx)
	if err != nil {
		return 0, 0, err
	}
	departments, err = s.departments.DeleteAll(ctx)
	if err != nil {
		return employees, 0, apperrors.MapError(err)
	}
	s.logger.Info("store cleared", zap.Int64("employees", employees), zap.Int64("departments", departments))
	return employees, departments, nil
}

func departmentName(i int) string {
	if i < len(seedDepartmentNames) {
		return seedDepartmentNames[i]
	}
	return fmt.Sprintf("Department #%d", i+1)
}
