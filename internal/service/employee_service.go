package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// EmployeeService coordinates employee reads and writes.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	resolver   *DepartmentResolver
	dispatcher events.Dispatcher
	logger     *zap.Logger
	intn       func(n int64) int64
}

// EmployeeDependencies bundles collaborators for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	// Intn picks the offset for Random; defaults to rand.Int63n.
	Intn func(n int64) int64
}

// EmployeeInput describes the writable employee fields.
type EmployeeInput struct {
	FirstName  string
	LastName   string
	Department string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	intn := deps.Intn
	if intn == nil {
		intn = rand.Int63n
	}
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		resolver:   NewDepartmentResolver(deps.DepartmentRepo),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		intn:       intn,
	}
}

// List returns every employee with its department resolved.
func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeView, error) {
	emps, err := s.employees.Find(ctx, domain.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	views, err := s.resolver.Resolve(ctx, emps)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return views, nil
}

// Random returns a uniformly chosen employee. Count and fetch are separate reads,
// so a record removed in between yields not found.
func (s *EmployeeService) Random(ctx context.Context) (*domain.EmployeeView, error) {
	count, err := s.employees.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if count == 0 {
		return nil, apperrors.NewNotFound(nil)
	}
	emp, err := s.employees.GetAt(ctx, s.intn(count))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.resolve(ctx, *emp)
}

// GetByID returns one employee with its department resolved.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*domain.EmployeeView, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.resolve(ctx, *emp)
}

// Create stores a new employee. The department reference is not checked.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	emp := &domain.Employee{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DepartmentID: input.Department,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.EventEmployeeCreated, *emp)
	return emp, nil
}

// Update overwrites all writable fields of an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id string, input EmployeeInput) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	emp.FirstName = input.FirstName
	emp.LastName = input.LastName
	emp.DepartmentID = input.Department
	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.EventEmployeeUpdated, *emp)
	return emp, nil
}

// Delete removes an employee and returns the record as it was before removal.
func (s *EmployeeService) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.employees.Delete(ctx, emp.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.EventEmployeeDeleted, *emp)
	return emp, nil
}

// FindOne returns the first employee matching filter.
func (s *EmployeeService) FindOne(ctx context.Context, filter domain.EmployeeFilter) (*domain.Employee, error) {
	emp, err := s.employees.FindOne(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// Find returns every employee matching filter without resolving departments.
func (s *EmployeeService) Find(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	emps, err := s.employees.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return emps, nil
}

// UpdateMany applies patch to every employee matching filter.
func (s *EmployeeService) UpdateMany(ctx context.Context, filter domain.EmployeeFilter, patch domain.EmployeePatch) (int64, error) {
	n, err := s.employees.UpdateMany(ctx, filter, patch)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return n, nil
}

// DeleteMany removes every employee matching filter.
func (s *EmployeeService) DeleteMany(ctx context.Context, filter domain.EmployeeFilter) (int64, error) {
	n, err := s.employees.DeleteMany(ctx, filter)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return n, nil
}

// ClearEmployees removes every employee.
func (s *EmployeeService) ClearEmployees(ctx context.Context) (int64, error) {
	return s.DeleteMany(ctx, domain.EmployeeFilter{})
}

func (s *EmployeeService) resolve(ctx context.Context, emp domain.Employee) (*domain.EmployeeView, error) {
	view, err := s.resolver.ResolveOne(ctx, emp)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return view, nil
}

// publishEvent notifies subscribers. Failures are logged and never fail the write.
func (s *EmployeeService) publishEvent(ctx context.Context, eventType events.EventType, emp domain.Employee) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, events.NewEmployeeEvent(eventType, emp)); err != nil {
		s.logger.Warn("event publication failed",
			zap.String("event_type", string(eventType)),
			zap.String("employee_id", emp.ID),
			zap.Error(err))
	}
}
