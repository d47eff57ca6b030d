package service

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/mocks"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

type employeeFixture struct {
	employees   *mocks.MockEmployeeRepository
	departments *mocks.MockDepartmentRepository
	dispatcher  events.Dispatcher
	published   []events.Event
	svc         *EmployeeService
}

func newEmployeeFixture(t *testing.T, intn func(int64) int64) *employeeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &employeeFixture{
		employees:   mocks.NewMockEmployeeRepository(ctrl),
		departments: mocks.NewMockDepartmentRepository(ctrl),
		dispatcher:  events.NewInMemoryDispatcher(),
	}
	for _, eventType := range events.AllEmployeeEvents {
		f.dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	f.svc = NewEmployeeService(EmployeeDependencies{
		EmployeeRepo:   f.employees,
		DepartmentRepo: f.departments,
		Dispatcher:     f.dispatcher,
		Intn:           intn,
	})
	return f
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	sales := domain.Department{ID: "d1", Name: "Sales"}

	t.Run("resolves departments in one batch", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)

		emps := []domain.Employee{
			{ID: "e1", FirstName: "A", LastName: "B", DepartmentID: "d1"},
			{ID: "e2", FirstName: "C", LastName: "D", DepartmentID: "d1"},
			{ID: "e3", FirstName: "E", LastName: "F", DepartmentID: "gone"},
		}
		f.employees.EXPECT().Find(gomock.Any(), domain.EmployeeFilter{}).Return(emps, nil)
		f.departments.EXPECT().GetByIDs(gomock.Any(), []string{"d1", "gone"}).Return(map[string]domain.Department{"d1": sales}, nil).Times(1)

		views, err := f.svc.List(ctx)
		req.NoError(err)
		req.Len(views, 3)
		req.Equal(&sales, views[0].Department)
		req.Equal(&sales, views[1].Department)
		req.Nil(views[2].Department)
		req.Equal("e3", views[2].ID)
	})

	t.Run("empty store skips the department lookup", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)

		views, err := f.svc.List(ctx)
		req.NoError(err)
		req.NotNil(views)
		req.Empty(views)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := f.svc.List(ctx)
		requireCode(t, err, apperrors.CodeStorageFailure)
	})

	t.Run("department lookup failure", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]domain.Employee{{ID: "e1", DepartmentID: "d1"}}, nil)
		f.departments.EXPECT().GetByIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.svc.List(ctx)
		requireCode(t, err, apperrors.CodeStorageFailure)
	})
}

func TestEmployeeService_Random(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store is not found", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Count(gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Random(ctx)
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("fetches the drawn offset", func(t *testing.T) {
		req := require.New(t)
		var bound int64
		f := newEmployeeFixture(t, func(n int64) int64 {
			bound = n
			return 2
		})
		emp := &domain.Employee{ID: "e3", FirstName: "E", DepartmentID: "d9"}
		f.employees.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
		f.employees.EXPECT().GetAt(gomock.Any(), int64(2)).Return(emp, nil)
		f.departments.EXPECT().GetByIDs(gomock.Any(), []string{"d9"}).Return(nil, nil)

		view, err := f.svc.Random(ctx)
		req.NoError(err)
		req.EqualValues(3, bound)
		req.Equal("e3", view.ID)
		req.Nil(view.Department)
	})

	t.Run("record vanished after count", func(t *testing.T) {
		f := newEmployeeFixture(t, func(int64) int64 { return 0 })
		f.employees.EXPECT().Count(gomock.Any()).Return(int64(1), nil)
		f.employees.EXPECT().GetAt(gomock.Any(), int64(0)).Return(nil, apperrors.ErrNotFound)

		_, err := f.svc.Random(ctx)
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("default source stays in range", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		for i := 0; i < 50; i++ {
			require.Less(t, f.svc.intn(3), int64(3))
		}
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&domain.Employee{ID: "e1", DepartmentID: "d1"}, nil)
		f.departments.EXPECT().GetByIDs(gomock.Any(), []string{"d1"}).Return(map[string]domain.Department{"d1": {ID: "d1", Name: "Sales"}}, nil)

		view, err := f.svc.GetByID(ctx, "e1")
		req.NoError(err)
		req.Equal("Sales", view.Department.Name)
	})

	t.Run("missing", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, apperrors.ErrNotFound)

		_, err := f.svc.GetByID(ctx, "nope")
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("non-canonical reference resolves to its department", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		const ref = "6AD201039BF8DFE131D2D2BE"
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&domain.Employee{ID: "e1", DepartmentID: ref}, nil)
		f.departments.EXPECT().GetByIDs(gomock.Any(), []string{ref}).
			Return(map[string]domain.Department{ref: {ID: "6ad201039bf8dfe131d2d2be", Name: "Sales"}}, nil)

		view, err := f.svc.GetByID(ctx, "e1")
		req.NoError(err)
		req.NotNil(view.Department)
		req.Equal("6ad201039bf8dfe131d2d2be", view.Department.ID)
		req.Equal("Sales", view.Department.Name)
	})

	t.Run("empty department reference", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&domain.Employee{ID: "e1"}, nil)

		view, err := f.svc.GetByID(ctx, "e1")
		req.NoError(err)
		req.Nil(view.Department)
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the fields and publishes", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Create(gomock.Any(), &domain.Employee{FirstName: "A", LastName: "B", DepartmentID: "D"}).
			DoAndReturn(func(_ context.Context, emp *domain.Employee) error {
				emp.ID = "new"
				return nil
			})

		emp, err := f.svc.Create(ctx, EmployeeInput{FirstName: "A", LastName: "B", Department: "D"})
		req.NoError(err)
		req.Equal(domain.Employee{ID: "new", FirstName: "A", LastName: "B", DepartmentID: "D"}, *emp)
		req.Len(f.published, 1)
		req.Equal(events.EventEmployeeCreated, f.published[0].Type)
		req.Equal("new", f.published[0].EmployeeID)
	})

	t.Run("storage failure does not publish", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := f.svc.Create(ctx, EmployeeInput{})
		requireCode(t, err, apperrors.CodeStorageFailure)
		req.Empty(f.published)
	})

	t.Run("failing subscriber does not fail the write", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.dispatcher.Subscribe(events.EventEmployeeCreated, func(context.Context, events.Event) error {
			return errors.New("redis down")
		})
		f.employees.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(ctx, EmployeeInput{FirstName: "A"})
		req.NoError(err)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites every field", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").
			Return(&domain.Employee{ID: "e1", FirstName: "A", LastName: "B", DepartmentID: "D"}, nil)
		f.employees.EXPECT().Update(gomock.Any(), &domain.Employee{ID: "e1", FirstName: "X"}).Return(nil)

		emp, err := f.svc.Update(ctx, "e1", EmployeeInput{FirstName: "X"})
		req.NoError(err)
		req.Equal(domain.Employee{ID: "e1", FirstName: "X"}, *emp)
		req.Len(f.published, 1)
		req.Equal(events.EventEmployeeUpdated, f.published[0].Type)
	})

	t.Run("missing", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(nil, apperrors.ErrNotFound)

		_, err := f.svc.Update(ctx, "e1", EmployeeInput{})
		requireCode(t, err, apperrors.CodeNotFound)
		req.Empty(f.published)
	})

	t.Run("removed between lookup and write", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(&domain.Employee{ID: "e1"}, nil)
		f.employees.EXPECT().Update(gomock.Any(), gomock.Any()).Return(apperrors.ErrNotFound)

		_, err := f.svc.Update(ctx, "e1", EmployeeInput{})
		requireCode(t, err, apperrors.CodeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the removed record", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		snapshot := &domain.Employee{ID: "e1", FirstName: "A", LastName: "B", DepartmentID: "D"}
		gomock.InOrder(
			f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(snapshot, nil),
			f.employees.EXPECT().Delete(gomock.Any(), "e1").Return(nil),
		)

		emp, err := f.svc.Delete(ctx, "e1")
		req.NoError(err)
		req.Equal(snapshot, emp)
		req.Len(f.published, 1)
		req.Equal(events.EventEmployeeDeleted, f.published[0].Type)
		req.Equal("A", f.published[0].Payload.FirstName)
	})

	t.Run("missing", func(t *testing.T) {
		f := newEmployeeFixture(t, nil)
		f.employees.EXPECT().GetByID(gomock.Any(), "e1").Return(nil, apperrors.ErrNotFound)

		_, err := f.svc.Delete(ctx, "e1")
		requireCode(t, err, apperrors.CodeNotFound)
	})
}

func TestEmployeeService_Bulk(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	f := newEmployeeFixture(t, nil)

	filter := domain.EmployeeFilter{FirstName: lo.ToPtr("firstName#1")}
	patch := domain.EmployeePatch{FirstName: lo.ToPtr("Updated")}

	f.employees.EXPECT().FindOne(gomock.Any(), filter).Return(&domain.Employee{ID: "e1"}, nil)
	f.employees.EXPECT().Find(gomock.Any(), filter).Return([]domain.Employee{{ID: "e1"}}, nil)
	f.employees.EXPECT().UpdateMany(gomock.Any(), domain.EmployeeFilter{}, patch).Return(int64(2), nil)
	f.employees.EXPECT().DeleteMany(gomock.Any(), domain.EmployeeFilter{}).Return(int64(2), nil)
	f.employees.EXPECT().FindOne(gomock.Any(), domain.EmployeeFilter{}).Return(nil, apperrors.ErrNotFound)

	one, err := f.svc.FindOne(ctx, filter)
	req.NoError(err)
	req.Equal("e1", one.ID)

	all, err := f.svc.Find(ctx, filter)
	req.NoError(err)
	req.Len(all, 1)

	n, err := f.svc.UpdateMany(ctx, domain.EmployeeFilter{}, patch)
	req.NoError(err)
	req.EqualValues(2, n)

	n, err = f.svc.ClearEmployees(ctx)
	req.NoError(err)
	req.EqualValues(2, n)

	_, err = f.svc.FindOne(ctx, domain.EmployeeFilter{})
	requireCode(t, err, apperrors.CodeNotFound)
	req.Empty(f.published)
}
