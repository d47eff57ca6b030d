package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("spreads employees across departments", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		seeder := NewSeeder(f.departments, f.svc, nil)

		deptSeq := 0
		f.departments.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *domain.Department) error {
				deptSeq++
				d.ID = "d" + strconv.Itoa(deptSeq)
				return nil
			}).Times(2)

		var created []domain.Employee
		f.employees.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *domain.Employee) error {
				e.ID = "e" + strconv.Itoa(len(created)+1)
				created = append(created, *e)
				return nil
			}).Times(5)

		result, err := seeder.Seed(ctx, 2, 5)
		req.NoError(err)
		req.Len(result.Departments, 2)
		req.Equal("Engineering", result.Departments[0].Name)
		req.Equal("Sales", result.Departments[1].Name)
		req.Equal(5, result.Employees)
		req.Equal([]string{"d1", "d2", "d1", "d2", "d1"}, []string{
			created[0].DepartmentID, created[1].DepartmentID, created[2].DepartmentID,
			created[3].DepartmentID, created[4].DepartmentID,
		})
		req.Len(f.published, 5)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		req := require.New(t)
		f := newEmployeeFixture(t, nil)
		seeder := NewSeeder(f.departments, f.svc, nil)

		f.departments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("write conflict"))

		result, err := seeder.Seed(ctx, 3, 10)
		var domainErr *apperrors.DomainError
		req.ErrorAs(err, &domainErr)
		req.Equal(apperrors.CodeStorageFailure, domainErr.Code)
		req.Empty(result.Departments)
		req.Zero(result.Employees)
	})

	t.Run("department names run past the fixed list", func(t *testing.T) {
		require.Equal(t, "Department #8", departmentName(7))
	})
}

func TestSeeder_Clear(t *testing.T) {
	req := require.New(t)
	f := newEmployeeFixture(t, nil)
	seeder := NewSeeder(f.departments, f.svc, nil)

	f.employees.EXPECT().DeleteMany(gomock.Any(), domain.EmployeeFilter{}).Return(int64(5), nil)
	f.departments.EXPECT().DeleteAll(gomock.Any()).Return(int64(2), nil)

	employees, departments, err := seeder.Clear(context.Background())
	req.NoError(err)
	req.EqualValues(5, employees)
	req.EqualValues(2, departments)
}
