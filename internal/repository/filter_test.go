package repository

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/spec-kit/employee-service/internal/domain"
)

func TestEmployeeWhere(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		where, args := employeeWhere(domain.EmployeeFilter{}, 1)
		require.Empty(t, where)
		require.Empty(t, args)
	})

	t.Run("placeholders follow the offset", func(t *testing.T) {
		req := require.New(t)
		where, args := employeeWhere(domain.EmployeeFilter{
			FirstName:    lo.ToPtr("firstName#1"),
			DepartmentID: lo.ToPtr("department#1"),
		}, 2)
		req.Equal(" WHERE body->>'firstName' = $2 AND body->>'department' = $3", where)
		req.Equal([]any{"firstName#1", "department#1"}, args)
	})
}

func TestEmployeeFilterDoc(t *testing.T) {
	req := require.New(t)
	req.Equal(bson.M{}, employeeFilterDoc(domain.EmployeeFilter{}))
	req.Equal(bson.M{"lastName": "lastName#2"}, employeeFilterDoc(domain.EmployeeFilter{LastName: lo.ToPtr("lastName#2")}))
}

func TestEmployeePatch(t *testing.T) {
	req := require.New(t)
	patch := domain.EmployeePatch{FirstName: lo.ToPtr("Updated")}
	req.Equal(bson.M{"firstName": "Updated"}, employeePatchDoc(patch))
	req.Equal(map[string]string{"firstName": "Updated"}, employeePatchMap(patch))
	req.Empty(employeePatchMap(domain.EmployeePatch{}))
}

func TestParseIDs(t *testing.T) {
	req := require.New(t)

	_, err := parseObjectID("not-an-object-id")
	req.ErrorContains(err, "malformed id")

	oid, err := parseObjectID("507f1f77bcf86cd799439011")
	req.NoError(err)
	req.Equal("507f1f77bcf86cd799439011", oid.Hex())

	_, err = parseUUID("42")
	req.ErrorContains(err, "malformed id")

	pgID, err := parseUUID("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	req.NoError(err)
	req.True(pgID.Valid)
}
