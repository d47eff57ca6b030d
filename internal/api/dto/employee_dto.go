package dto

import (
	"github.com/samber/lo"

	"github.com/spec-kit/employee-service/internal/domain"
)

// MessageOK is the message carried by every successful write.
const MessageOK = "OK"

// EmployeeRequest payload for create and update. Absent fields decode as empty strings.
type EmployeeRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

// DepartmentResponse is a resolved department.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeResponse is an employee as returned by read endpoints. Department is
// null when the stored reference matches no department.
type EmployeeResponse struct {
	ID         string              `json:"id"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Department *DepartmentResponse `json:"department"`
}

// EmployeeRecordResponse is an employee as stored, with the raw department reference.
type EmployeeRecordResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

// CreateEmployeeResponse wraps the created record.
type CreateEmployeeResponse struct {
	Message     string                 `json:"message"`
	NewEmployee EmployeeRecordResponse `json:"newEmployee"`
}

// EmployeeMutationResponse wraps the updated or deleted record.
type EmployeeMutationResponse struct {
	Message  string                 `json:"message"`
	Employee EmployeeRecordResponse `json:"employee"`
}

// NewEmployeeResponse maps a resolved employee.
func NewEmployeeResponse(view domain.EmployeeView) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        view.ID,
		FirstName: view.FirstName,
		LastName:  view.LastName,
	}
	if view.Department != nil {
		resp.Department = &DepartmentResponse{ID: view.Department.ID, Name: view.Department.Name}
	}
	return resp
}

// NewEmployeeResponses maps a list of resolved employees; never nil.
func NewEmployeeResponses(views []domain.EmployeeView) []EmployeeResponse {
	if len(views) == 0 {
		return []EmployeeResponse{}
	}
	return lo.Map(views, func(v domain.EmployeeView, _ int) EmployeeResponse {
		return NewEmployeeResponse(v)
	})
}

// NewEmployeeRecordResponse maps a stored employee.
func NewEmployeeRecordResponse(emp domain.Employee) EmployeeRecordResponse {
	return EmployeeRecordResponse{
		ID:         emp.ID,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Department: emp.DepartmentID,
	}
}
