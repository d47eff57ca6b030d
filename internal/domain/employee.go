package domain

// Employee is a stored employee document. DepartmentID is a raw reference and
// may point at a department that no longer exists.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	DepartmentID string
}

// EmployeeFilter matches employees on exact field values. Nil fields are ignored,
// so the zero value matches every employee.
type EmployeeFilter struct {
	FirstName    *string
	LastName     *string
	DepartmentID *string
}

// EmployeePatch lists the fields a bulk update overwrites. Nil fields are left as is.
type EmployeePatch struct {
	FirstName    *string
	LastName     *string
	DepartmentID *string
}

// EmployeeView is an employee with its department reference resolved.
// Department is nil when the reference dangles.
type EmployeeView struct {
	Employee
	Department *Department
}
