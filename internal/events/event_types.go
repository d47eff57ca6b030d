package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// AllEmployeeEvents lists every employee event type.
var AllEmployeeEvents = []EventType{EventEmployeeCreated, EventEmployeeUpdated, EventEmployeeDeleted}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	EmployeeID string          `json:"employee_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Payload    EmployeePayload `json:"payload"`
}

// EmployeePayload carries the employee record as stored after the change,
// or as it was before removal for deletions.
type EmployeePayload struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Department string `json:"department"`
}

// NewEmployeeEvent builds an event of the given type for emp.
func NewEmployeeEvent(eventType EventType, emp domain.Employee) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: emp.ID,
		Timestamp:  time.Now().UTC(),
		Payload: EmployeePayload{
			FirstName:  emp.FirstName,
			LastName:   emp.LastName,
			Department: emp.DepartmentID,
		},
	}
}
