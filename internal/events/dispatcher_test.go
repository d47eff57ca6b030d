package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
)

func TestInMemoryDispatcher(t *testing.T) {
	emp := domain.Employee{ID: "e1", FirstName: "A", LastName: "B", DepartmentID: "D"}

	t.Run("handlers only see their event type", func(t *testing.T) {
		req := require.New(t)
		d := NewInMemoryDispatcher()

		var created, deleted []Event
		d.Subscribe(EventEmployeeCreated, func(_ context.Context, e Event) error {
			created = append(created, e)
			return nil
		})
		d.Subscribe(EventEmployeeDeleted, func(_ context.Context, e Event) error {
			deleted = append(deleted, e)
			return nil
		})

		req.NoError(d.Publish(context.Background(), NewEmployeeEvent(EventEmployeeCreated, emp)))
		req.Len(created, 1)
		req.Empty(deleted)
		req.Equal("e1", created[0].EmployeeID)
		req.Equal(EmployeePayload{FirstName: "A", LastName: "B", Department: "D"}, created[0].Payload)
		req.NotEmpty(created[0].ID)
	})

	t.Run("a failing handler does not stop the others", func(t *testing.T) {
		req := require.New(t)
		d := NewInMemoryDispatcher()
		boom := errors.New("boom")

		calls := 0
		d.Subscribe(EventEmployeeUpdated, func(context.Context, Event) error { return boom })
		d.Subscribe(EventEmployeeUpdated, func(context.Context, Event) error {
			calls++
			return nil
		})

		err := d.Publish(context.Background(), NewEmployeeEvent(EventEmployeeUpdated, emp))
		req.ErrorIs(err, boom)
		req.Equal(1, calls)
	})

	t.Run("a panicking handler is reported as an error", func(t *testing.T) {
		req := require.New(t)
		d := NewInMemoryDispatcher()

		calls := 0
		d.Subscribe(EventEmployeeCreated, func(context.Context, Event) error { panic("nil map") })
		d.Subscribe(EventEmployeeCreated, func(context.Context, Event) error {
			calls++
			return nil
		})

		err := d.Publish(context.Background(), NewEmployeeEvent(EventEmployeeCreated, emp))
		req.ErrorContains(err, "panic: nil map")
		req.Equal(1, calls)
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		require.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), NewEmployeeEvent(EventEmployeeDeleted, emp)))
	})
}
