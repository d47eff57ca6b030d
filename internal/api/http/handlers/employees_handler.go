package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

// EmployeeService is the subset of service.EmployeeService used by the HTTP layer.
type EmployeeService interface {
	List(ctx context.Context) ([]domain.EmployeeView, error)
	Random(ctx context.Context) (*domain.EmployeeView, error)
	GetByID(ctx context.Context, id string) (*domain.EmployeeView, error)
	Create(ctx context.Context, input service.EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, input service.EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) (*domain.Employee, error)
}

// EmployeesHandler exposes the employee endpoints.
type EmployeesHandler struct {
	service EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	views, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponses(views))
}

// Random GET /employees/random.
func (h *EmployeesHandler) Random(c *fiber.Ctx) error {
	view, err := h.service.Random(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*view))
}

// Get GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	view, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*view))
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	input, err := parseEmployeeInput(c)
	if err != nil {
		return err
	}
	emp, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.CreateEmployeeResponse{
		Message:     dto.MessageOK,
		NewEmployee: dto.NewEmployeeRecordResponse(*emp),
	})
}

// Update PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	input, err := parseEmployeeInput(c)
	if err != nil {
		return err
	}
	emp, err := h.service.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.EmployeeMutationResponse{
		Message:  dto.MessageOK,
		Employee: dto.NewEmployeeRecordResponse(*emp),
	})
}

// Delete DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	emp, err := h.service.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.EmployeeMutationResponse{
		Message:  dto.MessageOK,
		Employee: dto.NewEmployeeRecordResponse(*emp),
	})
}

// parseEmployeeInput decodes a JSON body. A body that is empty or not declared as
// application/json is ignored, leaving every field empty.
func parseEmployeeInput(c *fiber.Ctx) (service.EmployeeInput, error) {
	var req dto.EmployeeRequest
	if len(c.Body()) > 0 && c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return service.EmployeeInput{}, apperrors.NewBadRequest("invalid payload")
		}
	}
	return service.EmployeeInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Department: req.Department,
	}, nil
}
