package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
)

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	departments := flag.Int("departments", 3, "Number of departments to create")
	employees := flag.Int("employees", 10, "Number of employees to create")
	flag.Parse()

	if err := run(*action, *departments, *employees); err != nil {
		log.Fatal(err)
	}
}

func run(action string, numDepartments, numEmployees int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	store, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	defer store.Close()

	// Seeding does not publish change events.
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   store.Employees,
		DepartmentRepo: store.Departments,
		Logger:         logger,
	})
	seeder := service.NewSeeder(store.Departments, employeeService, logger)

	switch action {
	case "seed":
		result, err := seeder.Seed(ctx, numDepartments, numEmployees)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Printf("seeded %d departments and %d employees into %s\n", len(result.Departments), result.Employees, store.Driver)
	case "clear":
		emps, depts, err := seeder.Clear(ctx)
		if err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		fmt.Printf("removed %d employees and %d departments from %s\n", emps, depts, store.Driver)
	default:
		flag.PrintDefaults()
		return fmt.Errorf("unknown action %q", action)
	}
	return nil
}
