package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository bundles the stores of one backend.
type Repository struct {
	Employees   EmployeeRepository
	Departments DepartmentRepository
}

// NewMongoRepository builds stores backed by MongoDB collections.
func NewMongoRepository(db *mongo.Database) *Repository {
	return &Repository{
		Employees:   NewMongoEmployeeRepository(db),
		Departments: NewMongoDepartmentRepository(db),
	}
}

// NewPostgresRepository builds stores backed by Postgres JSONB tables.
func NewPostgresRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Employees:   NewPostgresEmployeeRepository(pool),
		Departments: NewPostgresDepartmentRepository(pool),
	}
}
