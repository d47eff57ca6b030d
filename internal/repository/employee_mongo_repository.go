package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/pkg/util/errorutil"
)

const employeesCollection = "employees"

type employeeDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Department string             `bson:"department"`
}

func (d employeeDocument) toDomain() domain.Employee {
	return domain.Employee{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		DepartmentID: d.Department,
	}
}

type mongoEmployeeRepository struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepository builds the repository over the employees collection.
func NewMongoEmployeeRepository(db *mongo.Database) EmployeeRepository {
	return &mongoEmployeeRepository{coll: db.Collection(employeesCollection)}
}

// byIDSort pins enumeration to _id order so offsets are stable between calls.
var byIDSort = bson.D{{Key: "_id", Value: 1}}

func (r *mongoEmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	res, err := r.coll.InsertOne(ctx, employeeDocument{
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Department: emp.DepartmentID,
	})
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	emp.ID = oid.Hex()
	return nil
}

func (r *mongoEmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	oid, err := parseObjectID(emp.ID)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"firstName":  emp.FirstName,
		"lastName":   emp.LastName,
		"department": emp.DepartmentID,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("employee %s: %w", emp.ID, errorutil.ErrNotFound)
	}
	return nil
}

func (r *mongoEmployeeRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("employee %s: %w", id, errorutil.ErrNotFound)
	}
	return nil
}

func (r *mongoEmployeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

func (r *mongoEmployeeRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoEmployeeRepository) GetAt(ctx context.Context, offset int64) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{}, options.FindOne().SetSort(byIDSort).SetSkip(offset))
}

func (r *mongoEmployeeRepository) Find(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	cur, err := r.coll.Find(ctx, employeeFilterDoc(filter), options.Find().SetSort(byIDSort))
	if err != nil {
		return nil, err
	}
	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	result := make([]domain.Employee, 0, len(docs))
	for _, doc := range docs {
		result = append(result, doc.toDomain())
	}
	return result, nil
}

func (r *mongoEmployeeRepository) FindOne(ctx context.Context, filter domain.EmployeeFilter) (*domain.Employee, error) {
	return r.findOne(ctx, employeeFilterDoc(filter), options.FindOne().SetSort(byIDSort))
}

func (r *mongoEmployeeRepository) UpdateMany(ctx context.Context, filter domain.EmployeeFilter, patch domain.EmployeePatch) (int64, error) {
	set := employeePatchDoc(patch)
	if len(set) == 0 {
		return 0, nil
	}
	res, err := r.coll.UpdateMany(ctx, employeeFilterDoc(filter), bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *mongoEmployeeRepository) DeleteMany(ctx context.Context, filter domain.EmployeeFilter) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, employeeFilterDoc(filter))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoEmployeeRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Employee, error) {
	var doc employeeDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("employee: %w", errorutil.ErrNotFound)
		}
		return nil, err
	}
	emp := doc.toDomain()
	return &emp, nil
}

func employeeFilterDoc(filter domain.EmployeeFilter) bson.M {
	doc := bson.M{}
	if filter.FirstName != nil {
		doc["firstName"] = *filter.FirstName
	}
	if filter.LastName != nil {
		doc["lastName"] = *filter.LastName
	}
	if filter.DepartmentID != nil {
		doc["department"] = *filter.DepartmentID
	}
	return doc
}

func employeePatchDoc(patch domain.EmployeePatch) bson.M {
	doc := bson.M{}
	if patch.FirstName != nil {
		doc["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		doc["lastName"] = *patch.LastName
	}
	if patch.DepartmentID != nil {
		doc["department"] = *patch.DepartmentID
	}
	return doc
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("malformed id %q: %w", id, errorutil.ErrNotFound)
	}
	return oid, nil
}
