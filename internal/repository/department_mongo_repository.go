package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/employee-service/internal/domain"
)

const departmentsCollection = "departments"

type departmentDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type mongoDepartmentRepository struct {
	coll *mongo.Collection
}

// NewMongoDepartmentRepository builds the repository over the departments collection.
func NewMongoDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &mongoDepartmentRepository{coll: db.Collection(departmentsCollection)}
}

func (r *mongoDepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	res, err := r.coll.InsertOne(ctx, departmentDocument{Name: dept.Name})
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	dept.ID = oid.Hex()
	return nil
}

func (r *mongoDepartmentRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Department, error) {
	requested := map[primitive.ObjectID][]string{}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, seen := requested[oid]; !seen {
			oids = append(oids, oid)
		}
		requested[oid] = append(requested[oid], id)
	}
	result := map[string]domain.Department{}
	if len(oids) == 0 {
		return result, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var docs []departmentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		for _, id := range requested[doc.ID] {
			result[id] = domain.Department{ID: doc.ID.Hex(), Name: doc.Name}
		}
	}
	return result, nil
}

func (r *mongoDepartmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
