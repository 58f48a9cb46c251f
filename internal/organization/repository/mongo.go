package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"org-access-registry/internal/db"
	"org-access-registry/internal/organization/domain"
	"org-access-registry/internal/platform/pagination"
)

type orgDocument struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns an organization repository backed by the orgs collection of database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollectionOrgs)}
}

// Create inserts the organization and sets o.ID to the generated ObjectID in hex form.
func (r *MongoRepository) Create(ctx context.Context, o *domain.Org) error {
	res, err := r.coll.InsertOne(ctx, orgDocument{Name: o.Name})
	if err != nil {
		return db.Unavailable("orgs.insert", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("orgs.insert: unexpected id type %T", res.InsertedID)
	}
	o.ID = oid.Hex()
	return nil
}

// Exists reports whether an organization named name is present, fetching only the _id field.
func (r *MongoRepository) Exists(ctx context.Context, name string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	if err := r.coll.FindOne(ctx, bson.M{"name": name}, opts).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, db.Unavailable("orgs.find", err)
	}
	return true, nil
}

// List returns one page of organizations matching p.Name and the total matching count.
func (r *MongoRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.Org], error) {
	filter := db.NameFilter("name", p.Name)
	cur, err := r.coll.Find(ctx, filter, db.PageOptions(p.Limit, p.Offset))
	if err != nil {
		return nil, db.Unavailable("orgs.find", err)
	}
	var docs []orgDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, db.Unavailable("orgs.find", err)
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, db.Unavailable("orgs.count", err)
	}
	items := make([]*domain.Org, len(docs))
	for i := range docs {
		items[i] = &domain.Org{ID: docs[i].ID.Hex(), Name: docs[i].Name}
	}
	return &pagination.Page[*domain.Org]{Count: count, Items: items}, nil
}
