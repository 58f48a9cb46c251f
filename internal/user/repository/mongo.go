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
	"org-access-registry/internal/platform/pagination"
	"org-access-registry/internal/user/domain"
)

type userDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a user repository backed by the users collection of database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollectionUsers)}
}

// Create inserts the user and sets u.ID to the generated ObjectID in hex form.
func (r *MongoRepository) Create(ctx context.Context, u *domain.User) error {
	res, err := r.coll.InsertOne(ctx, userDocument{Name: u.Name, Email: u.Email})
	if err != nil {
		return db.Unavailable("users.insert", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("users.insert: unexpected id type %T", res.InsertedID)
	}
	u.ID = oid.Hex()
	return nil
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for malformed ids and database failures, not for missing documents.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, db.Unavailable("users.find", err)
	}
	return docToDomain(&doc), nil
}

// Exists reports whether a user with id is present, fetching only the _id field.
func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, err
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, db.Unavailable("users.find", err)
	}
	return true, nil
}

// List returns one page of users matching p.Name and the total matching count.
func (r *MongoRepository) List(ctx context.Context, p pagination.Params) (*pagination.Page[*domain.User], error) {
	filter := db.NameFilter("name", p.Name)
	cur, err := r.coll.Find(ctx, filter, db.PageOptions(p.Limit, p.Offset))
	if err != nil {
		return nil, db.Unavailable("users.find", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, db.Unavailable("users.find", err)
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, db.Unavailable("users.count", err)
	}
	items := make([]*domain.User, len(docs))
	for i := range docs {
		items[i] = docToDomain(&docs[i])
	}
	return &pagination.Page[*domain.User]{Count: count, Items: items}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidUserID, id)
	}
	return oid, nil
}

func docToDomain(d *userDocument) *domain.User {
	if d == nil {
		return nil
	}
	return &domain.User{ID: d.ID.Hex(), Name: d.Name, Email: d.Email}
}
