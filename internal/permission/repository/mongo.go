package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"org-access-registry/internal/db"
	"org-access-registry/internal/permission/domain"
	"org-access-registry/internal/platform/pagination"
)

type permissionDocument struct {
	UserID  string `bson:"user_id"`
	OrgName string `bson:"org_name"`
	Role    string `bson:"role"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns a permission repository backed by the permissions collection of database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollectionPermissions)}
}

// UpsertMany issues one ordered bulk write of upserts keyed by (user_id, org_name). Each item is
// applied atomically by the store; the batch as a whole is not. An empty perms is a no-op.
func (r *MongoRepository) UpsertMany(ctx context.Context, perms []domain.Permission) (int64, error) {
	if len(perms) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, len(perms))
	for i, p := range perms {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.M{"user_id": p.UserID, "org_name": p.OrgName}).
			SetUpdate(bson.M{"$set": bson.M{"role": string(p.Role)}}).
			SetUpsert(true)
	}
	res, err := r.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, db.Unavailable("permissions.bulk_write", err)
	}
	return res.UpsertedCount, nil
}

// DeleteMatching deletes documents equal to any element of perms with one $or filter.
// An empty perms deletes nothing and does not reach the store.
func (r *MongoRepository) DeleteMatching(ctx context.Context, perms []domain.Permission) (int64, error) {
	if len(perms) == 0 {
		return 0, nil
	}
	or := make(bson.A, len(perms))
	for i, p := range perms {
		or[i] = bson.M{"user_id": p.UserID, "org_name": p.OrgName, "role": string(p.Role)}
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"$or": or})
	if err != nil {
		return 0, db.Unavailable("permissions.delete_many", err)
	}
	return res.DeletedCount, nil
}

// List returns one page of permissions matching f and the total matching count.
func (r *MongoRepository) List(ctx context.Context, f ListFilter) (*pagination.Page[*domain.Permission], error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.OrgName != "" {
		filter["org_name"] = f.OrgName
	}
	cur, err := r.coll.Find(ctx, filter, db.PageOptions(f.Limit, f.Offset))
	if err != nil {
		return nil, db.Unavailable("permissions.find", err)
	}
	var docs []permissionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, db.Unavailable("permissions.find", err)
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, db.Unavailable("permissions.count", err)
	}
	items := make([]*domain.Permission, len(docs))
	for i, d := range docs {
		items[i] = &domain.Permission{UserID: d.UserID, OrgName: d.OrgName, Role: domain.Role(d.Role)}
	}
	return &pagination.Page[*domain.Permission]{Count: count, Items: items}, nil
}
