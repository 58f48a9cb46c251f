package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"org-access-registry/internal/audit/domain"
	"org-access-registry/internal/db"
)

type auditLogDocument struct {
	ID         string    `bson:"_id"`
	Action     string    `bson:"action"`
	Resource   string    `bson:"resource"`
	ResourceID string    `bson:"resource_id,omitempty"`
	IP         string    `bson:"ip"`
	Metadata   string    `bson:"metadata,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository returns an audit log repository backed by the audit_logs collection of database.
func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: database.Collection(db.CollectionAuditLogs)}
}

// Create persists the entry. The entry must have ID set; it is used as the document _id.
func (r *MongoRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	_, err := r.coll.InsertOne(ctx, auditLogDocument{
		ID: a.ID, Action: a.Action, Resource: a.Resource, ResourceID: a.ResourceID,
		IP: a.IP, Metadata: a.Metadata, CreatedAt: a.CreatedAt,
	})
	return db.Unavailable("audit_logs.insert", err)
}
