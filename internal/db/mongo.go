package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by the repositories and the index migrations.
const (
	CollectionUsers       = "users"
	CollectionOrgs        = "orgs"
	CollectionPermissions = "permissions"
	CollectionAuditLogs   = "audit_logs"
)

// DefaultTimeout bounds server selection and the initial ping when Open is given a zero timeout.
const DefaultTimeout = 10 * time.Second

// Open connects to MongoDB at uri and pings the primary. Caller must call Disconnect when done.
// A zero timeout uses DefaultTimeout.
func Open(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, errors.New("db: MongoDB URI is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Pinger reports whether the store is reachable. *mongo.Client satisfies it through ClientPinger.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientPinger adapts a *mongo.Client to Pinger by pinging the primary.
type ClientPinger struct {
	Client *mongo.Client
}

// Ping pings the primary. Returns an error if the client is nil.
func (p ClientPinger) Ping(ctx context.Context) error {
	if p.Client == nil {
		return errors.New("db: client is nil")
	}
	return p.Client.Ping(ctx, readpref.Primary())
}
