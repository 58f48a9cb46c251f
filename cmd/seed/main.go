// seed inserts development sample data for local testing: two users, one organization and one permission.
// Idempotent: skips inserts if the dev organization already exists.
package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"org-access-registry/internal/config"
	"org-access-registry/internal/db"
	orgrepo "org-access-registry/internal/organization/repository"
	orgservice "org-access-registry/internal/organization/service"
	"org-access-registry/internal/permission/domain"
	permissionrepo "org-access-registry/internal/permission/repository"
	permissionservice "org-access-registry/internal/permission/service"
	"org-access-registry/internal/platform/logging"
	userrepo "org-access-registry/internal/user/repository"
	userservice "org-access-registry/internal/user/service"
)

const (
	devOrgName   = "Dev Org"
	devUserName  = "Dev User"
	devUserEmail = "dev@example.com"
	memberName   = "Member User"
	memberEmail  = "member@example.com"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Configure(log.StandardLogger(), cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	client, err := db.Open(ctx, cfg.MongoURI, cfg.MongoTimeoutDuration())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	database := client.Database(cfg.MongoDatabase)

	orgs := orgrepo.NewMongoRepository(database)
	users := userrepo.NewMongoRepository(database)
	permissions := permissionrepo.NewMongoRepository(database)

	exists, err := orgs.Exists(ctx, devOrgName)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if exists {
		log.Infof("Seed already applied (%s exists). Skipping.", devOrgName)
		os.Exit(0)
	}

	userSvc := userservice.NewUserService(users, nil)
	devUserID, err := userSvc.Create(ctx, devUserName, devUserEmail)
	if err != nil {
		log.Fatalf("create dev user: %v", err)
	}
	memberID, err := userSvc.Create(ctx, memberName, memberEmail)
	if err != nil {
		log.Fatalf("create member user: %v", err)
	}
	if _, err := orgservice.NewOrgService(orgs, nil).Create(ctx, devOrgName); err != nil {
		log.Fatalf("create org: %v", err)
	}
	mgr := permissionservice.NewManager(permissions, users, orgs, nil)
	res, err := mgr.Assign(ctx, []domain.Permission{{UserID: devUserID, OrgName: devOrgName, Role: domain.RoleAdmin}})
	if err != nil {
		log.Fatalf("assign permission: %v", err)
	}

	log.WithFields(log.Fields{
		"dev_user_id":    devUserID,
		"member_user_id": memberID,
		"org":            devOrgName,
		"permissions":    res.Count,
	}).Info("Seed complete")
}
