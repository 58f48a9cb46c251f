package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"org-access-registry/internal/audit"
	auditrepo "org-access-registry/internal/audit/repository"
	"org-access-registry/internal/config"
	"org-access-registry/internal/db"
	orgrepo "org-access-registry/internal/organization/repository"
	orgservice "org-access-registry/internal/organization/service"
	permissionrepo "org-access-registry/internal/permission/repository"
	permissionservice "org-access-registry/internal/permission/service"
	"org-access-registry/internal/platform/logging"
	"org-access-registry/internal/server"
	"org-access-registry/internal/server/middleware"
	"org-access-registry/internal/telemetry"
	telemetryotel "org-access-registry/internal/telemetry/otel"
	"org-access-registry/internal/telemetry/producer"
	userrepo "org-access-registry/internal/user/repository"
	userservice "org-access-registry/internal/user/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Configure(log.StandardLogger(), cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	providers, err := telemetryotel.NewProviders(ctx, telemetryotel.Collector{
		Target:      cfg.OTLPTarget,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	client, err := db.Open(ctx, cfg.MongoURI, cfg.MongoTimeoutDuration())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	database := client.Database(cfg.MongoDatabase)

	kafkaProducer, err := producer.NewKafkaProducer(cfg.TelemetryKafkaBrokersList(), cfg.TelemetryKafkaTopic)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}
	emitters := []telemetry.EventEmitter{telemetryotel.NewEventEmitter(providers.LoggerProvider)}
	if kafkaProducer != nil {
		emitters = append(emitters, kafkaProducer)
		log.WithField("topic", kafkaProducer.Topic()).Info("telemetry: kafka sink enabled")
	}

	auditLogger := audit.NewLogger(auditrepo.NewMongoRepository(database), middleware.ClientIP)
	users := userrepo.NewMongoRepository(database)
	orgs := orgrepo.NewMongoRepository(database)
	permissions := permissionrepo.NewMongoRepository(database)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler := server.NewRouter(server.Deps{
		Users:            userservice.NewUserService(users, auditLogger),
		Orgs:             orgservice.NewOrgService(orgs, auditLogger),
		Permissions:      permissionservice.NewManager(permissions, users, orgs, auditLogger),
		HealthPinger:     db.ClientPinger{Client: client},
		Emitter:          telemetry.Fanout(emitters...),
		Registry:         registry,
		Logger:           log.StandardLogger(),
		DefaultPageLimit: int64(cfg.DefaultPageLimit),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	go func() {
		log.WithFields(log.Fields{"addr": cfg.HTTPAddr, "database": cfg.MongoDatabase}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown")
	}
	// Let in-flight async telemetry emits finish before the sinks close.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if err := kafkaProducer.Close(); err != nil {
		log.WithError(err).Warn("kafka producer close")
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("telemetry shutdown")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Warn("db disconnect")
	}
	log.Info("HTTP server stopped")
}
