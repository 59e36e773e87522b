package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	consultationdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/inbox"
	treatmentdomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/treatment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/tracing"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/statistics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/treatment"
)

// app holds every singleton. close releases them in reverse order.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Collector
	db      *gorm.DB

	users         identitydomain.Repository
	treatments    treatmentdomain.Repository
	consultations consultationdomain.Repository
	stats         statistics.Source
	inbox         inbox.Repository
	auditLogs     audit.Reader

	audit  *audit.Dispatcher
	mailer *notification.Dispatcher

	registry *identity.Registry
	catalog  *treatment.Catalog
	engine   *consultation.Engine

	closers []func()
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector("clinic"),
	}
	a.closers = append(a.closers, func() { _ = log.Sync() })

	// ======================================================
	// 🔧 TRACING
	// ======================================================
	tp, err := tracing.Init(cfg.Tracing)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	})

	// ======================================================
	// 🗄️ STORE
	// ======================================================
	switch storeFlag {
	case "memory":
		store := memory.New()
		a.users = store.Users()
		a.treatments = store.Treatments()
		a.consultations = store.Consultations()
		a.stats = store.Statistics()
		a.inbox = store.Notifications()
		a.auditLogs = store.Audit()
		a.audit = audit.NewDispatcher(store.Audit(), log, a.metrics.AuditBufferDropped)

	case "postgres":
		db, err := dbpkg.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.closers = append(a.closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})

		a.users = infraRepo.NewUserGormRepository(db)
		a.treatments = infraRepo.NewTreatmentGormRepository(db)
		a.consultations = infraRepo.NewConsultationGormRepository(db)
		a.stats = infraRepo.NewStatisticsGormRepository(db)
		a.inbox = infraRepo.NewNotificationGormRepository(db)

		auditLog := audit.New(db, a.metrics.AuditEntriesTotal)
		a.auditLogs = auditLog
		a.audit = audit.NewDispatcher(auditLog, log, a.metrics.AuditBufferDropped)

	default:
		return nil, fmt.Errorf("unknown store %q", storeFlag)
	}

	a.closers = append(a.closers, a.audit.Close)

	// ======================================================
	// ✉️ NOTIFICATIONS
	// ======================================================
	var sender notification.Sender = notification.NewLogSender(log)
	if cfg.SMTP.Enabled() {
		sender = notification.NewBreakerSender(notification.NewSMTPSender(cfg.SMTP))
	}
	if cfg.Archive.Enabled() {
		sender = notification.NewArchiveSender(sender, notification.NewS3Client(cfg.Archive), cfg.Archive.Bucket, log)
	}
	a.mailer = notification.NewDispatcher(sender, cfg.App.Timezone, a.metrics.NotificationsTotal)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	a.registry = identity.NewRegistry(
		a.users,
		a.audit,
		log,
		identity.WithWelcome(a.mailer),
		identity.WithEmailDomainCheck(cfg.Scheduling.CheckEmailDomain),
	)

	a.catalog = treatment.NewCatalog(a.treatments, a.registry, a.audit)

	opts := []consultation.Option{
		consultation.WithConflictMode(consultationdomain.ParseConflictMode(cfg.Scheduling.ConflictMode)),
		consultation.WithMetrics(a.metrics),
	}
	if cfg.Redis.Enabled() {
		client := redislock.NewClient(cfg.Redis)
		a.closers = append(a.closers, func() { _ = client.Close() })
		opts = append(opts, consultation.WithSlotLocker(redislock.New(client, cfg.Scheduling.LockTTL, log)))
	}

	a.engine = consultation.NewEngine(
		a.consultations,
		a.registry,
		a.catalog,
		a.mailer,
		a.audit,
		log,
		opts...,
	)

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
