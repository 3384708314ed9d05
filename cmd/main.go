package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/config"
	"github.com/sharath018/secret-santa-backend/database"
	"github.com/sharath018/secret-santa-backend/internal/assignment"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
	"github.com/sharath018/secret-santa-backend/internal/event"
	"github.com/sharath018/secret-santa-backend/internal/memstore"
	"github.com/sharath018/secret-santa-backend/internal/message"
	"github.com/sharath018/secret-santa-backend/internal/notification"
	"github.com/sharath018/secret-santa-backend/internal/participant"
	"github.com/sharath018/secret-santa-backend/internal/reports"
	"github.com/sharath018/secret-santa-backend/middleware"
	"github.com/sharath018/secret-santa-backend/routes"
	"github.com/sharath018/secret-santa-backend/utils"
)

// repositories is whichever storage backend the process runs on.
type repositories struct {
	events        event.Repository
	participants  participant.Repository
	assignments   assignment.Repository
	messages      message.Repository
	audit         auditlog.Repository
	notifications notification.Repository
}

func openRepositories(cfg *config.Config) repositories {
	if cfg.DBHost == "" {
		log.Println("⚠️ DB_HOST not set, using the in-memory store (data is lost on restart)")
		store := memstore.New()
		return repositories{
			events:        store.Events(),
			participants:  store.Participants(),
			assignments:   store.Assignments(),
			messages:      store.Messages(),
			audit:         store.AuditLogs(),
			notifications: store.Notifications(),
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ %v", err)
	}
	return repositories{
		events:        event.NewRepository(db),
		participants:  participant.NewRepository(db),
		assignments:   assignment.NewRepository(db),
		messages:      message.NewRepository(db),
		audit:         auditlog.NewRepository(db),
		notifications: notification.NewRepository(db),
	}
}

func main() {
	cfg := config.Load()
	repos := openRepositories(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init Redis (draw lock)
	var locker assignment.Locker
	if cfg.RedisAddr != "" {
		if err := utils.InitRedis(cfg); err != nil {
			log.Printf("⚠️ Redis init failed: %v", err)
		}
	}
	if utils.RedisClient != nil {
		locker = utils.NewRedisLocker(utils.RedisClient)
	} else {
		log.Println("ℹ️ Using process-local draw lock")
		locker = assignment.NewLocalLocker(5 * time.Second)
	}

	// Init services
	auditSvc := auditlog.NewService(repos.audit)
	notificationSvc := notification.NewService(repos.notifications, notification.NewEmailSender(cfg), cfg)

	// Init Kafka (notification jobs)
	utils.InitializeKafka(cfg)
	var scheduler notification.Scheduler
	var queue *notification.Queue
	if utils.KafkaWriter != nil {
		scheduler = notification.NewKafkaScheduler(utils.KafkaWriter)
		notification.StartKafkaConsumer(ctx, notificationSvc, utils.NewKafkaReader(cfg))
	} else {
		queue = notification.NewQueue(notificationSvc, cfg.NotifyWorkers, cfg.NotifyQueueSize)
		scheduler = queue
	}

	eventSvc := event.NewService(repos.events, auditSvc)
	participantSvc := participant.NewService(repos.participants, eventSvc, scheduler, auditSvc)
	assignmentSvc := assignment.NewService(repos.assignments, eventSvc, repos.participants, scheduler,
		locker, auditSvc, assignment.NewGenerator(cfg.DrawMaxAttempts))
	messageSvc := message.NewService(repos.messages, eventSvc, repos.participants)
	reportSvc := reports.NewService(eventSvc, repos.participants, reports.NewRosterExporter(), auditSvc)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.CallerHeader, "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, routes.Handlers{
		Event:        event.NewHandler(eventSvc),
		Participant:  participant.NewHandler(participantSvc),
		Assignment:   assignment.NewHandler(assignmentSvc),
		Message:      message.NewHandler(messageSvc),
		Notification: notification.NewHandler(notificationSvc, eventSvc),
		Reports:      reports.NewHandler(reportSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}

	// Drain pending notifications after the last request is served.
	if queue != nil {
		queue.Close()
	}
	utils.CloseKafka()
	if utils.RedisClient != nil {
		_ = utils.RedisClient.Close()
	}
	log.Println("✅ Shutdown complete")
}
