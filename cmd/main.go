package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookingsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/bookings"
	checkAvailabilityHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/check_availability"
	classRosterHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/class_roster"
	generateClassesHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/generate_classes"
	instructorsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/instructors"
	patternsHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/patterns"
	scheduleClassHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/schedule_class"
	scheduleLessonHandler "github.com/m04kA/DS-SchedulingService/internal/api/handlers/schedule_lesson"
	"github.com/m04kA/DS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/DS-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/catalog"
	patternRepo "github.com/m04kA/DS-SchedulingService/internal/infra/storage/pattern"
	"github.com/m04kA/DS-SchedulingService/internal/integrations/notifier"
	"github.com/m04kA/DS-SchedulingService/internal/scheduling"
	bookingsService "github.com/m04kA/DS-SchedulingService/internal/service/bookings"
	classesService "github.com/m04kA/DS-SchedulingService/internal/service/classes"
	instructorsService "github.com/m04kA/DS-SchedulingService/internal/service/instructors"
	patternsService "github.com/m04kA/DS-SchedulingService/internal/service/patterns"
	checkAvailabilityUC "github.com/m04kA/DS-SchedulingService/internal/usecase/check_availability"
	generateClassesUC "github.com/m04kA/DS-SchedulingService/internal/usecase/generate_classes"
	scheduleClassUC "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_class"
	scheduleLessonUC "github.com/m04kA/DS-SchedulingService/internal/usecase/schedule_lesson"
	"github.com/m04kA/DS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/DS-SchedulingService/pkg/logger"
	"github.com/m04kA/DS-SchedulingService/pkg/metrics"
	"github.com/m04kA/DS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/DS-SchedulingService/pkg/txmanager"
)

type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting DS-SchedulingService...")
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}

	// Метрики бизнес-операций пишутся всегда, наружу реестр отдается только при metrics.enabled
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории и менеджер транзакций (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		catalogRepository *catalogRepo.Repository
		patternRepository *patternRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		patternRepository = patternRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		patternRepository = patternRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Клиент сервиса уведомлений (пустой url отключает отправку)
	notifierClient := notifier.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%q, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Ядро проверок
	detector := scheduling.NewConflictDetector(bookingRepository, cfg.Scheduling.Lookback())
	validator := scheduling.NewBookingValidator(catalogRepository, detector, loc, log)

	// Use cases
	scheduleLessonUseCase := scheduleLessonUC.NewUseCase(bookingRepository, validator, txMgr, metricsCollector, log)
	scheduleClassUseCase := scheduleClassUC.NewUseCase(bookingRepository, validator, txMgr, metricsCollector, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		validator,
		metricsCollector,
		loc,
		cfg.Scheduling.Lookback(),
		log,
	)
	generateClassesUseCase := generateClassesUC.NewUseCase(
		patternRepository,
		bookingRepository,
		catalogRepository,
		detector,
		notifierClient,
		txMgr,
		metricsCollector,
		loc,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, loc, log)
	classSvc := classesService.NewService(bookingRepository, catalogRepository, detector, txMgr, metricsCollector, log)
	patternSvc := patternsService.NewService(patternRepository, bookingRepository, catalogRepository, txMgr, loc, log)
	instructorSvc := instructorsService.NewService(catalogRepository, txMgr, log)

	// Handlers
	scheduleLesson := scheduleLessonHandler.NewHandler(scheduleLessonUseCase, log)
	scheduleClass := scheduleClassHandler.NewHandler(scheduleClassUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, loc, log)
	generateClasses := generateClassesHandler.NewHandler(generateClassesUseCase, log)
	classRoster := classRosterHandler.NewHandler(classSvc, log)
	bookings := bookingsHandler.NewHandler(bookingSvc, loc, log)
	patterns := patternsHandler.NewHandler(patternSvc, log)
	instructors := instructorsHandler.NewHandler(instructorSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (чтение и пробные проверки)
	// ============================================================

	api.HandleFunc("/bookings/check", checkAvailability.Check).Methods(http.MethodPost)
	api.HandleFunc("/lessons/{lessonId}", bookings.GetLesson).Methods(http.MethodGet)
	api.HandleFunc("/classes/{classId}", bookings.GetClass).Methods(http.MethodGet)
	api.HandleFunc("/students/{studentId}/schedule", bookings.StudentSchedule).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{instructorId}", instructors.Get).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{instructorId}/schedule", bookings.InstructorSchedule).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{instructorId}/free-slots", checkAvailability.FreeSlots).Methods(http.MethodGet)
	api.HandleFunc("/patterns/{patternId}", patterns.Get).Methods(http.MethodGet)
	api.HandleFunc("/patterns/{patternId}/statistics", patterns.Statistics).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Уроки ---
	protected.HandleFunc("/lessons", scheduleLesson.Create).Methods(http.MethodPost)
	protected.HandleFunc("/lessons/{lessonId}", scheduleLesson.Update).Methods(http.MethodPut)
	protected.HandleFunc("/lessons/{lessonId}/cancel", bookings.CancelLesson).Methods(http.MethodPatch)

	// --- Групповые занятия ---
	protected.HandleFunc("/classes", scheduleClass.Create).Methods(http.MethodPost)
	protected.HandleFunc("/classes/{classId}", scheduleClass.Update).Methods(http.MethodPut)
	protected.HandleFunc("/classes/{classId}/enroll", classRoster.Enroll).Methods(http.MethodPost)
	protected.HandleFunc("/classes/{classId}/unenroll", classRoster.Unenroll).Methods(http.MethodPost)
	protected.HandleFunc("/classes/{classId}/cancel", classRoster.Cancel).Methods(http.MethodPatch)

	// --- Шаблоны расписания ---
	protected.HandleFunc("/patterns", patterns.Create).Methods(http.MethodPost)
	protected.HandleFunc("/patterns/{patternId}", patterns.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/patterns/{patternId}/generate", generateClasses.Generate).Methods(http.MethodPost)
	protected.HandleFunc("/patterns/{patternId}/regenerate", generateClasses.Regenerate).Methods(http.MethodPost)

	// --- Инструкторы ---
	protected.HandleFunc("/instructors/{instructorId}/licenses", instructors.UpdateLicenses).Methods(http.MethodPut)
	protected.HandleFunc("/instructors/{instructorId}/availability", instructors.UpdateAvailability).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
