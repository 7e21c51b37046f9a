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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignPatientHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/assign_patient"
	bookAppointmentHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/book_appointment"
	deleteAppointmentHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/get_services"
	listAppointmentsHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/list_appointments"
	listPatientsHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/list_patients"
	manageScheduleHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/manage_schedule"
	updateStatusHandler "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/handlers/update_appointment_status"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/api/middleware"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/config"
	slotcache "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/cache"
	appointmentRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/appointment"
	availabilityRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/availability"
	patientRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/patient"
	serviceRepo "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/infra/storage/service"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/internal/integrations/mailer"
	appointmentsService "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/appointments"
	catalogService "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/catalog"
	scheduleService "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/service/schedule"
	bookAppointmentUC "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/valentina-code311/tu-lugar-seguro-sub000/internal/usecase/get_available_slots"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/dbmetrics"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/logger"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/metrics"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/simpletxmanager"
	"github.com/valentina-code311/tu-lugar-seguro-sub000/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting tu-lugar-seguro booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем кэш слотов (если включен)
	var slotCache *slotcache.SlotCache
	if cfg.Redis.Enabled {
		slotCache, err = slotcache.New(
			context.Background(),
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.SlotTTLSec)*time.Second,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer slotCache.Close()
		log.Info("Slot cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotTTLSec)
	}

	// Инициализируем клиент рассылки (если включен)
	var mailerClient *mailer.Client
	if cfg.Mailer.Enabled {
		mailerClient = mailer.NewClient(
			cfg.Mailer.URL,
			cfg.Mailer.APIKey,
			time.Duration(cfg.Mailer.Timeout)*time.Second,
			log,
		)
		log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		patientRepository      *patientRepo.Repository
		serviceRepository      *serviceRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		patientRepository = patientRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		patientRepository = patientRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Опциональные коллаборации передаются как nil, если выключены:
	// интерфейсы в contract.go типизированы, поэтому нужен явный nil
	var (
		ucSlotCache    getAvailableSlotsUC.SlotCache
		bookSlotCache  bookAppointmentUC.SlotCache
		apptSlotCache  appointmentsService.SlotCache
		schedSlotCache scheduleService.SlotCache

		bookMailer bookAppointmentUC.MailerClient
		apptMailer appointmentsService.MailerClient
	)
	if slotCache != nil {
		ucSlotCache = slotCache
		bookSlotCache = slotCache
		apptSlotCache = slotCache
		schedSlotCache = slotCache
	}
	if mailerClient != nil {
		bookMailer = mailerClient
		apptMailer = mailerClient
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(serviceRepository, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		patientRepository,
		serviceRepository,
		txMgr,
		apptSlotCache,
		apptMailer,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		appointmentRepository,
		schedSlotCache,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		serviceRepository,
		ucSlotCache,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		txMgr,
		bookSlotCache,
		bookMailer,
		&bookAppointmentUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	assignPatient := assignPatientHandler.NewHandler(appointmentsSvc, log)
	listPatients := listPatientsHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", getServices.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", getServices.HandleGet).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи на приём
	api.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer токен)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken))

	// --- Записи ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Привязка к пациентам ---
	admin.HandleFunc("/appointments/{id}/patient", assignPatient.HandleAssign).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}/patient", assignPatient.HandleCreateAndAssign).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}/patient", assignPatient.HandleUnassign).Methods(http.MethodDelete)
	admin.HandleFunc("/patients", listPatients.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	admin.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule/windows", manageSchedule.HandleCreateWindow).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/windows/{id}", manageSchedule.HandleDeleteWindow).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/blocked-dates", manageSchedule.HandleBlockDate).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/blocked-dates/{id}", manageSchedule.HandleUnblockDate).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule/blocked-slots", manageSchedule.HandleBlockSlot).Methods(http.MethodPost)
	admin.HandleFunc("/schedule/blocked-slots/{id}", manageSchedule.HandleUnblockSlot).Methods(http.MethodDelete)

	// Создаем HTTP сервер
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
