package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcalendar/config"
	_ "eventcalendar/docs"
	"eventcalendar/internal/adapters/email"
	"eventcalendar/internal/adapters/eventapi"
	delivery "eventcalendar/internal/delivery/http"
	"eventcalendar/internal/delivery/http/controllers"
	"eventcalendar/internal/delivery/http/middleware"
	"eventcalendar/internal/domain"
	"eventcalendar/internal/metrics"
	"eventcalendar/internal/repository/postgres"
	"eventcalendar/internal/services"
)

// @title Event Calendar API
// @version 1.0
// @description Calendar events with recurring series, overlap checks, reminders and iCalendar import/export.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("eventcalendar exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return err
	}
	loc := settings.Location()
	logger.Info("effective config",
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"week_start", settings.WeekStart,
		"timezone", settings.Timezone,
		"holidays", len(settings.Holidays),
		"reminder_schedule", cfg.ReminderSchedule,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	repo, closeRepo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	expander := services.NewRecurrenceExpander(services.RecurrencePolicy{
		CapDate:        cfg.RecurrenceCapDate,
		HorizonDays:    cfg.RecurrenceHorizonDays,
		MaxOccurrences: cfg.RecurrenceMaxOccurrences,
	}, logger)
	ops := services.NewRecurringOperations(repo, logger, m, func(ctx context.Context) {
		logger.DebugContext(ctx, "events changed, clients should refresh")
	})
	eventService := services.NewEventService(repo, ops, expander, m, logger, settings.WeekStartDay(), cfg.RequestTimeout)
	calendarService := services.NewCalendarService(eventService, repo, settings.Holidays, settings.WeekStartDay(), loc, logger)

	if cfg.ReminderSchedule != "" {
		mailer, err := email.NewMailer(email.MailerConfig{
			Provider:    cfg.Email.Provider,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			SES: email.SESConfig{
				Region:             cfg.Email.AWSRegion,
				AccessKeyID:        cfg.Email.AWSAccessKeyID,
				SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
				InsecureSkipVerify: cfg.Email.AWSInsecureSkipVerify,
			},
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to create mailer: %w", err)
		}
		emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
		scheduler := services.NewReminderScheduler(eventService, emailService, cfg.ReminderEmail, logger, m)
		scheduler.SetLocation(loc)
		if err := scheduler.Start(ctx, cfg.ReminderSchedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	router := delivery.NewRouter(
		controllers.NewEventController(logger, eventService, loc),
		controllers.NewCalendarController(logger, calendarService, settings),
		controllers.NewStoreController(logger, repo),
		m,
	)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.Metrics(m, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.Recover(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openRepository returns the configured event store and its cleanup func.
func openRepository(cfg *config.Config, logger *slog.Logger) (domain.EventRepository, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageRemote:
		logger.Info("using remote event store", "url", cfg.EventsAPIURL)
		client := &http.Client{Timeout: cfg.RequestTimeout}
		return eventapi.NewClient(cfg.EventsAPIURL, client), func() {}, nil
	default:
		db, err := postgres.NewDatabase(cfg.DBUrl, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.MigrationsEnabled {
			if err := db.Migrate(); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return postgres.NewEventRepository(db.DB), func() { db.Close() }, nil
	}
}
