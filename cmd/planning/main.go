package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"team-planning/internal/auth"
	"team-planning/internal/bot"
	"team-planning/internal/config"
	"team-planning/internal/handler"
	"team-planning/internal/notify"
	"team-planning/internal/repository"
	"team-planning/internal/service"
	"team-planning/pkg/telegram"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetConfig()
	cfg.SetupLogger()
	logrus.WithFields(logrus.Fields{
		"year":    cfg.PlanningYear,
		"members": len(cfg.Members),
		"backend": cfg.StoreBackend,
	}).Info("Config initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing store")
		}
	}()

	var notifiers notify.Multi
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, notify.NewEmailNotifier(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.ManagerEmail,
		))
		logrus.WithField("to", cfg.ManagerEmail).Info("Email notifications enabled")
	}

	var client *telegram.Client
	if cfg.TelegramEnabled() {
		client, err = telegram.NewClient(cfg.TelegramToken, cfg.LogLevel == "debug")
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create Telegram client")
		}
		logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)
		notifiers = append(notifiers, notify.NewTelegramNotifier(client.Bot, cfg.TelegramManagerChatID))
	}

	calendarService := service.NewCalendarService(store.Planning, cfg)
	planningService := service.NewPlanningService(store.Planning, cfg)
	var leaveNotifier notify.Notifier
	if len(notifiers) > 0 {
		leaveNotifier = notifiers
	}
	leaveService := service.NewLeaveService(store.Requests, store.Planning, leaveNotifier, cfg)

	authManager, err := auth.NewManager(
		cfg.ManagerPassword,
		cfg.ManagerPasswordHash,
		cfg.JWTSecret,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up manager authentication")
	}

	if client != nil {
		botHandler := bot.NewHandler(client.Bot, leaveService, calendarService, cfg.TelegramManagerChatID)
		updates := client.Bot.GetUpdatesChan(client.UpdateConfig)
		go botHandler.HandleUpdates(ctx, updates)
		logrus.Info("Telegram bot started")
	}

	app, err := handler.NewApp(handler.NewHandler(
		calendarService,
		planningService,
		leaveService,
		authManager,
		cfg,
	), true)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build HTTP app")
	}

	go func() {
		logrus.Infof("Listening on %s", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logrus.WithError(err).Error("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down...")

	if client != nil {
		client.Bot.StopReceivingUpdates()
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown incomplete")
	}

	logrus.Info("Stopped gracefully")
}
