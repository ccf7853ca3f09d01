package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/api"
	"github.com/carson-networks/budget-api/internal/auth"
	"github.com/carson-networks/budget-api/internal/config"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/operator"
	"github.com/carson-networks/budget-api/internal/provider"
	"github.com/carson-networks/budget-api/internal/service"
	"github.com/carson-networks/budget-api/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("budget-api starting")

	if envConfig.SentryDSN != "" {
		flush, err := logging.InitSentry(envConfig.SentryDSN, os.Getenv("ENVIRONMENT"))
		if err != nil {
			logger.WithError(err).Error("logging.InitSentry")
		} else {
			defer flush()
			logger.AddHook(logging.NewSentryHook(sentry.CurrentHub()))
		}
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	if envConfig.AutoMigrate {
		result, err := storage.RunMigrations(dbStorage.DB)
		if err != nil {
			logger.WithError(err).Fatal("storage.RunMigrations")
			return
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  result.PreVersion,
			"postMigrationVersion": result.PostVersion,
		}).Info("Migration status")
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	var generator provider.Generator
	if envConfig.AIEnabled() {
		generator = provider.NewOpenAI(&provider.OpenAIOptions{
			APIKey:  envConfig.OpenAIAPIKey,
			Model:   envConfig.OpenAIModel,
			BaseURL: envConfig.OpenAIBaseURL,
			Logger:  logger,
		})
	} else {
		logger.Warn("OPENAI_API_KEY is not set, AI summaries are disabled")
	}

	svc := service.NewService(dbStorage, delegator, service.Options{
		Generator: generator,
		Currency:  envConfig.Currency,
		AITimeout: envConfig.AITimeout,
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:     logger,
		Port:       envConfig.Port,
		CORSOrigin: envConfig.CORSOrigin,
		Service:    svc,
		DB:         dbStorage,
		JWT:        auth.NewJWTManager(envConfig.JWTSecret, 24*time.Hour),
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("budget-api stopped")
}
