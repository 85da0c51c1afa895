package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/TrustChat/pkg/dependency_container"
	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	"github.com/NeuralTrust/TrustChat/pkg/server"
	"github.com/NeuralTrust/TrustChat/pkg/server/router"
	"github.com/NeuralTrust/TrustChat/pkg/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	_ "github.com/NeuralTrust/TrustChat/docs"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath)
		},
	}
}

func serve(configPath string) error {
	cfg, logger, closeLog, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.WithFields(logrus.Fields{
		"version": version.Version,
		"commit":  version.GitCommit,
	}).Info("starting trustchat")

	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.NewDB(logger, databaseConfig(cfg))
		if err != nil {
			logger.WithError(err).Error("failed to initialize database")
			return err
		}
	}

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		logger.WithError(err).Error("failed to initialize dependencies")
		return err
	}
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	container.StartListeners(ctx)

	srv := server.NewAPIServer(server.APIServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewAPIRouter(
				container.MiddlewareTransport,
				container.HandlerTransport,
				container.WSHandlerTransport,
				cfg,
			),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithError(err).Error("server failed")
			return err
		}
		return nil
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down server")
	}

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		return err
	}
	logger.Info("server gracefully stopped")
	return nil
}
