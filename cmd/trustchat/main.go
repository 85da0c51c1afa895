package main

import (
	"fmt"
	"log"
	"os"

	"github.com/NeuralTrust/TrustChat/pkg/config"
	"github.com/NeuralTrust/TrustChat/pkg/infra/database"
	infraLogger "github.com/NeuralTrust/TrustChat/pkg/infra/logger"
	_ "github.com/NeuralTrust/TrustChat/pkg/infra/migrations"
	"github.com/NeuralTrust/TrustChat/pkg/version"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "trustchat",
		Short:         "Chat message risk analysis service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config", "Directory containing config.yaml")

	cmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		checkPolicyCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().String())
			},
		},
	)
	return cmd
}

// bootstrap loads configuration and builds the process logger.
func bootstrap(configPath string) (*config.Config, *logrus.Logger, func(), error) {
	if err := config.Load(configPath); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := config.GetConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := infraLogger.NewLogger(infraLogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

func databaseConfig(cfg *config.Config) *database.Config {
	return &database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		DBName:       cfg.Database.DBName,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
}
