package cmd

import (
	"fmt"
	"os"

	"docman/config"
	"docman/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var envFile string

var RootCmd = &cobra.Command{
	Use:   "docman",
	Short: "Document management API",
	Long:  "docman serves a REST API for users, roles and access-controlled documents.",
	// serve is the default action
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration, builds the logger and opens and
// migrates the database. Every subcommand starts here.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg.LogLevel)
	if cfg.JWT.UsesDefaultSecret() {
		log.Warn("JWT_SECRET is not set, using the built-in development secret")
	}

	db, err := config.InitDB(cfg.Database, log, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := config.Migrate(db); err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}
