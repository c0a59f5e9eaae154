package commands

import (
	"fmt"
	"os"

	"snippetapi/internal/config"
	"snippetapi/internal/infra/db"
	"snippetapi/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command. Without a subcommand it serves.
var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Snippet store REST API",
	Long: `Snippets with categories and tags, anonymous carts, orders and
user profiles over JSON/HTTP.

Configuration is read from the environment (and .env when present).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run AutoMigrate before serving")
	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd)
}

// 設定・ロガー・DB接続の共通初期化
func bootstrap() (config.Config, logger.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, gdb, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
