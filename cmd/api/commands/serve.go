package commands

import (
	"os/signal"
	"syscall"

	"snippetapi/internal/config"
	"snippetapi/internal/infra/db"
	"snippetapi/internal/infra/event"
	"snippetapi/internal/logger"
	"snippetapi/internal/server"
	"snippetapi/internal/usecase"

	"github.com/spf13/cobra"
)

var autoMigrate bool

// eventPublisher is the order_created sink owned by serve.
type eventPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server on PORT. SIGINT/SIGTERM trigger a graceful shutdown.

Examples:
  api serve              # serve with the current schema
  api serve --migrate    # AutoMigrate first (handy with sqlite)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run AutoMigrate before serving")
}

func runServe(cmd *cobra.Command) error {
	cfg, log, gdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(gdb)

	if autoMigrate {
		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		log.Info("migrated")
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("close publisher", "error", err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := server.Build(cfg, gdb, publisher, log)
	return server.Run(ctx, e, ":"+cfg.Port, log)
}

// RABBITMQ_URIが空ならログ出力だけ
func newPublisher(cfg config.Config, log logger.Logger) (eventPublisher, error) {
	if cfg.RabbitMQURI == "" {
		log.Info("RABBITMQ_URI not set, order events are logged only")
		return event.NewLogPublisher(log), nil
	}
	p, err := event.DialAMQP(cfg.RabbitMQURI, cfg.OrderQueue)
	if err != nil {
		return nil, err
	}
	log.Info("publishing order events", "queue", cfg.OrderQueue)
	return p, nil
}

