package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesalista/backend/internal/assets"
	"github.com/mesalista/backend/internal/audit"
	"github.com/mesalista/backend/internal/config"
	"github.com/mesalista/backend/internal/db"
	"github.com/mesalista/backend/internal/events"
	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/logger"
	"github.com/mesalista/backend/internal/metrics"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/service/recon"
	"github.com/mesalista/backend/internal/worker"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run the store comparison sweep",
	RunE:  runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Log.Level)
	zlog := logger.Log

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) DB connection (MySQL)
	dbx, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
		MaxOpenConns:    cfg.MySQL.MaxOpenConns,
		MaxIdleConns:    cfg.MySQL.MaxIdleConns,
		ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
		PingTimeout:     cfg.MySQL.PingTimeout,
	})
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	defer dbx.Close()

	// 3) audit sink (ClickHouse + Kafka)
	chDB, err := db.NewClickHouseConnection(db.ClickHouseOpts{
		DSN:             cfg.ClickHouse.DSN,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
		PingTimeout:     cfg.ClickHouse.PingTimeout,
	})
	if err != nil {
		return fmt.Errorf("clickhouse connect: %w", err)
	}
	defer func() { _ = chDB.Close() }()

	publisher := events.NewPublisher(events.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.OperationsTopic,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	})
	defer func() { _ = publisher.Close() }()

	recorder := audit.NewRecorder(
		repository.NewOperationsRepository(chDB),
		publisher,
		zlog.Named("audit"),
	)

	// 4) ledger connection
	gateway, err := ledger.Dial(cfg.Ledger, zlog.Named("ledger"))
	if err != nil {
		return fmt.Errorf("ledger connect: %w", err)
	}
	defer gateway.Close()

	// 5) comparison service + sweeper
	customersRepo := repository.NewCustomersRepository(dbx)
	paymentsRepo := repository.NewPaymentsRepository(dbx)

	svc := recon.New(
		customersRepo,
		paymentsRepo,
		gateway,
		gateway,
		assets.NewPDFRenderer(),
		assets.NewIPFSUploader(cfg.IPFS),
		recorder,
		zlog.Named("recon"),
	)

	rec := worker.NewReconciler(
		customersRepo,
		paymentsRepo,
		svc,
		cfg.Recon.SweepInterval,
		cfg.Recon.PageSize,
		zlog.Named("reconciler"),
	)

	// 6) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf(">> reconciler started interval=%s pageSize=%d", rec.Interval, rec.PageSize)

	return rec.Run(ctx)
}
