package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesalista/backend/internal/assets"
	"github.com/mesalista/backend/internal/audit"
	"github.com/mesalista/backend/internal/config"
	"github.com/mesalista/backend/internal/db"
	"github.com/mesalista/backend/internal/events"
	httpSrv "github.com/mesalista/backend/internal/http"
	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/logger"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/service/recon"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		zlog := logger.Log

		mysqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		redisClient, err := db.NewRedisClient(db.RedisOpts{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

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

		gateway, err := ledger.Dial(cfg.Ledger, zlog.Named("ledger"))
		if err != nil {
			return fmt.Errorf("ledger connect: %w", err)
		}
		defer gateway.Close()

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

		reconSvc := recon.New(
			repository.NewCustomersRepository(mysqlDB),
			repository.NewPaymentsRepository(mysqlDB),
			gateway,
			gateway,
			assets.NewPDFRenderer(),
			assets.NewIPFSUploader(cfg.IPFS),
			recorder,
			zlog.Named("recon"),
		)

		server := httpSrv.NewServer(cfg, httpSrv.Deps{
			MySQL:      mysqlDB,
			ClickHouse: chDB,
			Redis:      redisClient,
			Recon:      reconSvc,
			Gateway:    gateway,
			Minter:     gateway,
		})

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting http on %s", cfg.HTTP.Addr)
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Printf("signal received: %s, shutting down...", sig)
		case err := <-errCh:
			if err != nil {
				log.Printf("http server exited: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
