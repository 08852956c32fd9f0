package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/mesalista/backend/internal/config"
	"github.com/mesalista/backend/internal/db"
	"github.com/mesalista/backend/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect MySQL
		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo customers...")

		if err := seedCustomers(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedCustomers inserts 5 deterministic demo customers (idempotent).
// None of them carry a blockchain_address, so the register flow can be
// exercised against them from scratch.
func seedCustomers(dbx *sqlx.DB) error {
	customers := []model.Profile{
		{
			Name:    "Ana Morales",
			Phone:   "+52 55 1111 0001",
			Email:   "ana.morales@example.com",
			Address: "Av. Reforma 100, CDMX",
			Card:    "4111-0000-0000-0001",
		},
		{
			Name:    "Bruno Castillo",
			Phone:   "+52 55 1111 0002",
			Email:   "bruno.castillo@example.com",
			Address: "Calle 5 de Mayo 22, Puebla",
			Card:    "4111-0000-0000-0002",
		},
		{
			Name:    "Carla Jimenez",
			Phone:   "+52 33 1111 0003",
			Email:   "carla.jimenez@example.com",
			Address: "Av. Chapultepec 500, Guadalajara",
			Card:    "4111-0000-0000-0003",
		},
		{
			Name:    "Diego Fuentes",
			Phone:   "+52 81 1111 0004",
			Email:   "diego.fuentes@example.com",
			Address: "Av. Constitucion 40, Monterrey",
			Card:    "4111-0000-0000-0004",
		},
		{
			Name:    "Elena Rios",
			Phone:   "+52 99 1111 0005",
			Email:   "elena.rios@example.com",
			Address: "Paseo Montejo 12, Merida",
			Card:    "4111-0000-0000-0005",
		},
	}

	// idempotent upsert based on email (UNIQUE)
	const q = `
INSERT INTO customers
    (name, phone, email, address, card, active, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, TRUE, ?, ?)
ON DUPLICATE KEY UPDATE
    name       = VALUES(name),
    phone      = VALUES(phone),
    address    = VALUES(address),
    card       = VALUES(card),
    updated_at = VALUES(updated_at)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, c := range customers {
		if _, err := tx.Exec(q, c.Name, c.Phone, c.Email, c.Address, c.Card, now, now); err != nil {
			return fmt.Errorf("insert customer %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}
