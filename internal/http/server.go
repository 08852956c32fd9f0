package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mesalista/backend/internal/config"
	"github.com/mesalista/backend/internal/http/middleware"
	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/metrics"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/service/recon"
)

// Deps carries everything the HTTP surface needs; wiring happens in cmd.
type Deps struct {
	MySQL      *sqlx.DB
	ClickHouse *sqlx.DB
	Redis      *redis.Client
	Recon      *recon.Service
	Gateway    ledger.Gateway
	Minter     ledger.Minter
}

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, d Deps) *Server {
	// repos (MySQL)
	customersRepo := repository.NewCustomersRepository(d.MySQL)
	paymentsRepo := repository.NewPaymentsRepository(d.MySQL)

	// repos (ClickHouse)
	opsRepo := repository.NewOperationsRepository(d.ClickHouse)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.Clients)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          d.Redis,
		DefaultRPS:     cfg.RateLimit.RPS,
		KeyPrefix:      "rl:client:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)

	cust := v1.Group("/customers")
	cust.GET("", listCustomersHandler(customersRepo))
	cust.POST("", createCustomerHandler(customersRepo))
	cust.GET("/:id", getCustomerHandler(customersRepo))
	cust.PUT("/:id", updateCustomerHandler(customersRepo))

	cust.POST("/register", registerHandler(d.Recon))
	cust.POST("/deactivate", deactivateHandler(d.Recon))
	cust.POST("/reactivate", reactivateHandler(d.Recon))
	cust.GET("/:id/validate", validateIdentityHandler(d.Recon))
	cust.GET("/:id/ledger", ledgerCustomerHandler(d.Gateway))

	cust.GET("/:id/history", ledgerHistoryHandler(d.Gateway))
	cust.GET("/:id/history/db", dbHistoryHandler(paymentsRepo))
	cust.GET("/:id/history/validate", validateHistoryHandler(d.Recon))

	cust.POST("/:id/document", ensureDocumentHandler(d.Recon))
	cust.POST("/:id/token", ensureTokenHandler(d.Recon))

	v1.POST("/payments", recordPaymentHandler(d.Recon))
	v1.GET("/tokens/:tokenId", tokenMetadataHandler(d.Minter))
	v1.GET("/operations", listOperationsHandler(opsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
