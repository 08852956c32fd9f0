package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mesalista/backend/internal/metrics"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/service/recon"
)

// Reconciler periodically replays the comparison half of the protocol over
// every registered customer: identity fields, positional history, and
// payments whose hash back-fill never ran. It only reads the two stores;
// findings land in the audit trail and metrics, never in either store.
type Reconciler struct {
	Customers repository.CustomersRepository
	Payments  repository.PaymentsRepository
	Recon     *recon.Service

	Interval time.Duration
	PageSize int
	Log      *zap.Logger
}

func NewReconciler(
	customers repository.CustomersRepository,
	payments repository.PaymentsRepository,
	svc *recon.Service,
	interval time.Duration,
	pageSize int,
	log *zap.Logger,
) *Reconciler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		Customers: customers,
		Payments:  payments,
		Recon:     svc,
		Interval:  interval,
		PageSize:  pageSize,
		Log:       log,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	if err := r.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.Log.Error("sweep failed", zap.Error(err))
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				r.Log.Error("sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep is one idempotent reconciliation pass.
func (r *Reconciler) Sweep(ctx context.Context) error {
	start := time.Now()
	var checked, divergent int

	var after int64
	for {
		page, err := r.Customers.ListRegistered(ctx, after, r.PageSize)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		for _, c := range page {
			checked++

			idRep, err := r.Recon.ValidateIdentity(ctx, c.ID, c.LedgerAddress.String)
			if err != nil {
				r.Log.Warn("identity check failed", zap.Int64("customer_id", c.ID), zap.Error(err))
			} else if idRep.Divergent {
				divergent++
				r.Log.Warn("profile divergence",
					zap.Int64("customer_id", c.ID),
					zap.Strings("fields", idRep.Mismatched),
				)
			}

			histRep, err := r.Recon.ValidateHistory(ctx, c.ID)
			if err != nil {
				r.Log.Warn("history check failed", zap.Int64("customer_id", c.ID), zap.Error(err))
			} else if !histRep.Equal {
				divergent++
				r.Log.Warn("history divergence",
					zap.Int64("customer_id", c.ID),
					zap.Int("relational", histRep.RelationalCount),
					zap.Int("ledger", histRep.LedgerCount),
				)
			}
		}

		after = page[len(page)-1].ID
		if len(page) < r.PageSize {
			break
		}
	}

	unhashed, err := r.Payments.ListUnhashed(ctx, r.PageSize)
	if err != nil {
		return err
	}
	metrics.UnhashedPayments.Set(float64(len(unhashed)))
	for _, p := range unhashed {
		r.Log.Warn("payment missing ledger hash",
			zap.Int64("payment_id", p.ID),
			zap.Int64("customer_id", p.CustomerID),
			zap.Int64("amount", p.Amount),
		)
	}

	r.Log.Info("sweep done",
		zap.Int("customers", checked),
		zap.Int("divergent", divergent),
		zap.Int("unhashed_payments", len(unhashed)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
