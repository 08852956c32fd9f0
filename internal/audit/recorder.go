package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mesalista/backend/internal/events"
	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/repository"
)

// Recorder fans one protocol outcome out to the ClickHouse audit table and
// the Kafka topic. Both sinks are best-effort: an audit failure never fails
// the operation it describes.
type Recorder struct {
	ops repository.OperationsRepository
	pub *events.Publisher
	log *zap.Logger
}

func NewRecorder(ops repository.OperationsRepository, pub *events.Publisher, log *zap.Logger) *Recorder {
	return &Recorder{ops: ops, pub: pub, log: log}
}

func (r *Recorder) Record(ctx context.Context, op model.Operation) {
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}

	if r.ops != nil {
		if err := r.ops.Insert(ctx, op); err != nil {
			r.log.Warn("audit insert failed",
				zap.String("operation_id", op.OperationID),
				zap.String("op", op.Op),
				zap.Error(err),
			)
		}
	}

	if r.pub != nil {
		if err := r.pub.Publish(ctx, op); err != nil {
			r.log.Warn("audit publish failed",
				zap.String("operation_id", op.OperationID),
				zap.String("op", op.Op),
				zap.Error(err),
			)
		}
	}
}
