// internal/scheduler/accrual_test.go
package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/service"
)

// stubInvestmentService counts RecomputeProfits calls.
type stubInvestmentService struct {
	calls atomic.Int64
}

func (s *stubInvestmentService) Start(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Investment, error) {
	return nil, nil
}

func (s *stubInvestmentService) Status(ctx context.Context, userID int64) ([]service.InvestmentStatusView, error) {
	return nil, nil
}

func (s *stubInvestmentService) RecomputeProfits(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 0, nil
}

func (s *stubInvestmentService) Reinvest(ctx context.Context, userID, investmentID int64, reinvestType string, amount decimal.Decimal) (*domain.Investment, error) {
	return nil, nil
}

func TestSchedulerRunsAndStops(t *testing.T) {
	stub := &stubInvestmentService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewAccrualScheduler(stub, 5*time.Millisecond, logger)

	sched.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	sched.Stop()

	ran := stub.calls.Load()
	assert.Positive(t, ran, "sweep should have run at least once")

	// After Stop no further sweeps may happen.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, ran, stub.calls.Load())
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	stub := &stubInvestmentService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sched := NewAccrualScheduler(stub, time.Hour, logger)

	ctx, cancel := context.WithCancel(context.Background())
	sched.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
