package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mugworks/storefront/internal/domain/model"
)

// StorefrontFacade exposes the subset of application functionality required by the sweeper.
type StorefrontFacade interface {
	PendingPayments(ctx context.Context, limit int) ([]model.Order, error)
	RefreshPayment(ctx context.Context, order *model.Order) *model.Order
}

// PaymentSweeper periodically polls the gateway for orders whose payment
// is still pending and reconciles the results concurrently. It backstops
// the webhook: a missed callback is picked up on the next sweep.
type PaymentSweeper struct {
	facade       StorefrontFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentSweeper constructs the sweeper worker pool.
func NewPaymentSweeper(facade StorefrontFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentSweeper{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentSweeper) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentSweeper) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentSweeper) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentSweeper) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.PendingPayments(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch pending payments failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentSweeper) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			refreshed := p.facade.RefreshPayment(ctx, &order)
			if refreshed.Payment.Status != model.PaymentStatusPending {
				p.logger.Info("payment settled by sweep",
					slog.String("order", refreshed.Number),
					slog.String("payment_status", string(refreshed.Payment.Status)),
				)
			}
		}
	}
}
