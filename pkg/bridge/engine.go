package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/insured-bridge/internal/metrics"
	"github.com/chainsafe/insured-bridge/pkg/config"
)

// Poller is a background task that runs until its context is canceled.
type Poller interface {
	Run(ctx context.Context)
}

// Engine runs the periodic work around the service: the finality sweep that lets
// pendingBridgeAmount decay without outbound traffic, and background pollers such as
// the price feed.
type Engine struct {
	config  *config.BridgeConfig
	svc     Service
	pollers []Poller
	logger  *zap.Logger

	cancel context.CancelFunc
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewEngine creates a new bridge engine
func NewEngine(cfg *config.BridgeConfig, svc Service, logger *zap.Logger, pollers ...Poller) *Engine {
	return &Engine{
		config:  cfg,
		svc:     svc,
		pollers: pollers,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the background loops
func (e *Engine) Start(ctx context.Context) error {
	if e.config.SweepInterval <= 0 {
		return fmt.Errorf("invalid sweep interval %s", e.config.SweepInterval)
	}
	e.logger.Info("Starting bridge engine", zap.Duration("sweep_interval", e.config.SweepInterval))

	ctx, e.cancel = context.WithCancel(ctx)

	for _, p := range e.pollers {
		e.wg.Add(1)
		go func(p Poller) {
			defer e.wg.Done()
			p.Run(ctx)
		}(p)
	}

	e.wg.Add(1)
	go e.sweep(ctx)

	e.logger.Info("Bridge engine started")
	return nil
}

// Stop stops the engine and waits for the loops to exit
func (e *Engine) Stop() {
	e.logger.Info("Stopping bridge engine")
	close(e.stopCh)
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.logger.Info("Bridge engine stopped")
}

// sweep periodically releases finalized pending transfers
func (e *Engine) sweep(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stopCh:
			return
		case <-ticker.C:
			removed, err := e.svc.ProcessFinalized(ctx)
			if err != nil {
				metrics.ErrorsTotal.WithLabelValues("engine", "finality_sweep").Inc()
				e.logger.Error("Finality sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				e.logger.Info("Finality sweep released pending transfers", zap.Int("count", removed))
			}
		}
	}
}
