package worker

import (
	"context"
	"log"

	"sentinel-service/internal/broker"
	"sentinel-service/internal/service"
)

// DashboardWorker rebuilds the cached dashboard snapshot whenever a ledger
// event (order, payment or transaction change) arrives on the topic. Read
// paths recompute on cache miss regardless, so the worker only keeps the
// cache warm.
type DashboardWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	stats        *service.StatsService
}

// NewDashboardWorker creates a new dashboard worker
func NewDashboardWorker(consumer *broker.Consumer, stats *service.StatsService) *DashboardWorker {
	eventHandler := broker.NewEventHandler()

	w := &DashboardWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		stats:        stats,
	}

	eventHandler.OnLedgerChanged(func(ctx context.Context, eventType string) error {
		_, err := stats.RebuildSnapshot(ctx, "ledger_event")
		return err
	})

	return w
}

// Start starts the worker
func (w *DashboardWorker) Start(ctx context.Context) error {
	log.Println("Starting dashboard worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *DashboardWorker) Stop() error {
	log.Println("Stopping dashboard worker...")
	return w.consumer.Close()
}
