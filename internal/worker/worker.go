package worker

import (
	"context"

	"sales-service/internal/broker"
	"sales-service/internal/service"
	"sales-service/internal/util"

	"go.uber.org/zap"
)

// DatasetWorker reloads the dataset whenever the ingester announces a new one
type DatasetWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewDatasetWorker creates a new dataset worker
func NewDatasetWorker(
	consumer *broker.Consumer,
	datasetService *service.DatasetService,
) *DatasetWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnDatasetReloaded(datasetService.HandleDatasetReloaded)

	return &DatasetWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       util.GetLogger(),
	}
}

// Start consumes events until ctx is cancelled
func (w *DatasetWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting dataset worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop closes the consumer
func (w *DatasetWorker) Stop() error {
	w.logger.Info("Stopping dataset worker")
	return w.consumer.Close()
}
