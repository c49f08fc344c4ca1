package models

import "time"

// Event types
const (
	EventTypeDatasetReloaded = "DATASET_RELOADED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// DatasetReloadedEvent published when the transaction table has been replaced
type DatasetReloadedEvent struct {
	BaseEvent
	Source   string `json:"source"`
	RowCount int    `json:"row_count"`
}
