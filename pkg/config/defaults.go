package config

import "time"

const (
	DefaultPort     = "3001"
	DefaultLogLevel = "info"

	DefaultOrderServiceURL = "http://localhost:3001"

	DefaultMongoDatabaseName = "slotbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultSlotScanHorizonHours = 24 * 14
	DefaultOrderEventsTopic     = "slotbook.order-events"

	DefaultHTTPClientTimeout = 10 * time.Second
	DefaultRequestTimeout    = 30 * time.Second
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
)

// DefaultRoster mirrors the demo roster the project ships with. Deployments
// override it through the ROSTER environment variable.
const DefaultRoster = `[
  {"id": "1", "name": "Jon Doe", "timezone": "Europe/Berlin"},
  {"id": "2", "name": "Tim Ali", "timezone": "Europe/Moscow"},
  {"id": "3", "name": "Tom Eric", "timezone": "America/Toronto"}
]`
