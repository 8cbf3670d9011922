package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvOrderServiceURL = "ORDER_SERVICE_URL"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRoster = "ROSTER"

	EnvSlotScanHorizonHours = "SLOT_SCAN_HORIZON_HOURS"
	EnvOrderEventsTopic     = "ORDER_EVENTS_TOPIC"

	EnvHTTPClientTimeout = "HTTP_CLIENT_TIMEOUT"
	EnvRequestTimeout    = "REQUEST_TIMEOUT"
	EnvReadTimeout       = "READ_TIMEOUT"
	EnvWriteTimeout      = "WRITE_TIMEOUT"
	EnvIdleTimeout       = "IDLE_TIMEOUT"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"
)
