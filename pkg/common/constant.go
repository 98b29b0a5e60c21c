package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyAlertsDBType  string = "ALERTS_DB_TYPE"
	EnvKeyAlertsDBPath  string = "ALERTS_DB_PATH"
	EnvKeyAlertsLogPath string = "ALERTS_LOG_PATH"

	EnvKeyAlertsHttpHostPort string = "ALERTS_HTTP_HOST_PORT"

	EnvKeyAlertsKafkaBrokers string = "ALERTS_KAFKA_BROKERS"
	EnvKeyAlertsKafkaTopic   string = "ALERTS_KAFKA_TOPIC"
	EnvKeyAlertsKafkaGroupID string = "ALERTS_KAFKA_GROUP_ID"

	EnvKeyAlertsStaleSweepSeconds string = "ALERTS_STALE_SWEEP_SECONDS"

	EnvKeyAlertsDefaultRate  string = "ALERTS_DEFAULT_RATE"
	EnvKeyAlertsDefaultBurst string = "ALERTS_DEFAULT_BURST"

	LoggerNameAlertsCore    string = "alerts_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameConsumer      string = "reading_consumer"
	LoggerNameStaleWorker   string = "stale_worker"

	LoggerFieldCategory      string = "category"
	LoggerCategoryEngine     string = "engine"
	LoggerCategoryRule       string = "rule"
	LoggerCategoryAlert      string = "alert"
	LoggerCategoryStale      string = "stale"
	LoggerCategoryResolution string = "resolution"
)
