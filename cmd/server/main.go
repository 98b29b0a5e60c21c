package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"agrosense.io/field-alerts-service/pkg/agro"
	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/db"
	alertsHttp "agrosense.io/field-alerts-service/pkg/http"
	"agrosense.io/field-alerts-service/pkg/mq"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	alertsDbType := os.Getenv(common.EnvKeyAlertsDBType)
	switch alertsDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown ALERTS_DB_TYPE: " + alertsDbType)
	}

	logger := common.GetLogger()

	if err := db.SeedRules(dbInstance.Conn); err != nil {
		log.Fatal("Failed to seed alert rules:", err)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyAlertsHttpHostPort))
	kafkaBrokers := strings.TrimSpace(os.Getenv(common.EnvKeyAlertsKafkaBrokers))
	kafkaTopic := strings.TrimSpace(os.Getenv(common.EnvKeyAlertsKafkaTopic))
	kafkaGroupID := strings.TrimSpace(os.Getenv(common.EnvKeyAlertsKafkaGroupID))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyAlertsDefaultRate), 64); err != nil {
		log.Fatal("Invalid ALERTS_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyAlertsDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid ALERTS_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	sweepSeconds := int64(60)
	if raw := strings.TrimSpace(os.Getenv(common.EnvKeyAlertsStaleSweepSeconds)); raw != "" {
		if sweepSeconds, err = strconv.ParseInt(raw, 10, 64); err != nil || sweepSeconds <= 0 {
			log.Fatal("Invalid ALERTS_STALE_SWEEP_SECONDS, should be a positive int value")
		}
	}

	core := agro.Agro{
		Db:    *dbInstance,
		Locks: agro.NewFieldLockStore(),
	}
	core.WithServices(agro.ServiceOpts{
		Engine: core.GetIEngine(),
		Stale:  core.GetIStale(),
		Alert:  core.GetIAlert(),
		Rule:   core.GetIRule(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if kafkaBrokers != "" {
		consumer, err := mq.NewConsumer(mq.ConsumerConfig{
			Brokers: strings.Split(kafkaBrokers, ","),
			Topic:   kafkaTopic,
			GroupID: kafkaGroupID,
			Engine:  core.Engine,
		})
		if err != nil {
			log.Fatal("Failed to create kafka consumer:", err)
		}
		defer consumer.Close()

		logger.Info("Starting reading consumer",
			zap.String("brokers", kafkaBrokers),
			zap.String("topic", kafkaTopic),
			zap.String("group_id", kafkaGroupID))
		go consumer.RunLoop(ctx, 5*time.Second)
	}

	go core.RunStaleWorker(ctx, time.Duration(sweepSeconds)*time.Second)

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &alertsHttp.RestfulServer{
		Server:           gin.Default(),
		Agro:             &core,
		RateLimiterStore: alertsHttp.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.Float64("default_rate", defaultRate),
		zap.Int64("default_burst", defaultBurst))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
