package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	workerLog := logger.NewZeroLog(cfg.App.Env).With(logger.F("component", "notifications"))
	if !cfg.Kafka.Enabled {
		workerLog.Error("kafka is disabled, nothing to consume")
		os.Exit(1)
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, workerLog)
	defer consumer.Close()

	sender := email.NewSender(workerLog)

	workerLog.Info("consuming booking events", logger.F("topic", topic), logger.F("group_id", cfg.Kafka.GroupID))
	err = consumer.ConsumeEvents(ctx, sender.Send)
	if err != nil && !errors.Is(err, context.Canceled) {
		workerLog.Error("consumer stopped", logger.Err(err))
		os.Exit(1)
	}
	workerLog.Info("worker stopped")
}
