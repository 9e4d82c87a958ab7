package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vdraganov/go-shop-api/internal/audit"
	"github.com/vdraganov/go-shop-api/internal/config"
	kafkax "github.com/vdraganov/go-shop-api/internal/kafka"
	"github.com/vdraganov/go-shop-api/internal/redisx"
	"github.com/vdraganov/go-shop-api/internal/shop"
)

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &audit.Service{
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-auditor",
	}

	group := getenv("AUDITOR_GROUP", "shop-auditor")
	workers := mustAtoi(os.Getenv("AUDITOR_WORKERS"), "4")

	topics := []string{shop.TopicOrderCreated, shop.TopicOrderUpdated, shop.TopicOrderDeleted}
	for _, topic := range topics {
		cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topic, workers)
		go func(topic string) {
			log.Infof("auditor consumer started: group=%s topic=%s workers=%d", group, topic, workers)
			if err := cons.Start(ctx, svc.HandleOrderEvent); err != nil {
				log.WithError(err).WithField("topic", topic).Error("consumer exit")
				cancel()
			}
		}(topic)
	}

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down auditor...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
