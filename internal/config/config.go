package config

import "os"

type App struct {
	Port              string
	DatabaseURL       string // empty means in-memory store
	KafkaBrokers      string // comma-separated; empty disables events
	KafkaTopicRentals string
}

func Load() App {
	return App{
		Port:              getenv("PORT", "4000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		KafkaTopicRentals: getenv("KAFKA_TOPIC_RENTALS", "boardcamp.rentals"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
