package cmd

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME"     envDefault:"depot"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	KafkaBrokers       string `env:"KAFKA_BROKERS"        envDefault:"localhost:9092"`
	KafkaEventsTopic   string `env:"KAFKA_EVENTS_TOPIC"   envDefault:"depot.events"`
	KafkaGateTopic     string `env:"KAFKA_GATE_TOPIC"     envDefault:"depot.gates"`
	KafkaConsumerGroup string `env:"KAFKA_CONSUMER_GROUP" envDefault:"depot"`

	OutboxBatchSize int `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`

	// EstimateStrictConditions makes estimate revisions follow the D, E, F, G, L
	// condition sequence one step at a time.
	EstimateStrictConditions bool `env:"ESTIMATE_STRICT_CONDITIONS" envDefault:"false"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	return c, nil
}

func (c Config) KafkaBrokerList() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
