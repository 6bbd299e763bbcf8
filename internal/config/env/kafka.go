package envconfig

import (
	"strings"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
	"github.com/samber/lo"
)

type kafkaEnv struct {
	Brokers           []string `env:"KAFKA_BROKERS"`
	PurchaseTopicName string   `env:"KAFKA_PURCHASE_TOPIC" envDefault:"course.purchased"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	raw.Brokers = lo.Compact(lo.Map(raw.Brokers, func(b string, _ int) string {
		return strings.TrimSpace(b)
	}))
	return &kafka{raw: raw}, nil
}

// Enabled is false when no brokers are configured; purchase events are then dropped.
func (cfg *kafka) Enabled() bool         { return len(cfg.raw.Brokers) > 0 }
func (cfg *kafka) Brokers() []string     { return cfg.raw.Brokers }
func (cfg *kafka) PurchaseTopic() string { return cfg.raw.PurchaseTopicName }

func (cfg *kafka) PurchaseProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}
